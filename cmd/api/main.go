package main

import (
	"os"

	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/logger"
	"github.com/ASahithi2005/NoteNexus-backend/internal/server"
)

// @title NoteNexus API
// @version 1.0
// @description Role-based course management backend: mentors publish course material, students enroll, submit assignments and keep personal notes.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Setup functions log the details
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
