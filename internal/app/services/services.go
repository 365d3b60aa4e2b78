// Package services holds the business logic behind each route group:
// - AuthService: sign-up and login
// - CourseService: course listing, creation, deletion, enrollment and aggregates
// - CourseFileService: course sections (upload, listing, delete, description)
// - SummarizeService: summarizes PDF files in a course's notes section
// - NoteService: personal notes
// - UserService: profile, password and account management
package services

import (
	"time"

	acl "github.com/ASahithi2005/NoteNexus-backend/internal/app/auth"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/repositories"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/auth"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/filestorage"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/pdftext"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/summarizer"
	"github.com/rs/zerolog"
)

// Dependencies groups everything the services are built from
type Dependencies struct {
	Repos      *repositories.Repositories
	JWT        *auth.JWTService
	Storage    filestorage.FileStorage
	Extractor  pdftext.Extractor
	Summarizer summarizer.Client
	Summarize  SummarizeOptions
	Logger     zerolog.Logger
}

// Services holds all the service instances
type Services struct {
	Auth       AuthService
	Course     CourseService
	CourseFile CourseFileService
	Summarize  SummarizeService
	Note       NoteService
	User       UserService
}

// NewServices wires every service from deps
func NewServices(deps Dependencies) *Services {
	access := acl.NewAccessControl()
	repos := deps.Repos
	return &Services{
		Auth:       NewAuthService(repos.UserRepository, deps.JWT, deps.Logger),
		Course:     NewCourseService(repos.CourseRepository, repos.UserRepository, access, deps.Logger),
		CourseFile: NewCourseFileService(repos.CourseRepository, repos.UserRepository, deps.Storage, access, deps.Logger),
		Summarize:  NewSummarizeService(repos.CourseRepository, deps.Storage, deps.Extractor, deps.Summarizer, access, deps.Summarize, deps.Logger),
		Note:       NewNoteService(repos.NoteRepository, deps.Logger),
		User:       NewUserService(repos.UserRepository, repos.CourseRepository, repos.NoteRepository, deps.Logger),
	}
}

// clock is overridden in tests
var clock = func() time.Time { return time.Now().UTC() }
