// Package controllers handles HTTP request handling
package controllers

import (
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/middleware"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

// currentActor returns the authenticated caller or answers 401
func currentActor(ctx *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return models.Actor{}, false
	}
	return actor, true
}
