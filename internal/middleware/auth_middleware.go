package middleware

import (
	"errors"
	"fmt"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/apperrors"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuth
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth verifies the bearer token and attaches the caller's identity.
// Failures are answered through HandleAPIError.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrUnauthorized, "No token, authorization denied").
				WithDetails("Authorization header missing"))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		var claims *auth.Claims
		if err == nil {
			claims, err = m.jwtService.ValidateAndExtractClaims(tokenString)
		}
		if err != nil {
			HandleAPIError(c, tokenError(err))
			return
		}

		actor := claims.Actor()
		c.Set(ContextUserID, actor.ID)
		c.Set(ContextRole, actor.Role)

		c.Next()
	}
}

func tokenError(err error) error {
	details := "Invalid token"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		details = "Token has expired"
	case errors.Is(err, auth.ErrInvalidFormat):
		details = "Invalid token format"
	}
	return apperrors.NewCustomError(err, "Invalid token").WithDetails(details)
}

// RoleRequired lets only actors of role through. It must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(role models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			HandleAPIError(c, apperrors.ErrUnauthorized)
			return
		}
		if actor.Role != role {
			HandleAPIError(c, apperrors.NewForbiddenError(fmt.Sprintf("Only %ss can perform this action", role)))
			return
		}
		c.Next()
	}
}

// ActorFromContext returns the identity attached by JWTAuth
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	userID := c.GetString(ContextUserID)
	value, exists := c.Get(ContextRole)
	role, ok := value.(models.RoleType)
	if !exists || !ok || userID == "" {
		return models.Actor{}, false
	}
	return models.Actor{ID: userID, Role: role}, true
}
