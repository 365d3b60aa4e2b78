package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models/dto"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/repositories"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/apperrors"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// AuthService handles registration and login of mentors and students
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authServiceImpl struct {
	userRepo   repositories.UserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Signup registers a new account in the collection of the requested role
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if strings.TrimSpace(req.Name) == "" || email == "" || req.Password == "" {
		return nil, apperrors.NewBadRequestError("Name, email, password and role are required")
	}
	if !req.Role.Valid() {
		return nil, apperrors.NewBadRequestError("Role must be mentor or student")
	}

	_, err := s.userRepo.FindByEmail(ctx, req.Role, email)
	if err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Password:  hashed,
		Role:      req.Role,
		CourseIDs: []string{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return s.tokenResponse(user)
}

// Login checks credentials against the collection of the requested role.
// Unknown users and wrong passwords produce the same error.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if !req.Role.Valid() {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Role, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Debug().Str("userID", user.ID).Msg("Password mismatch on login")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.tokenResponse(user)
}

func (s *authServiceImpl) tokenResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &dto.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.jwtService.TokenTTL().Seconds()),
		User:      dto.NewUserResponse(user),
	}, nil
}
