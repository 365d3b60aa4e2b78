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

// UserService defines the interface for account operations
type UserService interface {
	Profile(ctx context.Context, actor models.Actor) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, actor models.Actor, req *dto.UpdateUserRequest) (*dto.ProfileResponse, error)
	ChangePassword(ctx context.Context, actor models.Actor, req *dto.ChangePasswordRequest) error
	DeleteAccount(ctx context.Context, actor models.Actor) error
	ListStudents(ctx context.Context) ([]dto.StudentListItem, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userRepo   repositories.UserRepository
	courseRepo repositories.CourseRepository
	noteRepo   repositories.NoteRepository
	logger     zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.UserRepository,
	courseRepo repositories.CourseRepository,
	noteRepo repositories.NoteRepository,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:   userRepo,
		courseRepo: courseRepo,
		noteRepo:   noteRepo,
		logger:     logger,
	}
}

// Profile returns the caller's profile. Students get their joined courses
// with titles.
func (s *userServiceImpl) Profile(ctx context.Context, actor models.Actor) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, actor.Role, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, user)
}

// UpdateProfile changes name and email; empty fields are left as they are
func (s *userServiceImpl) UpdateProfile(ctx context.Context, actor models.Actor, req *dto.UpdateUserRequest) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, actor.Role, actor.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("userID", actor.ID).Msg("Error finding user for profile update")
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		user.Email = email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewConflictError("Email already in use")
		}
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID).Msg("Profile updated")
	return s.profile(ctx, user)
}

// ChangePassword replaces the password after checking the current one
func (s *userServiceImpl) ChangePassword(ctx context.Context, actor models.Actor, req *dto.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewBadRequestError("Both fields are required")
	}

	user, err := s.userRepo.FindByID(ctx, actor.Role, actor.ID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.NewBadRequestError("Incorrect current password")
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	user.Password = hashed
	return s.userRepo.Update(ctx, user)
}

// DeleteAccount removes the caller's account. Mentors must delete their
// courses first; students are removed from every roster and lose their notes.
func (s *userServiceImpl) DeleteAccount(ctx context.Context, actor models.Actor) error {
	user, err := s.userRepo.FindByID(ctx, actor.Role, actor.ID)
	if err != nil {
		return err
	}

	if user.Role == models.RoleMentor && len(user.CourseIDs) > 0 {
		return apperrors.NewConflictError("Delete your courses before deleting your account")
	}

	if user.Role == models.RoleStudent {
		if err := s.courseRepo.RemoveStudentFromAll(ctx, user.ID); err != nil {
			return fmt.Errorf("error removing student from courses: %w", err)
		}
		if err := s.noteRepo.DeleteByUser(ctx, user.ID); err != nil {
			return fmt.Errorf("error deleting notes: %w", err)
		}
	}

	if err := s.userRepo.Delete(ctx, user.Role, user.ID); err != nil {
		return err
	}
	s.logger.Info().Str("userID", user.ID).Str("role", string(user.Role)).Msg("Account deleted")
	return nil
}

// ListStudents returns every student with the titles of their joined courses
func (s *userServiceImpl) ListStudents(ctx context.Context) ([]dto.StudentListItem, error) {
	students, err := s.userRepo.List(ctx, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	var ids []string
	for _, st := range students {
		ids = append(ids, st.CourseIDs...)
	}
	titles, err := s.courseTitles(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StudentListItem, 0, len(students))
	for _, st := range students {
		items = append(items, dto.StudentListItem{
			ID:            st.ID,
			Name:          st.Name,
			Email:         st.Email,
			JoinedCourses: courseRefs(st.CourseIDs, titles),
		})
	}
	return items, nil
}

func (s *userServiceImpl) profile(ctx context.Context, user *models.User) (*dto.ProfileResponse, error) {
	resp := &dto.ProfileResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}

	if user.Role == models.RoleMentor {
		resp.CreatedCourses = append([]string{}, user.CourseIDs...)
		return resp, nil
	}

	titles, err := s.courseTitles(ctx, user.CourseIDs)
	if err != nil {
		return nil, err
	}
	resp.JoinedCourses = courseRefs(user.CourseIDs, titles)
	return resp, nil
}

// courseTitles loads the titles of the given courses keyed by id
func (s *userServiceImpl) courseTitles(ctx context.Context, ids []string) (map[string]string, error) {
	titles := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}
	courses, err := s.courseRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error loading courses: %w", err)
	}
	for _, c := range courses {
		titles[c.ID] = c.Title
	}
	return titles, nil
}

// courseRefs keeps the order of ids and drops courses that no longer exist
func courseRefs(ids []string, titles map[string]string) []dto.CourseRef {
	refs := make([]dto.CourseRef, 0, len(ids))
	for _, id := range ids {
		if title, ok := titles[id]; ok {
			refs = append(refs, dto.CourseRef{ID: id, Title: title})
		}
	}
	return refs
}
