package seed

import (
	"context"
	"errors"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models/dto"
	appServices "github.com/ASahithi2005/NoteNexus-backend/internal/app/services"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// Demo accounts created by CreateDemoData
const (
	DemoMentorEmail  = "mentor@notenexus.dev"
	DemoStudentEmail = "student@notenexus.dev"
	DemoPassword     = "Demo123!"
	DemoCourseTitle  = "Welcome to NoteNexus"
)

// CreateDemoData creates a demo mentor, a demo student and one course the
// student is enrolled in. An existing demo mentor means the data is already
// there and nothing is created.
func CreateDemoData(ctx context.Context, svc *appServices.Services, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating demo data...")

	mentorAuth, err := svc.Auth.Signup(ctx, &dto.SignupRequest{
		Name:     "Demo Mentor",
		Email:    DemoMentorEmail,
		Password: DemoPassword,
		Role:     models.RoleMentor,
	})
	if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		lgr.Info().Msg("Demo data already present")
		return nil
	}
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating demo mentor")
		return err
	}
	mentor := models.Actor{ID: mentorAuth.User.ID, Role: models.RoleMentor}

	var finalErr error

	course, err := svc.Course.Create(ctx, mentor, &dto.CreateCourseRequest{
		Title:       DemoCourseTitle,
		Description: "Upload a syllabus, share notes and collect assignments here.",
		Color:       "#4f46e5",
		ColorName:   "indigo",
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating demo course")
		finalErr = errors.Join(finalErr, err)
	}

	studentAuth, err := svc.Auth.Signup(ctx, &dto.SignupRequest{
		Name:     "Demo Student",
		Email:    DemoStudentEmail,
		Password: DemoPassword,
		Role:     models.RoleStudent,
	})
	switch {
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
	case err != nil:
		lgr.Error().Err(err).Msg("Error creating demo student")
		finalErr = errors.Join(finalErr, err)
	case course != nil:
		student := models.Actor{ID: studentAuth.User.ID, Role: models.RoleStudent}
		if err := svc.Course.Join(ctx, student, course.ID); err != nil {
			lgr.Error().Err(err).Msg("Error enrolling demo student")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Str("mentor", DemoMentorEmail).Str("student", DemoStudentEmail).Msg("Demo data created")
	}
	return finalErr
}
