package seed

import (
	"context"
	"testing"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/repositories/repotest"
	appServices "github.com/ASahithi2005/NoteNexus-backend/internal/app/services"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDemoDataIsIdempotent(t *testing.T) {
	store := repotest.NewStore()
	repos := store.Repositories()
	svc := appServices.NewServices(appServices.Dependencies{
		Repos:  repos,
		JWT:    auth.NewJWTService(auth.JWTConfig{SecretKey: "seed"}),
		Logger: zerolog.Nop(),
	})
	ctx := context.Background()

	require.NoError(t, CreateDemoData(ctx, svc, zerolog.Nop()))
	require.NoError(t, CreateDemoData(ctx, svc, zerolog.Nop()))

	courses, err := repos.CourseRepository.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, DemoCourseTitle, courses[0].Title)
	assert.Equal(t, "Demo Mentor", courses[0].MentorName)
	require.Len(t, courses[0].StudentsEnrolled, 1)

	student, err := repos.UserRepository.FindByEmail(ctx, models.RoleStudent, DemoStudentEmail)
	require.NoError(t, err)
	assert.Equal(t, []string{courses[0].ID}, student.CourseIDs)
}
