package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models/dto"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type courseSetup struct {
	*fixture
	mentor, otherMentor, student, outsider models.Actor
	course                                 *models.Course
}

func newCourseSetup(t *testing.T) *courseSetup {
	f := newFixture(t, SummarizeOptions{})
	s := &courseSetup{
		fixture:     f,
		mentor:      f.signup(t, "mira", models.RoleMentor),
		otherMentor: f.signup(t, "otto", models.RoleMentor),
		student:     f.signup(t, "sam", models.RoleStudent),
		outsider:    f.signup(t, "olga", models.RoleStudent),
	}
	s.course = f.course(t, s.mentor, "Algo")
	require.NoError(t, f.svc.Course.Join(context.Background(), s.student, s.course.ID))
	return s
}

func titlesOf(entries []dto.FileEntryDetail) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Title)
	}
	return out
}

func TestUploadRestrictedSectionsRequireCreator(t *testing.T) {
	s := newCourseSetup(t)
	for _, section := range []string{"syllabus", "notes"} {
		for _, actor := range []models.Actor{s.otherMentor, s.student, s.outsider} {
			_, err := s.upload(t, actor, s.course.ID, section, "x.pdf")
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "%s by %s", section, actor.ID)
		}
	}

	detail, err := s.svc.CourseFile.Get(context.Background(), s.mentor, s.course.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Syllabus)
	assert.Empty(t, detail.Notes)
}

func TestUploadAssignmentTypes(t *testing.T) {
	s := newCourseSetup(t)

	detail, err := s.upload(t, s.mentor, s.course.ID, "assignments", "q.pdf")
	require.NoError(t, err)
	detail, err = s.upload(t, s.student, s.course.ID, "assignments", "a.pdf")
	require.NoError(t, err)

	require.Len(t, detail.Assignments, 2)
	q, a := detail.Assignments[0], detail.Assignments[1]
	assert.Equal(t, models.FileTypeQuestion, q.Type)
	assert.Equal(t, models.UploaderMentor, q.UploadedByModel)
	assert.True(t, strings.HasPrefix(q.FileURL, "uploads/assignments/questions/"))
	assert.Equal(t, models.FileTypeAnswer, a.Type)
	assert.Equal(t, models.UploaderStudent, a.UploadedByModel)
	assert.Equal(t, models.RoleStudent, a.Role)
	assert.True(t, strings.HasPrefix(a.FileURL, "uploads/assignments/answers/"))

	_, err = s.upload(t, s.outsider, s.course.ID, "assignments", "a.pdf")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	_, err = s.upload(t, s.otherMentor, s.course.ID, "assignments", "q.pdf")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUploadStoresFileAndResolvesUploader(t *testing.T) {
	s := newCourseSetup(t)

	detail, err := s.svc.CourseFile.Upload(context.Background(), s.mentor, s.course.ID, "syllabus", fileHeader(t, "course plan.pdf", "plan"), "  ")
	require.NoError(t, err)
	require.Len(t, detail.Syllabus, 1)

	e := detail.Syllabus[0]
	assert.Equal(t, "course plan.pdf", e.Title, "title defaults to the original filename")
	assert.Equal(t, models.FileTypeFile, e.Type)
	assert.Regexp(t, `^uploads/syllabus/\d+-course-plan\.pdf$`, e.FileURL)
	assert.NotEmpty(t, e.ID)
	require.NotNil(t, e.UploadedBy)
	assert.Equal(t, dto.UploaderSummary{ID: s.mentor.ID, Name: "mira"}, *e.UploadedBy)
	assert.True(t, s.storage.Exists(e.FileURL))
}

func TestUploadValidation(t *testing.T) {
	s := newCourseSetup(t)
	ctx := context.Background()

	_, err := s.upload(t, s.mentor, s.course.ID, "others", "x.pdf")
	assert.ErrorIs(t, err, apperrors.ErrInvalidSection)

	_, err = s.upload(t, s.mentor, "missing", "notes", "x.pdf")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	_, err = s.svc.CourseFile.Upload(ctx, s.mentor, s.course.ID, "notes", nil, "t")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestUploadRemovesFileWhenSaveFails(t *testing.T) {
	s := newCourseSetup(t)
	s.store.SaveErr = errors.New("write conflict")

	_, err := s.upload(t, s.mentor, s.course.ID, "notes", "w1.pdf")
	require.Error(t, err)

	full, err := s.storage.GetFullPath("uploads/notes")
	require.NoError(t, err)
	entries, _ := readDir(full)
	assert.Empty(t, entries)
}

func TestDeletePreservesOrder(t *testing.T) {
	s := newCourseSetup(t)
	ctx := context.Background()
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"} {
		_, err := s.upload(t, s.mentor, s.course.ID, "notes", name)
		require.NoError(t, err)
	}
	before, err := s.svc.CourseFile.Get(ctx, s.mentor, s.course.ID)
	require.NoError(t, err)
	removedURL := before.Notes[1].FileURL

	detail, err := s.svc.CourseFile.Delete(ctx, s.mentor, s.course.ID, "notes", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "c.pdf", "d.pdf"}, titlesOf(detail.Notes))

	s.waitDeletes()
	assert.False(t, s.storage.Exists(removedURL))
	assert.True(t, s.storage.Exists(before.Notes[0].FileURL))
}

func TestDeleteKeepsFileWhenSaveFails(t *testing.T) {
	s := newCourseSetup(t)
	ctx := context.Background()
	detail, err := s.upload(t, s.mentor, s.course.ID, "notes", "keep.pdf")
	require.NoError(t, err)
	url := detail.Notes[0].FileURL

	s.store.SaveErr = errors.New("write conflict")
	_, err = s.svc.CourseFile.Delete(ctx, s.mentor, s.course.ID, "notes", "0")
	require.Error(t, err)

	s.waitDeletes()
	assert.True(t, s.storage.Exists(url))

	s.store.SaveErr = nil
	after, err := s.svc.CourseFile.Get(ctx, s.mentor, s.course.ID)
	require.NoError(t, err)
	assert.Len(t, after.Notes, 1)
}

func TestDeleteUsesConfiguredPublicPrefix(t *testing.T) {
	f := newFixtureWithPrefix(t, SummarizeOptions{}, "files")
	mentor := f.signup(t, "mira", models.RoleMentor)
	course := f.course(t, mentor, "Algo")

	detail, err := f.upload(t, mentor, course.ID, "notes", "n.pdf")
	require.NoError(t, err)
	url := detail.Notes[0].FileURL
	require.True(t, strings.HasPrefix(url, "files/notes/"), url)
	require.True(t, f.storage.Exists(url))

	_, err = f.svc.CourseFile.Delete(context.Background(), mentor, course.ID, "notes", "0")
	require.NoError(t, err)
	f.waitDeletes()
	assert.False(t, f.storage.Exists(url))
}

func TestDeleteIndexValidation(t *testing.T) {
	s := newCourseSetup(t)
	_, err := s.upload(t, s.mentor, s.course.ID, "syllabus", "a.pdf")
	require.NoError(t, err)

	for _, idx := range []string{"-1", "1", "abc", ""} {
		_, err := s.svc.CourseFile.Delete(context.Background(), s.mentor, s.course.ID, "syllabus", idx)
		assert.ErrorIs(t, err, apperrors.ErrInvalidIndex, "index %q", idx)
	}

	_, err = s.svc.CourseFile.Delete(context.Background(), s.mentor, s.course.ID, "others", "0")
	assert.ErrorIs(t, err, apperrors.ErrInvalidSection)
}

func TestDeleteRestrictedSectionsRequireCreator(t *testing.T) {
	s := newCourseSetup(t)
	ctx := context.Background()
	for _, section := range []string{"syllabus", "notes"} {
		_, err := s.upload(t, s.mentor, s.course.ID, section, section+".pdf")
		require.NoError(t, err)
		for _, actor := range []models.Actor{s.otherMentor, s.student} {
			_, err := s.svc.CourseFile.Delete(ctx, actor, s.course.ID, section, "0")
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		}
	}

	detail, err := s.svc.CourseFile.Get(ctx, s.mentor, s.course.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Syllabus, 1)
	assert.Len(t, detail.Notes, 1)
}

func TestDeleteAssignmentOwnership(t *testing.T) {
	s := newCourseSetup(t)
	ctx := context.Background()
	second := s.signup(t, "sue", models.RoleStudent)
	require.NoError(t, s.svc.Course.Join(ctx, second, s.course.ID))

	_, err := s.upload(t, s.student, s.course.ID, "assignments", "sam.pdf")
	require.NoError(t, err)
	_, err = s.upload(t, second, s.course.ID, "assignments", "sue.pdf")
	require.NoError(t, err)
	_, err = s.upload(t, s.mentor, s.course.ID, "assignments", "q.pdf")
	require.NoError(t, err)

	_, err = s.svc.CourseFile.Delete(ctx, second, s.course.ID, "assignments", "0")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	_, err = s.svc.CourseFile.Delete(ctx, s.student, s.course.ID, "assignments", "2")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	detail, err := s.svc.CourseFile.Delete(ctx, second, s.course.ID, "assignments", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"sam.pdf", "q.pdf"}, titlesOf(detail.Assignments))

	detail, err = s.svc.CourseFile.Delete(ctx, s.mentor, s.course.ID, "assignments", "0")
	require.NoError(t, err)
	assert.Equal(t, []string{"q.pdf"}, titlesOf(detail.Assignments))
	s.waitDeletes()
}

func TestGetRequiresViewAccess(t *testing.T) {
	s := newCourseSetup(t)
	ctx := context.Background()

	_, err := s.svc.CourseFile.Get(ctx, s.outsider, s.course.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	_, err = s.svc.CourseFile.Get(ctx, s.otherMentor, s.course.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	_, err = s.svc.CourseFile.Get(ctx, s.student, "missing")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	_, err = s.svc.CourseFile.Get(ctx, s.student, s.course.ID)
	assert.NoError(t, err)
}

func TestGetToleratesDeletedUploader(t *testing.T) {
	s := newCourseSetup(t)
	ctx := context.Background()
	_, err := s.upload(t, s.student, s.course.ID, "assignments", "a.pdf")
	require.NoError(t, err)
	require.NoError(t, s.store.Repositories().UserRepository.Delete(ctx, models.RoleStudent, s.student.ID))

	detail, err := s.svc.CourseFile.Get(ctx, s.mentor, s.course.ID)
	require.NoError(t, err)
	require.Len(t, detail.Assignments, 1)
	assert.Nil(t, detail.Assignments[0].UploadedBy)
}

func TestUpdateDescription(t *testing.T) {
	s := newCourseSetup(t)
	ctx := context.Background()

	_, err := s.svc.CourseFile.UpdateDescription(ctx, s.mentor, s.course.ID, " ")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	_, err = s.svc.CourseFile.UpdateDescription(ctx, s.student, s.course.ID, "new")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	course, err := s.svc.CourseFile.UpdateDescription(ctx, s.mentor, s.course.ID, "new")
	require.NoError(t, err)
	assert.Equal(t, "new", course.Description)

	stored, err := s.store.Repositories().CourseRepository.FindByID(ctx, s.course.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", stored.Description)
}
