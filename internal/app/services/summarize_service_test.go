package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSummarizeSetup(t *testing.T, opts SummarizeOptions, files ...string) *courseSetup {
	t.Helper()
	f := newFixture(t, opts)
	s := &courseSetup{
		fixture:  f,
		mentor:   f.signup(t, "mira", models.RoleMentor),
		student:  f.signup(t, "sam", models.RoleStudent),
		outsider: f.signup(t, "olga", models.RoleStudent),
	}
	s.course = f.course(t, s.mentor, "Algo")
	require.NoError(t, f.svc.Course.Join(context.Background(), s.student, s.course.ID))
	for _, name := range files {
		_, err := f.upload(t, s.mentor, s.course.ID, "notes", name)
		require.NoError(t, err)
	}
	return s
}

func TestSummarizeConcatenatesChunksInOrder(t *testing.T) {
	s := newSummarizeSetup(t, SummarizeOptions{}, "lecture.pdf")
	s.extractor.text = strings.Repeat("a", 1000) + strings.Repeat("b", 1000) + strings.Repeat("c", 500)

	summary, err := s.svc.Summarize.Summarize(context.Background(), s.student, s.course.ID, "notes", "0")
	require.NoError(t, err)
	assert.Equal(t, "S0\n\nS1\n\nS2", summary)

	require.Len(t, s.summarizer.inputs, 3)
	assert.Equal(t, strings.Repeat("a", 1000), s.summarizer.inputs[0])
	assert.Equal(t, strings.Repeat("c", 500), s.summarizer.inputs[2])
}

func TestSummarizeSkipsFailedChunks(t *testing.T) {
	s := newSummarizeSetup(t, SummarizeOptions{ChunkSize: 10}, "lecture.pdf")
	s.extractor.text = strings.Repeat("x", 30)
	s.summarizer.fail[1] = true

	summary, err := s.svc.Summarize.Summarize(context.Background(), s.mentor, s.course.ID, "notes", "0")
	require.NoError(t, err)
	assert.Equal(t, "S0\n\nS2", summary)
}

func TestSummarizeAllChunksFailing(t *testing.T) {
	s := newSummarizeSetup(t, SummarizeOptions{ChunkSize: 10}, "lecture.pdf")
	s.extractor.text = strings.Repeat("x", 20)
	s.summarizer.fail[0] = true
	s.summarizer.fail[1] = true

	summary, err := s.svc.Summarize.Summarize(context.Background(), s.mentor, s.course.ID, "notes", "0")
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Empty(t, summary)
	assert.Len(t, s.summarizer.inputs, 2)
}

func TestSummarizeEmptyDocument(t *testing.T) {
	s := newSummarizeSetup(t, SummarizeOptions{ChunkSize: 10}, "blank.pdf")
	s.extractor.text = ""

	summary, err := s.svc.Summarize.Summarize(context.Background(), s.mentor, s.course.ID, "notes", "0")
	require.NoError(t, err)
	assert.Empty(t, summary)
	assert.Empty(t, s.summarizer.inputs)
}

func TestSummarizeRejectsNonPDFWithoutExtraction(t *testing.T) {
	s := newSummarizeSetup(t, SummarizeOptions{}, "slides.pptx", "Upper.PDF")
	s.extractor.text = "text"

	_, err := s.svc.Summarize.Summarize(context.Background(), s.mentor, s.course.ID, "notes", "0")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.Zero(t, s.extractor.calls)

	_, err = s.svc.Summarize.Summarize(context.Background(), s.mentor, s.course.ID, "notes", "1")
	assert.NoError(t, err, "extension check is case-insensitive")
	assert.Equal(t, 1, s.extractor.calls)
}

func TestSummarizePreconditions(t *testing.T) {
	s := newSummarizeSetup(t, SummarizeOptions{}, "lecture.pdf")
	ctx := context.Background()

	_, err := s.svc.Summarize.Summarize(ctx, s.mentor, s.course.ID, "syllabus", "0")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = s.svc.Summarize.Summarize(ctx, s.mentor, "missing", "notes", "0")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	for _, idx := range []string{"1", "-1", "x"} {
		_, err = s.svc.Summarize.Summarize(ctx, s.mentor, s.course.ID, "notes", idx)
		assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
	}

	_, err = s.svc.Summarize.Summarize(ctx, s.outsider, s.course.ID, "notes", "0")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Zero(t, s.extractor.calls)
}

func TestSummarizeMissingFileOnDisk(t *testing.T) {
	s := newSummarizeSetup(t, SummarizeOptions{}, "lecture.pdf")
	ctx := context.Background()
	course, err := s.store.Repositories().CourseRepository.FindByID(ctx, s.course.ID)
	require.NoError(t, err)
	require.NoError(t, s.storage.DeleteFile(course.Notes[0].FileURL))

	_, err = s.svc.Summarize.Summarize(ctx, s.mentor, s.course.ID, "notes", "0")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Zero(t, s.extractor.calls)
}

func TestSummarizeExtractionFailure(t *testing.T) {
	s := newSummarizeSetup(t, SummarizeOptions{}, "lecture.pdf")
	s.extractor.err = errors.New("broken xref")

	_, err := s.svc.Summarize.Summarize(context.Background(), s.mentor, s.course.ID, "notes", "0")
	require.Error(t, err)
	assert.Empty(t, s.summarizer.inputs)
}

func TestSummarizePersistence(t *testing.T) {
	for _, persist := range []bool{false, true} {
		s := newSummarizeSetup(t, SummarizeOptions{PersistSummary: persist}, "lecture.pdf")
		s.extractor.text = "short text"
		ctx := context.Background()

		summary, err := s.svc.Summarize.Summarize(ctx, s.mentor, s.course.ID, "notes", "0")
		require.NoError(t, err)

		course, err := s.store.Repositories().CourseRepository.FindByID(ctx, s.course.ID)
		require.NoError(t, err)
		if persist {
			assert.Equal(t, summary, course.Notes[0].Summary)
		} else {
			assert.Empty(t, course.Notes[0].Summary)
		}
	}
}
