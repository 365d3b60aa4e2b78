package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models/dto"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/repositories/repotest"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/auth"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/filestorage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) Extract(path string, maxPages int) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeSummarizer struct {
	mu     sync.Mutex
	inputs []string
	// fail lists chunk positions that return an error
	fail map[int]bool
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.inputs)
	f.inputs = append(f.inputs, text)
	if f.fail[n] {
		return "", errors.New("model unavailable")
	}
	return "S" + string(rune('0'+n)), nil
}

type fixture struct {
	store      *repotest.Store
	storage    *filestorage.LocalStorage
	extractor  *fakeExtractor
	summarizer *fakeSummarizer
	svc        *Services
}

func newFixture(t *testing.T, opts SummarizeOptions) *fixture {
	t.Helper()
	return newFixtureWithPrefix(t, opts, "uploads")
}

func newFixtureWithPrefix(t *testing.T, opts SummarizeOptions, publicPrefix string) *fixture {
	t.Helper()
	storage, err := filestorage.NewLocalStorage(t.TempDir(), publicPrefix)
	require.NoError(t, err)

	f := &fixture{
		store:      repotest.NewStore(),
		storage:    storage,
		extractor:  &fakeExtractor{},
		summarizer: &fakeSummarizer{fail: map[int]bool{}},
	}
	f.svc = NewServices(Dependencies{
		Repos:      f.store.Repositories(),
		JWT:        auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenIssuer: "notenexus"}),
		Storage:    storage,
		Extractor:  f.extractor,
		Summarizer: f.summarizer,
		Summarize:  opts,
		Logger:     zerolog.Nop(),
	})
	return f
}

func (f *fixture) signup(t *testing.T, name string, role models.RoleType) models.Actor {
	t.Helper()
	resp, err := f.svc.Auth.Signup(context.Background(), &dto.SignupRequest{
		Name:     name,
		Email:    name + "@example.com",
		Password: "secret123",
		Role:     role,
	})
	require.NoError(t, err)
	return models.Actor{ID: resp.User.ID, Role: role}
}

func (f *fixture) course(t *testing.T, mentor models.Actor, title string) *models.Course {
	t.Helper()
	c, err := f.svc.Course.Create(context.Background(), mentor, &dto.CreateCourseRequest{
		Title: title, Description: "d", Color: "#fff", ColorName: "white",
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) upload(t *testing.T, actor models.Actor, courseID, section, filename string) (*dto.CourseDetail, error) {
	t.Helper()
	return f.svc.CourseFile.Upload(context.Background(), actor, courseID, section, fileHeader(t, filename, "content"), "")
}

func (f *fixture) waitDeletes() {
	f.svc.CourseFile.(*courseFileServiceImpl).pending.Wait()
}

// fileHeader builds a multipart file header the way gin hands it to handlers
func fileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func fixedClock(t *testing.T, start time.Time) {
	t.Helper()
	orig := clock
	cur := start
	clock = func() time.Time {
		cur = cur.Add(time.Minute)
		return cur
	}
	t.Cleanup(func() { clock = orig })
}

func readDir(dir string) ([]os.DirEntry, error) {
	return os.ReadDir(dir)
}
