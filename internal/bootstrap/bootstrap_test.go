package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/repositories/repotest"
	"github.com/ASahithi2005/NoteNexus-backend/internal/config"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/summarizer"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("JWT_SECRET", "bootstrap-secret")
	t.Setenv("STORAGE_PATH", t.TempDir())
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	return cfg
}

func TestBuildDependenciesAndRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	database := &Database{Driver: config.DriverMongo, Repos: repotest.NewStore().Repositories()}

	deps, err := BuildDependencies(cfg, database, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, deps.Redis)
	assert.NotNil(t, deps.Controllers.CourseDetail)

	router := SetupRouter(cfg, deps, zerolog.Nop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, os.WriteFile(filepath.Join(cfg.Storage.Path, "hello.txt"), []byte("hi"), 0o600))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/hello.txt", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hi", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/courses", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBuildDependenciesSeedsDemoData(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.SeedDemo = true
	store := repotest.NewStore()
	database := &Database{Driver: config.DriverMongo, Repos: store.Repositories()}

	_, err := BuildDependencies(cfg, database, zerolog.Nop())
	require.NoError(t, err)

	courses, err := database.Repos.CourseRepository.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestNewSummarizerByProvider(t *testing.T) {
	cfg := testConfig(t)

	_, ok := newSummarizer(cfg, 0, zerolog.Nop()).(*summarizer.HuggingFaceClient)
	assert.True(t, ok)

	cfg.Summarizer.Provider = config.ProviderOpenAI
	_, ok = newSummarizer(cfg, 0, zerolog.Nop()).(*summarizer.OpenAIClient)
	assert.True(t, ok)
}

func TestCorsConfig(t *testing.T) {
	all := corsConfig([]string{"*"})
	assert.True(t, all.AllowAllOrigins)
	assert.Empty(t, all.AllowOrigins)

	some := corsConfig([]string{"http://localhost:3000"})
	assert.False(t, some.AllowAllOrigins)
	assert.Equal(t, []string{"http://localhost:3000"}, some.AllowOrigins)
	assert.True(t, some.AllowCredentials)
}

func TestDatabaseCloseNil(t *testing.T) {
	var d *Database
	assert.NoError(t, d.Close(context.Background()))
	assert.NoError(t, (&Database{}).Close(context.Background()))
}
