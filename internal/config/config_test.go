package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "168h", cfg.JWT.TokenExpiration)
	assert.Equal(t, ProviderHuggingFace, cfg.Summarizer.Provider)
	assert.Equal(t, 25, cfg.Summarizer.MaxPages)
	assert.Equal(t, 1000, cfg.Summarizer.ChunkSize)
	assert.False(t, cfg.Summarizer.PersistSummary)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
  allowed_origins: ["http://localhost:3000"]
database:
  driver: Postgres
  host: db
jwt:
  secret: from-file
summarizer:
  provider: openai
  chunk_size: 500
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SUMMARIZER_PERSIST_SUMMARY", "true")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, ProviderOpenAI, cfg.Summarizer.Provider)
	assert.Equal(t, 500, cfg.Summarizer.ChunkSize)
	assert.True(t, cfg.Summarizer.PersistSummary)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}},
		{"bad driver", map[string]string{"DB_DRIVER": "sqlite"}},
		{"bad provider", map[string]string{"SUMMARIZER_PROVIDER": "local"}},
		{"bad expiration", map[string]string{"JWT_TOKEN_EXPIRATION": "1week"}},
		{"bad window", map[string]string{"REDIS_LOGIN_WINDOW": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "s3cret")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigRejectsBadEnvValue(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SUMMARIZER_MAX_PAGES", "three")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUMMARIZER_MAX_PAGES")
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "u"
	cfg.Database.Password = "p"
	cfg.Database.Host = "h"
	cfg.Database.Port = "5432"
	cfg.Database.DBName = "notes"

	assert.Equal(t, "postgres://u:p@h:5432/notes?sslmode=disable", cfg.GetPostgresConnectionString())
}
