package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Supported summarization providers
const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver" env:"DB_DRIVER"`

		// mongo
		URI  string `yaml:"uri" env:"MONGO_URI"`
		Name string `yaml:"name" env:"MONGO_DB"`

		// postgres
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`

		// SeedDemo creates a demo mentor, student and course on startup
		SeedDemo bool `yaml:"seed_demo" env:"SEED_DEMO"`
	} `yaml:"database"`

	JWT struct {
		Secret          string `yaml:"secret" env:"JWT_SECRET"`
		TokenExpiration string `yaml:"token_expiration" env:"JWT_TOKEN_EXPIRATION"`
		Issuer          string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Storage struct {
		Path         string `yaml:"path" env:"STORAGE_PATH"`
		PublicPrefix string `yaml:"public_prefix" env:"STORAGE_PUBLIC_PREFIX"`
	} `yaml:"storage"`

	Summarizer struct {
		Provider       string `yaml:"provider" env:"SUMMARIZER_PROVIDER"`
		APIURL         string `yaml:"api_url" env:"HF_API_URL"`
		APIKey         string `yaml:"api_key" env:"HF_API_KEY"`
		Model          string `yaml:"model" env:"SUMMARIZER_MODEL"`
		BaseURL        string `yaml:"base_url" env:"SUMMARIZER_BASE_URL"`
		Timeout        string `yaml:"timeout" env:"SUMMARIZER_TIMEOUT"`
		MaxPages       int    `yaml:"max_pages" env:"SUMMARIZER_MAX_PAGES"`
		ChunkSize      int    `yaml:"chunk_size" env:"SUMMARIZER_CHUNK_SIZE"`
		PersistSummary bool   `yaml:"persist_summary" env:"SUMMARIZER_PERSIST_SUMMARY"`
	} `yaml:"summarizer"`

	Redis struct {
		Addr        string `yaml:"addr" env:"REDIS_ADDR"`
		Password    string `yaml:"password" env:"REDIS_PASSWORD"`
		DB          int    `yaml:"db" env:"REDIS_DB"`
		LoginLimit  int    `yaml:"login_limit" env:"REDIS_LOGIN_LIMIT"`
		LoginWindow string `yaml:"login_window" env:"REDIS_LOGIN_WINDOW"`
	} `yaml:"redis"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// A missing file is fine; defaults and env still apply
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	config.Database.Driver = strings.ToLower(strings.TrimSpace(config.Database.Driver))
	config.Summarizer.Provider = strings.ToLower(strings.TrimSpace(config.Summarizer.Provider))

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "5000"
	config.Server.Mode = "development"
	config.Server.AllowedOrigins = []string{"*"}

	// Database defaults
	config.Database.Driver = DriverMongo
	config.Database.URI = "mongodb://localhost:27017"
	config.Database.Name = "notenexus"
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "notenexus"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	// JWT defaults
	config.JWT.TokenExpiration = "168h"
	config.JWT.Issuer = "notenexus"

	// Storage defaults
	config.Storage.Path = "uploads"
	config.Storage.PublicPrefix = "uploads"

	// Summarizer defaults
	config.Summarizer.Provider = ProviderHuggingFace
	config.Summarizer.APIURL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"
	config.Summarizer.Model = "gpt-4o-mini"
	config.Summarizer.Timeout = "60s"
	config.Summarizer.MaxPages = 25
	config.Summarizer.ChunkSize = 1000

	// Redis defaults; an empty addr disables rate limiting
	config.Redis.LoginLimit = 10
	config.Redis.LoginWindow = "1m"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	switch config.Database.Driver {
	case DriverMongo:
		if config.Database.URI == "" {
			return fmt.Errorf("mongo uri is required")
		}
		if config.Database.Name == "" {
			return fmt.Errorf("mongo database name is required")
		}
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid connection max lifetime format: %w", err)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	switch config.Summarizer.Provider {
	case ProviderHuggingFace, ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported summarizer provider %q", config.Summarizer.Provider)
	}

	durations := map[string]string{
		"JWT token expiration": config.JWT.TokenExpiration,
		"summarizer timeout":   config.Summarizer.Timeout,
		"redis login window":   config.Redis.LoginWindow,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if config.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in release mode
func (c *Config) IsProduction() bool {
	mode := strings.ToLower(c.Server.Mode)
	return mode == "production" || mode == "release"
}
