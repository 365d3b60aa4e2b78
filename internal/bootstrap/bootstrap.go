package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/controllers"
	appMigrations "github.com/ASahithi2005/NoteNexus-backend/internal/app/migrations"
	appRepos "github.com/ASahithi2005/NoteNexus-backend/internal/app/repositories"
	appRoutes "github.com/ASahithi2005/NoteNexus-backend/internal/app/routes"
	appServices "github.com/ASahithi2005/NoteNexus-backend/internal/app/services"
	"github.com/ASahithi2005/NoteNexus-backend/internal/config"
	"github.com/ASahithi2005/NoteNexus-backend/internal/db"
	appMiddleware "github.com/ASahithi2005/NoteNexus-backend/internal/middleware"
	pkgAuth "github.com/ASahithi2005/NoteNexus-backend/internal/pkg/auth"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/filestorage"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/helpers"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/logger"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/pdftext"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/summarizer"
	"github.com/ASahithi2005/NoteNexus-backend/internal/seed"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Database is the connected store behind the repositories
type Database struct {
	Driver string
	Repos  *appRepos.Repositories
	close  func(ctx context.Context) error
}

// Close releases the underlying connection
func (d *Database) Close(ctx context.Context) error {
	if d == nil || d.close == nil {
		return nil
	}
	return d.close(ctx)
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	Redis          *redis.Client // nil when rate limiting is disabled
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env and configuration, then initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, relying on environment variables")
	}

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects the configured driver and prepares its schema.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*Database, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")

	switch cfg.Database.Driver {
	case config.DriverMongo:
		return setupMongo(cfg, lgr)
	case config.DriverPostgres:
		return setupPostgres(cfg, lgr)
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}

func setupMongo(cfg *config.Config, lgr zerolog.Logger) (*Database, error) {
	mongoDB, err := db.NewMongoDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to MongoDB")
		return nil, err
	}
	lgr.Info().Str("database", cfg.Database.Name).Msg("MongoDB connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := appRepos.EnsureMongoIndexes(ctx, mongoDB.Database); err != nil {
		_ = mongoDB.Close(context.Background())
		return nil, fmt.Errorf("failed to ensure mongo indexes: %w", err)
	}

	return &Database{
		Driver: config.DriverMongo,
		Repos:  appRepos.NewMongoRepositories(mongoDB.Database),
		close:  mongoDB.Close,
	}, nil
}

func setupPostgres(cfg *config.Config, lgr zerolog.Logger) (*Database, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return &Database{
		Driver: config.DriverPostgres,
		Repos:  appRepos.NewPostgresRepositories(database.Pool),
		close: func(context.Context) error {
			database.Close()
			return nil
		},
	}, nil
}

// BuildDependencies initializes storage, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, database *Database, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.Path, cfg.Storage.PublicPrefix)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.TokenExpiration, pkgAuth.DefaultTokenExpiration),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	chunkTimeout := helpers.ParseDuration(cfg.Summarizer.Timeout, appServices.DefaultChunkTimeout)
	deps.Services = appServices.NewServices(appServices.Dependencies{
		Repos:      database.Repos,
		JWT:        deps.JWTService,
		Storage:    deps.FileStorage,
		Extractor:  pdftext.NewPDFExtractor(),
		Summarizer: newSummarizer(cfg, chunkTimeout, lgr),
		Summarize: appServices.SummarizeOptions{
			MaxPages:       cfg.Summarizer.MaxPages,
			ChunkSize:      cfg.Summarizer.ChunkSize,
			ChunkTimeout:   chunkTimeout,
			PersistSummary: cfg.Summarizer.PersistSummary,
		},
		Logger: lgr,
	})

	if cfg.Database.SeedDemo {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := seed.CreateDemoData(ctx, deps.Services, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
		cancel()
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	svc := deps.Services
	deps.Controllers = appRoutes.Controllers{
		Auth:         controllers.NewAuthController(svc.Auth, lgr),
		Course:       controllers.NewCourseController(svc.Course, lgr),
		CourseDetail: controllers.NewCourseDetailController(svc.CourseFile, svc.Summarize, lgr),
		Note:         controllers.NewNoteController(svc.Note, lgr),
		User:         controllers.NewUserController(svc.User, lgr),
	}

	if cfg.Redis.Addr != "" {
		deps.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := deps.Redis.Ping(ctx).Err(); err != nil {
			// The limiter fails open, so an unreachable redis only disables it
			lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, auth rate limiting will pass requests through")
		} else {
			lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connected for rate limiting")
		}
	}

	return deps, nil
}

func newSummarizer(cfg *config.Config, timeout time.Duration, lgr zerolog.Logger) summarizer.Client {
	if cfg.Summarizer.Provider == config.ProviderOpenAI {
		lgr.Info().Str("model", cfg.Summarizer.Model).Msg("Using OpenAI summarizer")
		return summarizer.NewOpenAIClient(cfg.Summarizer.APIKey, cfg.Summarizer.Model, cfg.Summarizer.BaseURL)
	}
	if cfg.Summarizer.APIKey == "" {
		lgr.Warn().Msg("HF_API_KEY is empty, summarization requests will be rejected upstream")
	}
	lgr.Info().Str("url", cfg.Summarizer.APIURL).Msg("Using Hugging Face summarizer")
	return summarizer.NewHuggingFaceClient(cfg.Summarizer.APIURL, cfg.Summarizer.APIKey, timeout)
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(), cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	appRoutes.SetupSwagger(router)

	// Uploaded files are served under the same prefix the stored URLs carry
	router.Static("/"+strings.Trim(cfg.Storage.PublicPrefix, "/"), cfg.Storage.Path)
	lgr.Info().Str("path", cfg.Storage.Path).Msg("Static file serving configured for uploads directory")

	var authLimit gin.HandlerFunc
	if deps.Redis != nil {
		window := helpers.ParseDuration(cfg.Redis.LoginWindow, time.Minute)
		authLimit = appMiddleware.NewRateLimiter(deps.Redis).Limit("auth", cfg.Redis.LoginLimit, window)
	}

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, authLimit)
	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}

	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
