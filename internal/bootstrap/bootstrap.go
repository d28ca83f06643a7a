package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/honorsociety/internal/app/auth"
	appControllers "github.com/yigit/honorsociety/internal/app/controllers"
	appMigrations "github.com/yigit/honorsociety/internal/app/migrations"
	appRepos "github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/app/repositories/inmem"
	appRoutes "github.com/yigit/honorsociety/internal/app/routes"
	appServices "github.com/yigit/honorsociety/internal/app/services"
	"github.com/yigit/honorsociety/internal/config"
	"github.com/yigit/honorsociety/internal/db"
	appMiddleware "github.com/yigit/honorsociety/internal/middleware"
	pkgAuth "github.com/yigit/honorsociety/internal/pkg/auth"
	"github.com/yigit/honorsociety/internal/pkg/helpers"
	"github.com/yigit/honorsociety/internal/pkg/logger"
	"github.com/yigit/honorsociety/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       appServices.AuthService
	CampusService     appServices.CampusService
	DepartmentService appServices.DepartmentService
	CourseService     appServices.CourseService
	StudentService    appServices.StudentService
	GWARecordService  appServices.GWARecordService
	OfficerService    appServices.OfficerService

	AuthController       *appControllers.AuthController
	CampusController     *appControllers.CampusController
	DepartmentController *appControllers.DepartmentController
	CourseController     *appControllers.CourseController
	StudentController    *appControllers.StudentController
	GWARecordController  *appControllers.GWARecordController
	OfficerController    *appControllers.OfficerController
	HealthController     *appControllers.HealthController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	OfficerGate    *appAuth.OfficerGate
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath, ".env")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := SetupLogger(cfg)
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupLogger configures the global logger from cfg
func SetupLogger(cfg *config.Config) zerolog.Logger {
	return logger.Configure(logger.Config{
		Level:   logger.ParseLevel(cfg.Logging.Level),
		Pretty:  strings.ToLower(cfg.Logging.Format) == "text",
		Service: "honorsociety",
	})
}

// SetupRepositories opens the configured store. For PostgreSQL it connects,
// runs pending migrations and returns a close function for the pool.
func SetupRepositories(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory store; data is lost on restart")
		return inmem.NewRepositories(), func() {}, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if err := RunMigrations(ctx, cfg, database, lgr); err != nil {
		database.Close()
		return nil, nil, err
	}

	return appRepos.NewRepositories(database.Pool), database.Close, nil
}

// RunMigrations applies pending SQL migrations from the configured directory
func RunMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	applied, err := migrator.MigrateFromDirectory(ctx, migrationsDir)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")
	return nil
}

// SeedDefaults creates the default academic data when enabled
func SeedDefaults(ctx context.Context, cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) {
	if !cfg.Database.SeedOnStart {
		return
	}
	if err := seed.CreateDefaultData(ctx, repos, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// NewJWTService builds the token service from cfg
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 15*time.Minute),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 24*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})
}

// BuildDependencies initializes application services, controllers and middleware.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	pkgAuth.BcryptCost = cfg.Auth.BcryptCost

	deps := &Dependencies{Logger: lgr, Repos: repos}
	deps.JWTService = NewJWTService(cfg)
	deps.OfficerGate = appAuth.NewOfficerGate(repos.OfficerRepository)

	deps.AuthService = appServices.NewAuthService(
		repos.UserRepository,
		repos.OfficerRepository,
		repos.CampusRepository,
		repos.TokenRepository,
		deps.OfficerGate,
		deps.JWTService,
		lgr,
	)
	deps.CampusService = appServices.NewCampusService(repos.CampusRepository, lgr)
	deps.DepartmentService = appServices.NewDepartmentService(repos.DepartmentRepository, repos.CampusRepository, lgr)
	deps.CourseService = appServices.NewCourseService(repos.CourseRepository, repos.DepartmentRepository, lgr)
	deps.StudentService = appServices.NewStudentService(repos.StudentRepository, repos.CampusRepository, repos.DepartmentRepository, lgr)
	deps.GWARecordService = appServices.NewGWARecordService(repos.GWARecordRepository, repos.StudentRepository, lgr)
	deps.OfficerService = appServices.NewOfficerService(repos.OfficerRepository, repos.UserRepository, repos.CampusRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.OfficerGate, cfg.Auth.EnforceOfficerPerRequest)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.CampusController = appControllers.NewCampusController(deps.CampusService)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.DepartmentService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.GWARecordController = appControllers.NewGWARecordController(deps.GWARecordService)
	deps.OfficerController = appControllers.NewOfficerController(deps.OfficerService)
	deps.HealthController = appControllers.NewHealthController(repos.Health, repos.Driver)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	appMiddleware.SetupValidator()

	router := gin.New()
	router.Use(appMiddleware.Recovery(lgr), appMiddleware.RequestLogger(lgr))

	if cfg.Server.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		router.Use(appMiddleware.NewMetrics(registry).Handler())
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CampusController,
		deps.DepartmentController,
		deps.CourseController,
		deps.StudentController,
		deps.GWARecordController,
		deps.OfficerController,
		deps.HealthController,
		deps.AuthMiddleware,
	)

	return router
}
