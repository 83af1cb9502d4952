package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/zagros-construction/zagros-api/internal/config"
	"github.com/zagros-construction/zagros-api/internal/database"
	"github.com/zagros-construction/zagros-api/internal/handler"
	"github.com/zagros-construction/zagros-api/internal/middleware"
	"github.com/zagros-construction/zagros-api/internal/models"
	"github.com/zagros-construction/zagros-api/internal/observability"
	"github.com/zagros-construction/zagros-api/internal/repository"
	"github.com/zagros-construction/zagros-api/internal/router"
	"github.com/zagros-construction/zagros-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	projectRepo, serviceRepo, settingsRepo, activityRepo, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("failed to initialise storage: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	observability.RegisterMetrics()

	validate := validator.New(validator.WithRequiredStructEnabled())

	activityService := service.NewActivityService(activityRepo, logger)
	projectService := service.NewProjectService(projectRepo, activityService, validate, logger)
	catalogService := service.NewServiceCatalogService(serviceRepo, activityService, validate, logger)
	settingsService := service.NewSettingsService(settingsRepo, logger)
	analyticsService := service.NewAnalyticsService(projectRepo, serviceRepo, activityRepo, redisClient, cfg.AnalyticsCacheTTL, logger)
	authService := service.NewAuthService(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret, cfg.SessionTTL, validate, logger)
	uploadService := service.NewUploadService(cfg.UploadDir, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, router.Dependencies{
		Config:    cfg,
		Projects:  handler.NewProjectHandler(projectService, logger),
		Services:  handler.NewServiceHandler(catalogService, logger),
		Settings:  handler.NewSettingsHandler(settingsService, logger),
		Auth:      handler.NewAuthHandler(authService, logger),
		Activity:  handler.NewActivityHandler(activityService, logger),
		Analytics: handler.NewAnalyticsHandler(analyticsService, logger),
		Uploads:   handler.NewUploadHandler(uploadService, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildRepositories(cfg config.Config) (
	repository.ProjectRepository,
	repository.ServiceRepository,
	repository.SettingsRepository,
	repository.ActivityLogRepository,
	error,
) {
	if cfg.StorageDriver == config.DriverFile {
		return repository.NewProjectFileRepository(cfg.DataDir),
			repository.NewServiceFileRepository(cfg.DataDir),
			repository.NewSettingsFileRepository(cfg.DataDir),
			repository.NewActivityLogFileRepository(cfg.DataDir),
			nil
	}

	db, err := connectDatabase(cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	if err := db.AutoMigrate(&models.Project{}, &models.Service{}, &models.SiteSettings{}, &models.ActivityLog{}); err != nil {
		return nil, nil, nil, nil, err
	}

	return repository.NewProjectRepository(db),
		repository.NewServiceRepository(db),
		repository.NewSettingsRepository(db),
		repository.NewActivityLogRepository(db),
		nil
}

func connectDatabase(cfg config.Config) (*gorm.DB, error) {
	if cfg.StorageDriver == config.DriverPostgres {
		return database.ConnectPostgres(cfg.DatabaseURL)
	}
	return database.ConnectSQLite(cfg.SQLitePath)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
