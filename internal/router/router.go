package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zagros-construction/zagros-api/internal/config"
	"github.com/zagros-construction/zagros-api/internal/handler"
	"github.com/zagros-construction/zagros-api/internal/middleware"
	"github.com/zagros-construction/zagros-api/internal/observability"
)

// Dependencies carries every handler the router mounts.
type Dependencies struct {
	Config    config.Config
	Projects  *handler.ProjectHandler
	Services  *handler.ServiceHandler
	Settings  *handler.SettingsHandler
	Auth      *handler.AuthHandler
	Activity  *handler.ActivityHandler
	Analytics *handler.AnalyticsHandler
	Uploads   *handler.UploadHandler
}

// Register mounts all API routes on the Fiber application.
func Register(app *fiber.App, deps Dependencies) {
	protect := middleware.AdminProtected(deps.Config.JWTSecret)

	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api")
	api.Get("/health", handler.HealthCheck(deps.Config))

	deps.Projects.Register(api.Group("/projects"), protect)
	deps.Services.Register(api.Group("/services"), protect)
	deps.Settings.Register(api.Group("/settings"), protect)

	admin := api.Group("/admin")
	admin.Use("/login", middleware.RateLimit("admin-login", 10, time.Minute))
	deps.Auth.Register(admin)

	deps.Activity.Register(admin.Group("/activity", protect))
	deps.Analytics.Register(admin.Group("/analytics", protect))
	deps.Uploads.Register(admin.Group("/uploads", protect))
}
