package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/http/handlers"
	"github.com/spec-kit/catalog-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Services   *handlers.ServicesHandler
	Requests   *handlers.RequestsHandler
	Admin      *handlers.AdminHandler
	AdminGuard *auth.AdminGuard
}

// RegisterRoutes wires HTTP routes.
//
// AdminGuard is constructed but attached to nothing: the admin area (add,
// profile, all) and the request listings are served without authentication.
// Profile verifies its bearer token inside the handler instead. Mounting the
// guard on the admin group would be the obvious hardening step.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	api.Post("/services", cfg.Services.Create)
	api.Get("/services", cfg.Services.List)

	api.Post("/requests", cfg.Requests.Create)
	api.Get("/requests", cfg.Requests.List)
	api.Get("/requests/:username", cfg.Requests.ListByUsername)
	api.Patch("/requests/:id", cfg.Requests.UpdateStatus)

	adminGroup := api.Group("/admin")
	adminGroup.Post("/add", cfg.Admin.Add)
	adminGroup.Post("/login", cfg.Admin.Login)
	adminGroup.Get("/profile", cfg.Admin.Profile)
	adminGroup.Get("/all", cfg.Admin.List)
}
