package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/servicelink/admin-service/internal/api/http/handlers"
	"github.com/servicelink/admin-service/internal/auth"
	"github.com/servicelink/admin-service/internal/domain"
	"github.com/servicelink/admin-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health           *handlers.HealthHandler
	Users            *handlers.UsersHandler
	Providers        *handlers.ProvidersHandler
	Clients          *handlers.ClientsHandler
	Dashboard        *handlers.DashboardHandler
	Categories       *handlers.CategoriesHandler
	AuthMiddleware   *auth.AuthMiddleware
	Metrics          *observability.Metrics
	UploadDir        string
	BootstrapEnabled bool
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{})))
	}
	if cfg.UploadDir != "" {
		app.Static("/uploads", cfg.UploadDir)
	}

	app.Post("/auth/login", cfg.Users.Login)

	admin := app.Group("/admin")
	if cfg.BootstrapEnabled {
		admin.Post("/set-password", cfg.Users.SetPassword)
		admin.Post("/create-admin", cfg.Users.CreateAdmin)
	}

	protected := admin.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))

	protected.Get("/dashboard/stats", cfg.Dashboard.Stats)
	protected.Get("/dashboard/recent-bookings", cfg.Dashboard.RecentBookings)

	protected.Get("/clients", cfg.Clients.List)
	protected.Post("/clients/:clientId/toggle-status", cfg.Clients.ToggleStatus)

	protected.Get("/providers", cfg.Providers.List)
	protected.Get("/providers/active", cfg.Providers.ListActive)
	protected.Get("/providers/unverified", cfg.Providers.ListUnverified)
	protected.Get("/providers/:providerId/details", cfg.Providers.Details)
	protected.Post("/providers/verify", cfg.Providers.Verify)
	protected.Post("/providers/reject", cfg.Providers.Reject)
	protected.Post("/providers/:providerId/toggle-status", cfg.Providers.ToggleStatus)

	protected.Post("/users/change-password", cfg.Users.ChangePassword)

	protected.Post("/category", cfg.Categories.Create)
	protected.Get("/category", cfg.Categories.List)
	protected.Patch("/category/:categoryId", cfg.Categories.Edit)
}
