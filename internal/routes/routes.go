package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harmonymatch/admin-gateway/internal/auth"
	"github.com/harmonymatch/admin-gateway/internal/handlers"
	"github.com/harmonymatch/admin-gateway/internal/middleware"
	pkghttp "github.com/harmonymatch/admin-gateway/pkg/http"
)

// Handlers bundles the HTTP handlers the router wires up.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Users       *handlers.UserHandler
	Console     *handlers.ConsoleHandler
	Catalog     *handlers.CatalogHandler
	Maintenance *handlers.MaintenanceHandler
	Audit       *handlers.AuditHandler
}

// RegisterRoutes registers all application routes
func RegisterRoutes(router chi.Router, h Handlers) {
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		pkghttp.WriteNotFound(w, "route not found")
	})

	// Rate limiting config for the login endpoint
	rateLimitConfig := middleware.DefaultLoginRateLimit()

	// Public routes - no authentication required
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/login", h.Auth.Login)

	// Protected routes - bearer token required
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware())

		// User listing session
		r.Get("/console", h.Console.Snapshot)
		r.Delete("/console", h.Console.ResetSession)
		r.Post("/console/refresh", h.Console.Refresh)
		r.Put("/console/filters", h.Console.SetFilters)
		r.Put("/console/page", h.Console.SetPage)
		r.Put("/console/page-size", h.Console.SetPageSize)
		r.Post("/console/page/next", h.Console.NextPage)
		r.Post("/console/page/prev", h.Console.PrevPage)
		r.Post("/console/selection/toggle", h.Console.ToggleSelection)
		r.Post("/console/selection/all", h.Console.SelectAll)
		r.Post("/console/selection/clear", h.Console.ClearSelection)
		r.Post("/console/bulk", h.Console.ApplyBulk)

		// User listing and per-user administration
		r.Get("/users", h.Users.ListUsers)
		r.Get("/users/{id}", h.Users.GetUser)
		r.Put("/users/{id}", h.Users.UpdateUser)
		r.Delete("/users/{id}", h.Users.DeleteUser)
		r.Post("/users/{id}/password", h.Users.ChangePassword)

		// Payments and membership plans
		r.Get("/payments", h.Catalog.ListPayments)
		r.Get("/plans", h.Catalog.ListPlans)
		r.Post("/plans", h.Catalog.CreatePlan)
		r.Get("/plans/{id}", h.Catalog.GetPlan)
		r.Put("/plans/{id}", h.Catalog.UpdatePlan)
		r.Delete("/plans/{id}", h.Catalog.DeletePlan)

		// Promotional banners
		r.Get("/banners/{category}", h.Catalog.ListBanners)
		r.Post("/banners/{category}", h.Catalog.CreateBanner)
		r.Put("/banners/{category}/{id}", h.Catalog.UpdateBanner)
		r.Delete("/banners/{category}/{id}", h.Catalog.DeleteBanner)

		// Calling provider credentials
		r.Get("/provider-configs", h.Catalog.ListProviderConfigs)
		r.Post("/provider-configs", h.Catalog.CreateProviderConfig)
		r.Get("/provider-configs/{id}", h.Catalog.GetProviderConfig)
		r.Put("/provider-configs/{id}", h.Catalog.UpdateProviderConfig)
		r.Delete("/provider-configs/{id}", h.Catalog.DeleteProviderConfig)

		// Maintenance and the audit trail
		r.Post("/maintenance/run", h.Maintenance.Run)
		r.Get("/audit", h.Audit.GetRecent)
		r.Get("/audit/operator/{operator}", h.Audit.GetByOperator)
	})
}
