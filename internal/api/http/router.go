package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/interinest/marketplace/internal/api/http/handlers"
	"github.com/interinest/marketplace/internal/auth"
	"github.com/interinest/marketplace/internal/domain"
	"github.com/interinest/marketplace/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Designer *handlers.DesignerHandler
	Admin    *handlers.AdminHandler
	User     *handlers.UserHandler
	Catalog  *handlers.CatalogHandler
	Gate     *auth.GateMiddleware
	Metrics  *observability.Metrics
}

// NewApp builds the fiber app. Routing is case-sensitive so that every path a
// route group serves is also a path the gate classifies.
func NewApp(appName string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:       appName,
		CaseSensitive: true,
	})
}

// RegisterRoutes wires HTTP routes. The gate runs before every handler.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	app.Get(auth.LoginPath, cfg.Auth.LoginPage)
	app.Post(auth.LoginPath, cfg.Auth.Login)
	app.Get(auth.RegisterPath, cfg.Auth.RegisterPage)
	app.Post(auth.RegisterPath, cfg.Auth.Register)
	app.Post("/logout", cfg.Auth.Logout)

	app.Get("/designers/:id", cfg.Catalog.Designer)
	app.Get("/projects", cfg.Catalog.Projects)

	designer := app.Group("/designer-dashboard", auth.RequireRole(domain.RoleDesigner))
	designer.Get("/", cfg.Designer.Dashboard)
	designer.Get("/portfolio", cfg.Designer.Portfolio)
	designer.Put("/portfolio", cfg.Designer.UpdatePortfolio)
	designer.Get("/projects", cfg.Designer.ListProjects)
	designer.Post("/projects", cfg.Designer.CreateProject)
	designer.Get("/projects/:id", cfg.Designer.GetProject)
	designer.Put("/projects/:id", cfg.Designer.UpdateProject)
	designer.Delete("/projects/:id", cfg.Designer.DeleteProject)

	admin := app.Group("/admin", auth.RequireRole(domain.RoleAdmin))
	admin.Get("/", cfg.Admin.Dashboard)
	admin.Get("/designers", cfg.Admin.ListDesigners)
	admin.Post("/designers/:id/approve", cfg.Admin.ApproveDesigner)
	admin.Post("/accounts/:id/disable", cfg.Admin.DisableAccount)
	admin.Post("/accounts/:id/enable", cfg.Admin.EnableAccount)

	user := app.Group("/user-dashboard", auth.RequireRole(domain.RoleUser))
	user.Get("/", cfg.User.Dashboard)
}
