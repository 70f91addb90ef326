package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/bpdb/power-portal/internal/api/http/handlers"
	"github.com/bpdb/power-portal/internal/auth"
	"github.com/bpdb/power-portal/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Me             *handlers.MeHandler
	Assets         *handlers.AssetsHandler
	Incidents      *handlers.IncidentsHandler
	Users          *handlers.UsersHandler
	Billing        *handlers.BillingHandler
	Metrics        *observability.Metrics
	AuthMiddleware *auth.AuthMiddleware
	Policy         *auth.PolicyEnforcer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	me := app.Group("/me", cfg.AuthMiddleware.Handle)
	me.Get("", cfg.Me.Profile)
	me.Get("/navigation", cfg.Me.Navigation)

	customerOnly := auth.RequireCustomer()
	me.Get("/bills", customerOnly, cfg.Billing.ListBills)
	me.Post("/bills/:id/pay", customerOnly, cfg.Billing.PayBill)
	me.Get("/service-requests", customerOnly, cfg.Billing.ListServiceRequests)
	me.Post("/service-requests", customerOnly, cfg.Billing.FileServiceRequest)

	app.Get("/roles", cfg.AuthMiddleware.Handle, cfg.Policy.RequireAccess(auth.ResourceUsers, auth.ActionRead), cfg.Me.Roles)

	mgmt := app.Group("/management", cfg.AuthMiddleware.Handle)
	registerAssetRoutes(mgmt, cfg)
	registerIncidentRoutes(mgmt, cfg)
	registerUserRoutes(mgmt, cfg)
}

func registerAssetRoutes(mgmt fiber.Router, cfg RouteConfig) {
	read := cfg.Policy.RequireAccess(auth.ResourcePowerPlants, auth.ActionRead)
	write := cfg.Policy.RequireAccess(auth.ResourcePowerPlants, auth.ActionWrite)
	plants := mgmt.Group("/power-plants")
	plants.Get("", read, cfg.Assets.ListPowerPlants)
	plants.Get("/:id", read, cfg.Assets.GetPowerPlant)
	plants.Post("", write, cfg.Assets.CreatePowerPlant)
	plants.Patch("/:id", write, cfg.Assets.UpdatePowerPlant)
	plants.Delete("/:id", write, cfg.Assets.DeletePowerPlant)

	read = cfg.Policy.RequireAccess(auth.ResourceSubstations, auth.ActionRead)
	write = cfg.Policy.RequireAccess(auth.ResourceSubstations, auth.ActionWrite)
	subs := mgmt.Group("/substations")
	subs.Get("", read, cfg.Assets.ListSubstations)
	subs.Get("/:id", read, cfg.Assets.GetSubstation)
	subs.Post("", write, cfg.Assets.CreateSubstation)
	subs.Patch("/:id", write, cfg.Assets.UpdateSubstation)
	subs.Delete("/:id", write, cfg.Assets.DeleteSubstation)
}

func registerIncidentRoutes(mgmt fiber.Router, cfg RouteConfig) {
	read := cfg.Policy.RequireAccess(auth.ResourceIncidents, auth.ActionRead)
	write := cfg.Policy.RequireAccess(auth.ResourceIncidents, auth.ActionWrite)
	incidents := mgmt.Group("/incidents")
	incidents.Get("", read, cfg.Incidents.List)
	incidents.Get("/:id", read, cfg.Incidents.Get)
	incidents.Post("", write, cfg.Incidents.Report)
	incidents.Patch("/:id/status", write, cfg.Incidents.UpdateStatus)
	incidents.Patch("/:id/assign", write, cfg.Incidents.Assign)
}

func registerUserRoutes(mgmt fiber.Router, cfg RouteConfig) {
	read := cfg.Policy.RequireAccess(auth.ResourceUsers, auth.ActionRead)
	write := cfg.Policy.RequireAccess(auth.ResourceUsers, auth.ActionWrite)
	users := mgmt.Group("/users")
	users.Get("", read, cfg.Users.List)
	users.Get("/:id", read, cfg.Users.Get)
	users.Patch("/:id", write, cfg.Users.Update)
}
