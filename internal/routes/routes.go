package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/gatewatch/vpms-backend/internal/config"
	"github.com/gatewatch/vpms-backend/internal/handlers"
	"github.com/gatewatch/vpms-backend/internal/middleware"
	"github.com/gatewatch/vpms-backend/internal/workflow"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	recordHandler *handlers.RecordHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Resident directory for the guard's logging form
	api.Get("/auth/residents",
		middleware.Protected(cfg),
		middleware.RequireRoles(workflow.RoleSecurityGuard, workflow.RoleAdmin),
		authHandler.Residents)

	// Visitor/parcel records
	records := api.Group("/visitor-parcel", middleware.Protected(cfg))
	records.Post("/",
		middleware.RequireRoles(workflow.RoleSecurityGuard),
		recordHandler.Create)
	records.Get("/pending-approvals",
		middleware.RequireRoles(workflow.RoleResident),
		recordHandler.PendingApprovals)
	records.Get("/resident/:residentId?", recordHandler.GetByResident)
	records.Get("/",
		middleware.RequireRoles(workflow.RoleAdmin, workflow.RoleSecurityGuard),
		recordHandler.GetAll)
	records.Put("/:id/status", recordHandler.UpdateStatus)
	records.Delete("/:id",
		middleware.RequireRoles(workflow.RoleAdmin),
		recordHandler.Delete)
	records.Get("/:id", recordHandler.GetByID)

	// Admin dashboard and bulk operations
	admin := api.Group("/admin",
		middleware.Protected(cfg),
		middleware.RequireRoles(workflow.RoleAdmin))
	admin.Get("/dashboard/stats", adminHandler.DashboardStats)
	admin.Get("/dashboard/quick-actions", adminHandler.QuickActions)
	admin.Get("/reports", adminHandler.Reports)
	admin.Get("/export", adminHandler.Export)
	admin.Put("/bulk/status-update", adminHandler.BulkStatusUpdate)
}
