package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/http/handlers"
	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Vendors        *handlers.VendorsHandler
	Events         *handlers.EventsHandler
	Checkin        *handlers.CheckinHandler
	Payments       *handlers.PaymentsHandler
	Documents      *handlers.DocumentsHandler
	Ops            *handlers.OpsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	// Public auth endpoints.
	api.Post("/auth/login", cfg.Auth.Login)
	api.Post("/auth/password/reset/request", cfg.Auth.RequestPasswordReset)
	api.Post("/auth/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	// MFA completion runs on the short-lived pending token. Route-level
	// middleware keeps the pending gate off the enrollment endpoints below.
	api.Post("/auth/mfa/verify", cfg.AuthMiddleware.Handle, auth.RequirePendingMFA(), cfg.Auth.VerifyMFA)
	api.Post("/auth/mfa/email-code", cfg.AuthMiddleware.Handle, auth.RequirePendingMFA(), cfg.Auth.RequestEmailCode)

	// Everything below requires a full access token.
	protected := api.Group("", cfg.AuthMiddleware.Handle, auth.RequireAccess())

	protected.Post("/auth/password/change", cfg.Auth.ChangePassword)
	protected.Post("/auth/mfa/totp/enroll", cfg.Auth.EnrollTOTP)
	protected.Post("/auth/mfa/totp/activate", cfg.Auth.ActivateTOTP)
	protected.Delete("/auth/mfa", cfg.Auth.DisableMFA)

	// Vendor self-service.
	protected.Get("/profile", cfg.Vendors.MyProfile)
	protected.Put("/profile", cfg.Vendors.UpdateProfile)
	protected.Post("/profile/photo", cfg.Vendors.UploadPhoto)
	protected.Get("/schedule", cfg.Events.MySchedule)
	protected.Post("/assignments/:id/confirm", cfg.Events.Confirm)
	protected.Post("/assignments/:id/decline", cfg.Events.Decline)
	protected.Post("/checkin", cfg.Checkin.Redeem)
	protected.Get("/documents", cfg.Documents.Mine)
	protected.Get("/documents/:id", cfg.Documents.Get)
	protected.Post("/documents", cfg.Documents.Upload)
	protected.Post("/documents/:id/sign", cfg.Documents.Sign)
	protected.Get("/leave/balance", cfg.Payments.MyLeaveBalance)

	// Shared directory reads.
	protected.Get("/regions", cfg.Events.ListRegions)
	protected.Get("/venues", cfg.Events.ListVenues)
	protected.Get("/events", cfg.Events.ListEvents)
	protected.Get("/events/:id", cfg.Events.GetEvent)

	// Manager operations.
	manager := protected.Group("", auth.RequireRole(domain.RoleManager, domain.RoleAdmin))
	manager.Post("/events", cfg.Events.CreateEvent)
	manager.Put("/events/:id", cfg.Events.UpdateEvent)
	manager.Post("/events/:id/cancel", cfg.Events.CancelEvent)
	manager.Post("/events/:id/assignments", cfg.Events.Assign)
	manager.Get("/events/:id/assignments", cfg.Events.Team)
	manager.Post("/assignments/:id/no-show", cfg.Events.MarkNoShow)
	manager.Post("/events/:id/checkin-code", cfg.Checkin.IssueCode)
	manager.Get("/events/:id/checkin-code", cfg.Checkin.ActiveCode)
	manager.Delete("/events/:id/checkin-code", cfg.Checkin.RevokeCode)
	manager.Get("/venues/:id/vendors", cfg.Vendors.Nearby)
	manager.Get("/regions/:id/vendors", cfg.Vendors.ByRegion)
	manager.Post("/documents/:id/review", cfg.Documents.Review)
	manager.Post("/payments", cfg.Payments.Create)
	manager.Post("/payments/:id/adjustments", cfg.Payments.Adjust)
	manager.Get("/payments/:id/adjustments", cfg.Payments.ListAdjustments)
	manager.Get("/payments/summary", cfg.Payments.Summary)
	manager.Post("/vendors/:id/leave", cfg.Payments.RecordLeave)
	manager.Get("/vendors/:id/leave", cfg.Payments.ListLeave)
	manager.Get("/vendors/:id/leave/balance", cfg.Payments.LeaveBalance)

	// Admin operations.
	admin := protected.Group("/admin", auth.RequireRole(domain.RoleAdmin))
	admin.Post("/vendors", cfg.Vendors.Create)
	admin.Put("/vendors/:id/background-check", cfg.Vendors.SetBackgroundCheck)
	admin.Post("/vendors/:id/activate", cfg.Vendors.Activate)
	admin.Post("/vendors/:id/suspend", cfg.Vendors.Suspend)
	admin.Post("/users/:id/reset-password", cfg.Auth.AdminResetPassword)
	admin.Get("/users/:id/documents", cfg.Documents.ListForUser)
	admin.Get("/users", cfg.Vendors.ListUsers)
	admin.Post("/regions", cfg.Events.CreateRegion)
	admin.Put("/regions/:id", cfg.Events.UpdateRegion)
	admin.Post("/venues", cfg.Events.CreateVenue)
	admin.Put("/venues/:id", cfg.Events.UpdateVenue)
	admin.Post("/payments/:id/approve", cfg.Payments.Approve)
	admin.Post("/payments/:id/paid", cfg.Payments.MarkPaid)
	admin.Get("/metrics", cfg.Ops.Metrics)
}
