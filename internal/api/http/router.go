package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/society-events/internal/api/http/handlers"
	"github.com/campus-kit/society-events/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Societies      *handlers.SocietiesHandler
	Members        *handlers.MembersHandler
	Events         *handlers.EventsHandler
	Purchases      *handlers.PurchasesHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	user := app.Group("/user")
	user.Post("/signup", cfg.Users.Signup)
	user.Post("/login", cfg.Users.Login)
	user.Post("/forgot", cfg.Users.ForgotPassword)
	user.Post("/reset", cfg.Users.ResetPassword)
	user.Post("/verify", cfg.Users.VerifyAccount)
	user.Post("/logout", cfg.AuthMiddleware.Require, cfg.Users.Logout)
	user.Post("/check", cfg.AuthMiddleware.Require, cfg.Users.CheckToken)

	societies := app.Group("/societies")
	societies.Get("/", cfg.Societies.List)
	societies.Post("/", cfg.AuthMiddleware.Optional, cfg.Societies.Get)
	societies.Post("/create", cfg.AuthMiddleware.Require, cfg.Societies.Create)
	societies.Post("/update", cfg.AuthMiddleware.Require, cfg.Societies.Update)
	societies.Post("/delete", cfg.AuthMiddleware.Require, cfg.Societies.Delete)
	societies.Post("/committee/add", cfg.AuthMiddleware.Require, cfg.Societies.CommitteeAdd)
	societies.Post("/committee/update", cfg.AuthMiddleware.Require, cfg.Societies.CommitteeUpdate)
	societies.Post("/committee/remove", cfg.AuthMiddleware.Require, cfg.Societies.CommitteeRemove)

	members := app.Group("/members", cfg.AuthMiddleware.Require)
	members.Post("/follow", cfg.Members.Follow)
	members.Post("/unfollow", cfg.Members.Unfollow)
	members.Post("/check", cfg.Members.Check)
	members.Post("/list", cfg.Members.List)
	members.Post("/societies", cfg.Members.Societies)

	events := app.Group("/events")
	events.Get("/", cfg.Events.List)
	events.Post("/", cfg.AuthMiddleware.Optional, cfg.Events.Get)
	events.Post("/search", cfg.Events.Search)
	events.Post("/create", cfg.AuthMiddleware.Require, cfg.Events.Create)
	events.Post("/update", cfg.AuthMiddleware.Require, cfg.Events.Update)
	events.Post("/delete", cfg.AuthMiddleware.Require, cfg.Events.Delete)
	events.Post("/auth", cfg.AuthMiddleware.Require, cfg.Events.Auth)

	purchase := app.Group("/purchase", cfg.AuthMiddleware.Require)
	purchase.Post("/", cfg.Purchases.Past)
	purchase.Post("/create", cfg.Purchases.Create)
	purchase.Post("/future", cfg.Purchases.Future)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Require)
	tickets.Post("/", cfg.Tickets.List)
	tickets.Post("/use", cfg.Tickets.Use)
}
