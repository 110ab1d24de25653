package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-directory/internal/api/http/handlers"
	"github.com/spec-kit/user-directory/internal/auth"
	"github.com/spec-kit/user-directory/internal/ratelimit"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Users   *handlers.UsersHandler
	Session *auth.SessionMiddleware
	Limiter *ratelimit.Limiter
}

// RegisterRoutes wires HTTP routes. Health probes are registered before the
// session and rate-limit middlewares so they stay reachable when redis is
// saturated.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.Session.Optional)
	if cfg.Limiter != nil {
		app.Use(cfg.Limiter.Handle)
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/signin", cfg.Auth.Signin)
	authGroup.Post("/signout", cfg.Auth.Signout)

	users := app.Group("/users")
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.GetByID)
	users.Put("/:id", cfg.Session.Require, cfg.Users.Update)
	users.Delete("/:id", cfg.Session.Require, cfg.Users.Delete)
}
