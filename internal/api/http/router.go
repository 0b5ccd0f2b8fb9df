package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-admin-service/internal/api/http/handlers"
	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Users  *handlers.UsersHandler
	Guard  *auth.Guard
}

// RegisterRoutes wires HTTP routes and declares each route's access
// requirement in the guard's registry. Routes with no declaration fall back
// to requiring authentication.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	reg := cfg.Guard.Registry()
	app.Use(cfg.Guard.Handle)

	app.Get("/healthcheck", cfg.Health.Check)
	reg.Route(fiber.MethodGet, "/healthcheck", auth.Public())

	authGroup := app.Group("/auth")
	reg.Group("/auth", auth.Public())

	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authGroup.Post("/password/change", cfg.Auth.ChangePassword)
	reg.Route(fiber.MethodPost, "/auth/password/change", auth.Authenticated())

	users := app.Group("/users")
	reg.Group("/users", auth.Roles(domain.RoleAdmin))

	users.Post("/register", cfg.Users.Register)
	reg.Route(fiber.MethodPost, "/users/register", auth.Public())

	users.Get("/", cfg.Users.List)

	users.Get("/details", cfg.Users.OwnDetails)
	reg.Route(fiber.MethodGet, "/users/details", auth.Roles(domain.RoleAdmin, domain.RoleSubAdmin))
	users.Get("/details/:username", cfg.Users.Details)

	users.Patch("/update", cfg.Users.UpdateOwn)
	reg.Route(fiber.MethodPatch, "/users/update", auth.Roles(domain.RoleAdmin, domain.RoleSubAdmin))
	users.Patch("/update/:username", cfg.Users.Update)

	users.Patch("/activate/:username", cfg.Users.Activate)
	users.Patch("/deactivate/:username", cfg.Users.Deactivate)
	users.Delete("/delete/:username", cfg.Users.Delete)
}
