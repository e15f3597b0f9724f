package routes

import (
	"devconnect/internal/delivery/http/handler"
	"devconnect/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health   *handler.HealthHandler
	auth     *handler.AuthHandler
	users    *handler.UserHandler
	profiles *handler.ProfileHandler
	authMw   *middleware.AuthMiddleware
}

func NewRegistry(
	auth *handler.AuthHandler,
	users *handler.UserHandler,
	profiles *handler.ProfileHandler,
	authMw *middleware.AuthMiddleware,
) *Registry {
	return &Registry{
		health:   handler.NewHealthHandler(),
		auth:     auth,
		users:    users,
		profiles: profiles,
		authMw:   authMw,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	guard := r.authMw.Middleware()

	authGroup := api.Group("/auth")
	authGroup.Get("/", r.auth.Me, guard)
	authGroup.Post("/", r.auth.Login)

	api.Post("/users", r.users.Register)

	profileGroup := api.Group("/profile")
	profileGroup.Get("/me", r.profiles.Me, guard)
	profileGroup.Post("/", r.profiles.Upsert, guard)
	profileGroup.Get("/", r.profiles.List)
	profileGroup.Get("/user/:user_id", r.profiles.GetByUserID)
	profileGroup.Delete("/", r.profiles.Delete, guard)
	profileGroup.Put("/experience", r.profiles.AddExperience, guard)
	profileGroup.Delete("/experience/:exp_id", r.profiles.RemoveExperience, guard)
	profileGroup.Put("/education", r.profiles.AddEducation, guard)
	profileGroup.Delete("/education/:edu_id", r.profiles.RemoveEducation, guard)
}
