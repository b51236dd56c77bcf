package routes

import (
	"shortlist/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health     *handler.HealthHandler
	candidates *handler.CandidatesHandler
}

func NewRegistry(health *handler.HealthHandler, candidates *handler.CandidatesHandler) *Registry {
	return &Registry{health: health, candidates: candidates}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	if r.candidates != nil {
		r.candidates.RegisterRoutes(api)
	}
}
