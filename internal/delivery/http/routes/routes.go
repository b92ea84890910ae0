package routes

import (
	"skillsense/internal/delivery/http/handler"
	v1 "skillsense/internal/delivery/http/routes/v1"
	"skillsense/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	deps   v1.Dependencies
	health *handler.HealthHandler
	wsh    *ws.Handler
}

func NewRegistry(deps v1.Dependencies, health *handler.HealthHandler, wsh *ws.Handler) *Registry {
	return &Registry{deps: deps, health: health, wsh: wsh}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.health != nil {
		r.health.RegisterRoutes(app)
	}

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.deps)

	if r.wsh != nil {
		app.Get("/ws/documents", r.wsh.HandleDocumentsWS)
	}
}
