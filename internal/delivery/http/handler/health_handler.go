package handler

import (
	"context"
	"time"

	"skillsense/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	checks := map[string]string{}

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = "down"
			status = fiber.StatusServiceUnavailable
		} else {
			checks["database"] = "up"
		}
	}
	if h.cache != nil {
		// Cache being down degrades performance, not availability.
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = "down"
		} else {
			checks["cache"] = "up"
		}
	}

	return response.Success(c, status, response.MessageOK, checks)
}
