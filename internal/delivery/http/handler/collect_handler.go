package handler

import (
	"errors"

	"skillsense/internal/delivery/http/dto"
	"skillsense/internal/delivery/http/middleware"
	"skillsense/internal/pkg/response"
	"skillsense/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CollectHandler struct {
	uc usecase.CollectUsecase
}

type collectBlogRequest struct {
	URL     string `json:"url"`
	Persist bool   `json:"persist"`
}

func NewCollectHandler(uc usecase.CollectUsecase) *CollectHandler {
	return &CollectHandler{uc: uc}
}

func (h *CollectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/blog", h.Blog)
}

func (h *CollectHandler) Blog(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req collectBlogRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.CollectBlog(c.Context(), userID, req.URL, req.Persist)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBlogURLInvalid):
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid blog URL", nil, err)
		case errors.Is(err, usecase.ErrBlogNoContent):
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, "No readable content at URL", nil, err)
		default:
			return mapCommonUsecaseError(err)
		}
	}

	data := map[string]any{
		"pages_visited": res.PagesVisited,
		"skills":        dto.FromAggregated(res.Skills),
		"stats":         dto.FromStats(res.Stats),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
