package handler

import (
	"skillsense/internal/delivery/http/middleware"
	"skillsense/internal/extractor"
	"skillsense/internal/pkg/response"
	"skillsense/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type EnhanceHandler struct {
	uc usecase.ExtractionUsecase
}

type enhanceRequest struct {
	Text   string `json:"text"`
	Action string `json:"action"`
}

func NewEnhanceHandler(uc usecase.ExtractionUsecase) *EnhanceHandler {
	return &EnhanceHandler{uc: uc}
}

func (h *EnhanceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/enhance", h.Enhance)
}

// Enhance asks the model to review or rewrite resume text. action=analyze
// returns suggestions only; action=enhance also returns the rewritten text.
func (h *EnhanceHandler) Enhance(c fiber.Ctx) error {
	if _, err := userIDFromCtx(c); err != nil {
		return err
	}

	var req enhanceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	action := extractor.EnhanceAction(req.Action)
	if action == "" {
		action = extractor.ActionAnalyze
	}

	res, err := h.uc.EnhanceResume(c.Context(), req.Text, action)
	if err != nil {
		return mapCommonUsecaseError(err)
	}

	data := map[string]any{
		"suggestions": res.Suggestions,
	}
	if res.RewrittenCV != "" {
		data["rewritten_cv"] = res.RewrittenCV
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
