package handler

import (
	"errors"

	"skillsense/internal/delivery/http/dto"
	"skillsense/internal/delivery/http/middleware"
	"skillsense/internal/pkg/response"
	"skillsense/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	skills     usecase.SkillUsecase
	extraction usecase.ExtractionUsecase
}

type createSkillRequest struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	Proficiency     string `json:"proficiency"`
	YearsExperience int    `json:"years_experience"`
}

type updateSkillRequest struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	Proficiency     string `json:"proficiency"`
	YearsExperience int    `json:"years_experience"`
}

type extractRequest struct {
	Text    string `json:"text"`
	Persist bool   `json:"persist"`
}

func NewSkillHandler(skills usecase.SkillUsecase, extraction usecase.ExtractionUsecase) *SkillHandler {
	return &SkillHandler{skills: skills, extraction: extraction}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/extract", h.Extract)
	r.Get("/:id", h.Get)
	r.Get("/:id/evidence", h.Evidence)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req createSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.skills.CreateSkill(c.Context(), userID, usecase.CreateSkillInput{
		Name:            req.Name,
		Category:        req.Category,
		Proficiency:     req.Proficiency,
		YearsExperience: req.YearsExperience,
	})
	if err != nil {
		return mapSkillError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromSkill(created))
}

func (h *SkillHandler) Evidence(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	skillID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.skills.GetSkill(c.Context(), userID, skillID)
	if err != nil {
		return mapSkillError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromEvidence(res.Evidence))
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	skills, err := h.skills.ListSkills(c.Context(), userID)
	if err != nil {
		return mapSkillError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromSkills(skills))
}

func (h *SkillHandler) Get(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	skillID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.skills.GetSkill(c.Context(), userID, skillID)
	if err != nil {
		return mapSkillError(err)
	}
	out := dto.SkillDetailResponse{
		SkillResponse: dto.FromSkill(res.Skill),
		Evidence:      dto.FromEvidence(res.Evidence),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *SkillHandler) Update(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	skillID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.skills.UpdateSkill(c.Context(), userID, skillID, usecase.UpdateSkillInput{
		Name:            req.Name,
		Category:        req.Category,
		Proficiency:     req.Proficiency,
		YearsExperience: req.YearsExperience,
	})
	if err != nil {
		return mapSkillError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromSkill(updated))
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	skillID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.skills.DeleteSkill(c.Context(), userID, skillID); err != nil {
		return mapSkillError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// Extract runs the LLM pipeline over raw text without creating a document.
func (h *SkillHandler) Extract(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req extractRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.extraction.ExtractFromText(c.Context(), userID, req.Text, req.Persist)
	if err != nil {
		return mapSkillError(err)
	}

	data := map[string]any{
		"skills": dto.FromAggregated(res.Skills),
		"stats":  dto.FromStats(res.Stats),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func mapSkillError(err error) error {
	if errors.Is(err, usecase.ErrSkillNotFound) {
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	}
	return mapCommonUsecaseError(err)
}
