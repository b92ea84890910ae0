package handler

import (
	"errors"

	"skillsense/internal/delivery/http/dto"
	"skillsense/internal/delivery/http/middleware"
	"skillsense/internal/domain/job"
	"skillsense/internal/domain/skill"
	"skillsense/internal/pkg/response"
	"skillsense/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	uc usecase.MatchingUsecase
}

type requiredSkillRequest struct {
	Name          string `json:"name"`
	RequiredLevel string `json:"required_level"`
	Importance    string `json:"importance"`
}

type createRequirementRequest struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Skills      []requiredSkillRequest `json:"skills"`
}

func NewJobHandler(uc usecase.MatchingUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/:id/match", h.Match)
	r.Get("/:id/match", h.LatestMatch)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req createRequirementRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := usecase.CreateRequirementInput{Title: req.Title, Description: req.Description}
	for _, rs := range req.Skills {
		level := skill.LevelIntermediate
		if rs.RequiredLevel != "" {
			parsed, ok := skill.ParseLevel(rs.RequiredLevel)
			if !ok {
				return middleware.NewAppError(fiber.StatusBadRequest, "Unknown required_level", nil, nil)
			}
			level = parsed
		}
		importance := job.ImportanceRequired
		if rs.Importance != "" {
			parsed, ok := job.ParseImportance(rs.Importance)
			if !ok {
				return middleware.NewAppError(fiber.StatusBadRequest, "Unknown importance", nil, nil)
			}
			importance = parsed
		}
		in.Skills = append(in.Skills, job.RequiredSkill{
			Name:          rs.Name,
			RequiredLevel: level,
			Importance:    importance,
		})
	}

	created, skills, err := h.uc.CreateRequirement(c.Context(), userID, in)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromRequirement(created, skills))
}

func (h *JobHandler) List(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	reqs, err := h.uc.ListRequirements(c.Context(), userID)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRequirements(reqs))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	reqID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	req, skills, err := h.uc.GetRequirement(c.Context(), userID, reqID)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRequirement(req, skills))
}

func (h *JobHandler) Match(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	reqID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	res, err := h.uc.Match(c.Context(), userID, reqID)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromMatchReport(res.Requirement.ID, res.Report))
}

func (h *JobHandler) LatestMatch(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	reqID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	m, skills, err := h.uc.LatestMatch(c.Context(), userID, reqID)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromStoredMatch(m, skills))
}

func mapJobError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrRequirementNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job requirement not found", nil, err)
	case errors.Is(err, usecase.ErrNoSkillProfile):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "No skills recorded yet; upload and process a document first", nil, err)
	default:
		return mapCommonUsecaseError(err)
	}
}
