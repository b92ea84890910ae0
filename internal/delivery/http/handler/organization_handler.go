package handler

import (
	"errors"

	"skillsense/internal/delivery/http/dto"
	"skillsense/internal/delivery/http/middleware"
	"skillsense/internal/domain/organization"
	"skillsense/internal/pkg/response"
	"skillsense/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type OrganizationHandler struct {
	uc usecase.OrganizationUsecase
}

type createOrganizationRequest struct {
	Name string `json:"name"`
}

type addMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func NewOrganizationHandler(uc usecase.OrganizationUsecase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

func (h *OrganizationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Post("/:id/members", h.AddMember)
	r.Get("/:id/members", h.Members)
	r.Get("/:id/team-skills", h.TeamSkills)
}

func (h *OrganizationHandler) Create(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req createOrganizationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	org, err := h.uc.Create(c.Context(), userID, req.Name)
	if err != nil {
		return mapOrganizationError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromOrganization(org))
}

func (h *OrganizationHandler) List(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	orgs, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapOrganizationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromOrganizations(orgs))
}

func (h *OrganizationHandler) AddMember(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	orgID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req addMemberRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	m, err := h.uc.AddMember(c.Context(), userID, orgID, req.Email, req.Role)
	if err != nil {
		return mapOrganizationError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromMembers([]organization.Member{m})[0])
}

func (h *OrganizationHandler) Members(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	orgID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	members, err := h.uc.Members(c.Context(), userID, orgID)
	if err != nil {
		return mapOrganizationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromMembers(members))
}

func (h *OrganizationHandler) TeamSkills(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	orgID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	team, err := h.uc.TeamSkills(c.Context(), userID, orgID)
	if err != nil {
		return mapOrganizationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromTeamSkills(team))
}

func mapOrganizationError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrOrganizationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Organization not found", nil, err)
	case errors.Is(err, usecase.ErrNotMember):
		return middleware.NewAppError(fiber.StatusForbidden, "Not a member of this organization", nil, err)
	case errors.Is(err, usecase.ErrAlreadyMember):
		return middleware.NewAppError(fiber.StatusConflict, "User is already a member", nil, err)
	case errors.Is(err, usecase.ErrMemberNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "No user with that email", nil, err)
	default:
		return mapCommonUsecaseError(err)
	}
}
