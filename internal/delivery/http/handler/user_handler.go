package handler

import (
	"skillsense/internal/delivery/http/dto"
	"skillsense/internal/delivery/http/middleware"
	"skillsense/internal/pkg/response"
	"skillsense/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateProfileRequest struct {
	FullName string `json:"full_name"`
	Headline string `json:"headline"`
	Privacy  string `json:"privacy_level"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.Me)
	r.Put("/me", h.UpdateProfile)
}

func (h *UserHandler) Me(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	usr, profile, err := h.uc.Me(c.Context(), userID)
	if err != nil {
		return mapCommonUsecaseError(err)
	}

	out := dto.MeResponse{User: dto.FromUser(usr), Profile: dto.FromProfile(profile)}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	profile, err := h.uc.UpdateProfile(c.Context(), userID, usecase.UpdateProfileInput{
		FullName: req.FullName,
		Headline: req.Headline,
		Privacy:  req.Privacy,
	})
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProfile(profile))
}
