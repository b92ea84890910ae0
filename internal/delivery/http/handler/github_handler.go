package handler

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"skillsense/internal/delivery/http/dto"
	"skillsense/internal/delivery/http/middleware"
	"skillsense/internal/githubclient"
	"skillsense/internal/pkg/response"
	"skillsense/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type GitHubHandler struct {
	uc usecase.GitHubUsecase
}

func NewGitHubHandler(uc usecase.GitHubUsecase) *GitHubHandler {
	return &GitHubHandler{uc: uc}
}

func (h *GitHubHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:username", h.Analyze)
}

func (h *GitHubHandler) Analyze(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	persist, _ := strconv.ParseBool(c.Query("persist", "false"))

	res, err := h.uc.Analyze(c.Context(), userID, c.Params("username"), persist)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrGitHubUserNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "GitHub user not found", nil, err)
		case errors.Is(err, usecase.ErrGitHubRateLimited):
			msg := "GitHub rate limit exceeded, try again later"
			var rle *githubclient.RateLimitError
			if errors.As(err, &rle) && !rle.ResetAt.IsZero() {
				if wait := time.Until(rle.ResetAt); wait > 0 {
					c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(wait.Round(time.Second).Seconds())))
				}
				msg = fmt.Sprintf("GitHub rate limit exceeded, resets at %s", rle.ResetAt.UTC().Format(time.RFC3339))
			}
			return middleware.NewAppError(fiber.StatusTooManyRequests, msg, nil, err)
		default:
			return mapCommonUsecaseError(err)
		}
	}

	out := dto.FromGitHubSummary(res.Username, res.Summary)
	out.Persisted = dto.FromSkills(res.Persisted)
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
