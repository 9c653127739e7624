package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/auth"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/models"
)

// ChallengeService is the slice of the challenge service the handler needs.
type ChallengeService interface {
	Today(ctx context.Context, user *models.User) (*models.BossChallenge, error)
	Complete(ctx context.Context, user *models.User, challengeID string) (*models.CompletionResult, error)
}

type ChallengeHandler struct {
	service ChallengeService
}

func NewChallengeHandler(service ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{service: service}
}

// Today returns the authenticated user's challenge for the current day.
func (h *ChallengeHandler) Today(c echo.Context) error {
	user := auth.CurrentUser(c)

	challenge, err := h.service.Today(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, challenge)
}

// Complete marks the challenge in the path done and returns the reward.
func (h *ChallengeHandler) Complete(c echo.Context) error {
	user := auth.CurrentUser(c)

	result, err := h.service.Complete(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
