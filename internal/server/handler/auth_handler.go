// Package handler contains the echo HTTP handlers for the LevelUp API.
package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/auth"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/models"
)

// AuthService is the slice of UserService the auth handler needs.
type AuthService interface {
	Signup(ctx context.Context, email, password, username string) (*models.Token, error)
	Login(ctx context.Context, email, password string) (*models.Token, error)
}

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Username string `json:"username" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup creates an account and returns an access token with the user.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, err := h.service.Signup(c.Request().Context(), req.Email, req.Password, req.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, token)
}

// Login authenticates and returns an access token with the user.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, token)
}

// Me returns the authenticated user's record.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, auth.CurrentUser(c))
}
