// Package server assembles the LevelUp HTTP API: storage, services,
// handlers and the echo router.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/auth"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/config"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/handler"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/models"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/repositories/users"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/services"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/storage"
)

// App is the assembled server.
type App struct {
	Echo *echo.Echo
	db   *sql.DB
	cfg  *config.Config
	log  zerolog.Logger
}

// NewApp opens the database, runs migrations and wires the full router.
func NewApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	db, dialect, err := storage.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	userRepo := users.New(db, dialect)

	tokenTTL := time.Duration(cfg.JWTExpirationHours) * time.Hour
	userService := services.NewUserService(userRepo, []byte(cfg.JWTSecret), tokenTTL)
	challengeService := services.NewChallengeService(db, dialect)

	e := NewRouter(userService, challengeService, []byte(cfg.JWTSecret), log)

	return &App{Echo: e, db: db, cfg: cfg, log: log}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Echo.Start(":" + a.cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Echo.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return a.db.Close()
	}
}

// NewRouter builds the echo instance with all routes registered. Split out
// from NewApp so tests can assemble a router over their own services.
func NewRouter(userService *services.UserService, challengeService *services.ChallengeService, jwtSecret []byte, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	authHandler := handler.NewAuthHandler(userService)
	challengeHandler := handler.NewChallengeHandler(challengeService)
	authMiddleware := auth.Middleware(jwtSecret, userService)

	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	e.GET("/boss-challenge/today", challengeHandler.Today, authMiddleware)
	e.PATCH("/boss-challenge/:id/complete", challengeHandler.Complete, authMiddleware)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e
}

// errorResponse is the canonical error envelope: {"detail": "<message>"}.
type errorResponse struct {
	Detail string `json:"detail"`
}

// NewHTTPErrorHandler maps known domain errors onto deterministic status
// codes and renders every failure as the detail envelope. Unexpected errors
// are logged and hidden behind a generic message.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Detail: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors: bind failures, 404 from the router, middleware.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, models.ErrEmailTaken):
		return http.StatusBadRequest, "Email already registered"
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, models.ErrUserNotFound):
		return http.StatusUnauthorized, "User not found"
	case errors.Is(err, models.ErrChallengeNotFound):
		return http.StatusNotFound, "Challenge not found"
	case errors.Is(err, models.ErrChallengeCompleted):
		return http.StatusBadRequest, "Already completed"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error"
}
