// Package api contains the HTTP client for the LevelUp backend.
// This file defines the transport-agnostic interface the rest of the
// client programs against.
package api

import (
	"context"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/models"
)

// Client defines the backend operations the client application needs.
//
// Contract:
//   - Login / Signup: authenticate and return a fresh session.
//   - TodayChallenge: fetch the current day's boss challenge (authenticated).
//   - CompleteChallenge: mark a challenge done, returns the reward outcome.
//   - Me: fetch the current user record (authenticated).
//   - Ping: check server liveness.
//   - Close: release underlying transport resources.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Signup(ctx context.Context, email, password, username string) (*models.Session, error)
	TodayChallenge(ctx context.Context) (*models.BossChallenge, error)
	CompleteChallenge(ctx context.Context, challengeID string) (*models.CompletionResult, error)
	Me(ctx context.Context) (*models.User, error)
	Ping(ctx context.Context) error
	Close() error
}

// TokenSource supplies the bearer token attached to authenticated calls.
// The session store implements it; an empty string means "no session".
type TokenSource interface {
	Token() string
}
