package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/api"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/models"
)

// ViewState is the tagged state of the challenge screen. Exactly one of
// the states holds at any time; there is no flag combination outside
// these four.
type ViewState int

const (
	// ViewLoading: a fetch is outstanding, nothing to render yet.
	ViewLoading ViewState = iota
	// ViewEmpty: the fetch failed; render a degraded placeholder.
	ViewEmpty
	// ViewActive: an uncompleted challenge with the completion action.
	ViewActive
	// ViewCompleted: today's challenge is done; the action is never shown.
	ViewCompleted
)

func (s ViewState) String() string {
	switch s {
	case ViewLoading:
		return "loading"
	case ViewEmpty:
		return "empty"
	case ViewActive:
		return "active"
	case ViewCompleted:
		return "completed"
	default:
		return fmt.Sprintf("ViewState(%d)", int(s))
	}
}

// View is what the challenge screen renders. Challenge is non-nil exactly
// when State is ViewActive or ViewCompleted; callers must treat it as
// read-only.
type View struct {
	State     ViewState
	Challenge *models.BossChallenge
}

// DifficultyBar renders the challenge difficulty as a glyph row. A missing
// or non-positive difficulty renders a single glyph.
func (v View) DifficultyBar() string {
	if v.Challenge == nil {
		return ""
	}
	n := v.Challenge.Difficulty
	if n < 1 {
		n = 1
	}
	return strings.Repeat("★", n)
}

// ErrCompletionInFlight is returned when Complete is called while a
// previous completion request has not yet resolved.
var ErrCompletionInFlight = errors.New("completion already in flight")

// ChallengeController fetches and completes the daily boss challenge.
// The view is recomputed wholesale at the end of every fetch; Complete
// never flips the completed state locally — only a re-fetch does.
type ChallengeController struct {
	api      api.Client
	notifier Notifier
	log      zerolog.Logger

	mu         sync.Mutex
	view       View
	completing bool
}

func NewChallengeController(client api.Client, notifier Notifier, log zerolog.Logger) *ChallengeController {
	return &ChallengeController{
		api:      client,
		notifier: notifier,
		log:      log,
		view:     View{State: ViewLoading},
	}
}

// View returns the current view. The embedded challenge pointer is shared;
// it is replaced, never mutated, so a caller holding an old view simply
// sees stale data.
func (c *ChallengeController) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// FetchToday loads the current day's challenge, replacing the view
// wholesale. A failed fetch is logged and degrades the view to ViewEmpty;
// it is not surfaced as a user notification. A response that arrives after
// ctx is cancelled is discarded without touching the view.
func (c *ChallengeController) FetchToday(ctx context.Context) error {
	c.mu.Lock()
	c.view = View{State: ViewLoading}
	c.mu.Unlock()

	challenge, err := c.api.TodayChallenge(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Error().Err(err).Msg("boss challenge fetch failed")
		c.view = View{State: ViewEmpty}
		return err
	}

	state := ViewActive
	if challenge.Completed {
		state = ViewCompleted
	}
	c.view = View{State: state, Challenge: challenge}
	return nil
}

// Complete sends the completion request for the currently shown challenge.
// Calling it with no challenge, or with an already completed one, is a
// no-op; a call while a completion is outstanding returns
// ErrCompletionInFlight.
//
// On success the reward notification is emitted (celebratory when the
// server reports a level-up, standard otherwise) and the challenge is
// re-fetched exactly once — the re-fetch is the only thing that moves the
// view to ViewCompleted. On failure an error notification is emitted and
// the view is left unchanged so the action stays available.
func (c *ChallengeController) Complete(ctx context.Context) error {
	c.mu.Lock()
	if c.completing {
		c.mu.Unlock()
		return ErrCompletionInFlight
	}
	view := c.view
	if view.Challenge == nil || view.Challenge.Completed {
		c.mu.Unlock()
		return nil
	}
	challengeID := view.Challenge.ID
	c.completing = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.completing = false
		c.mu.Unlock()
	}()

	result, err := c.api.CompleteChallenge(ctx, challengeID)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		c.log.Warn().Err(err).Str("challenge_id", challengeID).Msg("challenge completion failed")
		c.notifier.Error(api.Detail(err, "Could not complete the challenge"))
		return err
	}

	if result.LevelUp {
		c.notifier.Celebrate(fmt.Sprintf("LEVEL UP! Boss defeated, +%d XP", result.XPGained))
	} else {
		c.notifier.Info(fmt.Sprintf("Boss defeated! +%d XP", result.XPGained))
	}

	return c.FetchToday(ctx)
}
