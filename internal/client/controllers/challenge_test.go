package controllers

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/api"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/models"
)

func newChallengeController(apiClient api.Client) (*ChallengeController, *fakeNotifier) {
	notifier := &fakeNotifier{}
	return NewChallengeController(apiClient, notifier, zerolog.Nop()), notifier
}

func activeChallenge() *models.BossChallenge {
	return &models.BossChallenge{
		ID:            "ch-1",
		Date:          "2026-08-30",
		ChallengeText: "Run 5km",
		Difficulty:    3,
		XPReward:      500,
	}
}

func TestFetchToday_ActiveChallenge(t *testing.T) {
	apiClient := &fakeAPI{
		todayFn: func(ctx context.Context) (*models.BossChallenge, error) {
			return activeChallenge(), nil
		},
	}
	c, notifier := newChallengeController(apiClient)

	require.Equal(t, ViewLoading, c.View().State)
	require.NoError(t, c.FetchToday(context.Background()))

	view := c.View()
	assert.Equal(t, ViewActive, view.State)
	require.NotNil(t, view.Challenge)
	assert.Equal(t, "Run 5km", view.Challenge.ChallengeText)
	assert.Equal(t, "★★★", view.DifficultyBar())
	assert.Equal(t, 500, view.Challenge.XPReward)
	assert.Empty(t, notifier.errs)
}

func TestFetchToday_CompletedChallenge(t *testing.T) {
	apiClient := &fakeAPI{
		todayFn: func(ctx context.Context) (*models.BossChallenge, error) {
			ch := activeChallenge()
			ch.Completed = true
			return ch, nil
		},
	}
	c, _ := newChallengeController(apiClient)

	require.NoError(t, c.FetchToday(context.Background()))
	assert.Equal(t, ViewCompleted, c.View().State)
}

func TestFetchToday_Failure_DegradesToEmptyWithoutNotification(t *testing.T) {
	apiClient := &fakeAPI{
		todayFn: func(ctx context.Context) (*models.BossChallenge, error) {
			return nil, api.ErrUnavailable
		},
	}
	c, notifier := newChallengeController(apiClient)

	require.Error(t, c.FetchToday(context.Background()))

	view := c.View()
	assert.Equal(t, ViewEmpty, view.State)
	assert.Nil(t, view.Challenge)
	assert.Empty(t, notifier.errs)
}

func TestFetchToday_CancelledContext_LeavesViewAlone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	apiClient := &fakeAPI{
		todayFn: func(ctx context.Context) (*models.BossChallenge, error) {
			cancel()
			return activeChallenge(), nil
		},
	}
	c, _ := newChallengeController(apiClient)

	assert.ErrorIs(t, c.FetchToday(ctx), context.Canceled)
	assert.Equal(t, ViewLoading, c.View().State)
}

func TestDifficultyBar(t *testing.T) {
	tests := []struct {
		name       string
		difficulty int
		want       string
	}{
		{"three", 3, "★★★"},
		{"five", 5, "★★★★★"},
		{"zero clamps to one", 0, "★"},
		{"negative clamps to one", -2, "★"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := View{Challenge: &models.BossChallenge{Difficulty: tt.difficulty}}
			assert.Equal(t, tt.want, view.DifficultyBar())
		})
	}

	assert.Equal(t, "", View{}.DifficultyBar())
}

func TestComplete_Success_NotifiesAndRefetchesOnce(t *testing.T) {
	fetched := false
	apiClient := &fakeAPI{}
	apiClient.todayFn = func(ctx context.Context) (*models.BossChallenge, error) {
		ch := activeChallenge()
		ch.Completed = fetched
		fetched = true
		return ch, nil
	}
	apiClient.completeFn = func(ctx context.Context, challengeID string) (*models.CompletionResult, error) {
		require.Equal(t, "ch-1", challengeID)
		return &models.CompletionResult{Success: true, XPGained: 500}, nil
	}

	c, notifier := newChallengeController(apiClient)
	require.NoError(t, c.FetchToday(context.Background()))

	require.NoError(t, c.Complete(context.Background()))

	assert.Equal(t, []string{"Boss defeated! +500 XP"}, notifier.infos)
	assert.Empty(t, notifier.celebrates)
	assert.Equal(t, ViewCompleted, c.View().State)
	// One fetch to show the challenge, exactly one more after completion.
	assert.Equal(t, 2, apiClient.calls("today"))
}

func TestComplete_LevelUp_Celebrates(t *testing.T) {
	apiClient := &fakeAPI{
		todayFn: func(ctx context.Context) (*models.BossChallenge, error) {
			return activeChallenge(), nil
		},
		completeFn: func(ctx context.Context, challengeID string) (*models.CompletionResult, error) {
			return &models.CompletionResult{Success: true, XPGained: 500, LevelUp: true}, nil
		},
	}

	c, notifier := newChallengeController(apiClient)
	require.NoError(t, c.FetchToday(context.Background()))

	require.NoError(t, c.Complete(context.Background()))

	assert.Equal(t, []string{"LEVEL UP! Boss defeated, +500 XP"}, notifier.celebrates)
	assert.Empty(t, notifier.infos)
	// The re-fetch still happens exactly once, level-up or not.
	assert.Equal(t, 2, apiClient.calls("today"))
}

func TestComplete_Failure_ShowsDetailAndKeepsView(t *testing.T) {
	apiClient := &fakeAPI{
		todayFn: func(ctx context.Context) (*models.BossChallenge, error) {
			return activeChallenge(), nil
		},
		completeFn: func(ctx context.Context, challengeID string) (*models.CompletionResult, error) {
			return nil, &api.APIError{Status: 400, Detail: "Already completed"}
		},
	}

	c, notifier := newChallengeController(apiClient)
	require.NoError(t, c.FetchToday(context.Background()))

	require.Error(t, c.Complete(context.Background()))

	assert.Equal(t, []string{"Already completed"}, notifier.errs)
	// No re-fetch on failure; the action stays available.
	assert.Equal(t, 1, apiClient.calls("today"))
	assert.Equal(t, ViewActive, c.View().State)
}

func TestComplete_TransportFailure_GenericMessage(t *testing.T) {
	apiClient := &fakeAPI{
		todayFn: func(ctx context.Context) (*models.BossChallenge, error) {
			return activeChallenge(), nil
		},
		completeFn: func(ctx context.Context, challengeID string) (*models.CompletionResult, error) {
			return nil, api.ErrUnavailable
		},
	}

	c, notifier := newChallengeController(apiClient)
	require.NoError(t, c.FetchToday(context.Background()))

	require.Error(t, c.Complete(context.Background()))
	assert.Equal(t, []string{"Could not complete the challenge"}, notifier.errs)
}

func TestComplete_NoChallenge_IsNoop(t *testing.T) {
	apiClient := &fakeAPI{}
	c, notifier := newChallengeController(apiClient)

	require.NoError(t, c.Complete(context.Background()))
	assert.Equal(t, 0, apiClient.calls("complete"))
	assert.Empty(t, notifier.errs)
}

func TestComplete_AlreadyCompleted_IsNoop(t *testing.T) {
	apiClient := &fakeAPI{
		todayFn: func(ctx context.Context) (*models.BossChallenge, error) {
			ch := activeChallenge()
			ch.Completed = true
			return ch, nil
		},
	}
	c, _ := newChallengeController(apiClient)
	require.NoError(t, c.FetchToday(context.Background()))

	require.NoError(t, c.Complete(context.Background()))
	assert.Equal(t, 0, apiClient.calls("complete"))
}

func TestComplete_SecondCallWhileInFlight_Rejected(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	apiClient := &fakeAPI{
		todayFn: func(ctx context.Context) (*models.BossChallenge, error) {
			return activeChallenge(), nil
		},
		completeFn: func(ctx context.Context, challengeID string) (*models.CompletionResult, error) {
			close(started)
			<-release
			return &models.CompletionResult{Success: true, XPGained: 500}, nil
		},
	}

	c, _ := newChallengeController(apiClient)
	require.NoError(t, c.FetchToday(context.Background()))

	done := make(chan error, 1)
	go func() { done <- c.Complete(context.Background()) }()
	<-started

	assert.ErrorIs(t, c.Complete(context.Background()), ErrCompletionInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, apiClient.calls("complete"))
}

func TestComplete_CancelledContext_NoNotification(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	apiClient := &fakeAPI{
		todayFn: func(ctx context.Context) (*models.BossChallenge, error) {
			return activeChallenge(), nil
		},
		completeFn: func(ctx context.Context, challengeID string) (*models.CompletionResult, error) {
			cancel()
			return &models.CompletionResult{Success: true, XPGained: 500}, nil
		},
	}

	c, notifier := newChallengeController(apiClient)
	require.NoError(t, c.FetchToday(ctx))

	assert.ErrorIs(t, c.Complete(ctx), context.Canceled)
	assert.Empty(t, notifier.infos)
	assert.Empty(t, notifier.celebrates)
}

func TestViewStateString(t *testing.T) {
	assert.Equal(t, "loading", ViewLoading.String())
	assert.Equal(t, "empty", ViewEmpty.String())
	assert.Equal(t, "active", ViewActive.String())
	assert.Equal(t, "completed", ViewCompleted.String())
}
