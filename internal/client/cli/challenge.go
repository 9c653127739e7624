package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/api"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/controllers"
)

// Boss fetches today's boss challenge and renders it.
func (a *App) Boss(ctx context.Context) error {
	// Fetch failures degrade to the empty view; the controller has already
	// logged the cause.
	_ = a.challengeCtrl.FetchToday(ctx)
	renderChallengeView(os.Stdout, a.challengeCtrl.View())
	return nil
}

// Complete marks today's challenge done and renders the refreshed view.
func (a *App) Complete(ctx context.Context) error {
	view := a.challengeCtrl.View()
	if view.State != controllers.ViewActive {
		renderChallengeView(os.Stdout, view)
		return nil
	}

	if err := a.challengeCtrl.Complete(ctx); err != nil {
		// The notifier already showed API failures; keep the old view so the
		// user can retry.
		if alreadyNotified(err) {
			return nil
		}
		return err
	}
	renderChallengeView(os.Stdout, a.challengeCtrl.View())
	return nil
}

// alreadyNotified reports whether err was surfaced to the user by a
// controller's notifier, i.e. it came back from the API layer.
func alreadyNotified(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *api.APIError
	return errors.As(err, &apiErr) || errors.Is(err, api.ErrUnavailable) || errors.Is(err, api.ErrUnauthorized)
}

// Me prints the current user's progress.
func (a *App) Me(ctx context.Context) error {
	user, err := a.apiClient.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s <%s>\n", user.Username, user.Email)
	fmt.Printf("  Level %d  (%d XP, %d total)\n", user.Level, user.XP, user.TotalXP)
	fmt.Printf("  Discipline %d/100, streak %d (best %d)\n",
		user.DisciplineScore, user.CurrentStreak, user.LongestStreak)
	return nil
}

// renderChallengeView prints exactly one of the three challenge screens:
// loading placeholder, victory view, or the active challenge with its
// difficulty glyphs, XP reward and completion hint.
func renderChallengeView(w io.Writer, view controllers.View) {
	switch view.State {
	case controllers.ViewLoading:
		fmt.Fprintln(w, "Summoning today's boss...")

	case controllers.ViewEmpty:
		fmt.Fprintln(w, "No boss challenge available right now. Try 'boss' again later.")

	case controllers.ViewCompleted:
		fmt.Fprintln(w, "🏆 Boss defeated for today!")
		fmt.Fprintf(w, "   %s\n", view.Challenge.ChallengeText)
		fmt.Fprintln(w, "   Come back tomorrow for the next one.")

	case controllers.ViewActive:
		fmt.Fprintln(w, "⚔  TODAY'S BOSS CHALLENGE")
		fmt.Fprintf(w, "   %s\n", view.Challenge.ChallengeText)
		fmt.Fprintf(w, "   Difficulty: %s\n", view.DifficultyBar())
		fmt.Fprintf(w, "   Reward:     %d XP\n", view.Challenge.XPReward)
		fmt.Fprintln(w, "   Type 'complete' once you have done it.")
	}
}
