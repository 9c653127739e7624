package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/api"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/controllers"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/models"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/session"
)

// stubAPI implements api.Client for command tests; only the stubbed
// endpoints respond.
type stubAPI struct {
	loginFn  func(ctx context.Context, email, password string) (*models.Session, error)
	signupFn func(ctx context.Context, email, password, username string) (*models.Session, error)
}

func (s *stubAPI) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if s.loginFn == nil {
		return nil, errors.New("login: not stubbed")
	}
	return s.loginFn(ctx, email, password)
}

func (s *stubAPI) Signup(ctx context.Context, email, password, username string) (*models.Session, error) {
	if s.signupFn == nil {
		return nil, errors.New("signup: not stubbed")
	}
	return s.signupFn(ctx, email, password, username)
}

func (s *stubAPI) TodayChallenge(ctx context.Context) (*models.BossChallenge, error) {
	return nil, errors.New("today: not stubbed")
}

func (s *stubAPI) CompleteChallenge(ctx context.Context, challengeID string) (*models.CompletionResult, error) {
	return nil, errors.New("complete: not stubbed")
}

func (s *stubAPI) Me(ctx context.Context) (*models.User, error) {
	return nil, errors.New("me: not stubbed")
}

func (s *stubAPI) Ping(ctx context.Context) error { return nil }
func (s *stubAPI) Close() error                   { return nil }

func newTestApp(client api.Client) *App {
	store := session.NewStore()
	app := &App{
		log:       zerolog.Nop(),
		apiClient: client,
		store:     store,
		reader:    bufio.NewReader(strings.NewReader("")),
		Mode:      ModeOnline,
	}
	notifier := NewTerminalNotifier(io.Discard)
	app.sessionCtrl = controllers.NewSessionController(client, store, notifier, app, zerolog.Nop())
	app.challengeCtrl = controllers.NewChallengeController(client, notifier, zerolog.Nop())
	return app
}

func stubInputs(t *testing.T, texts []string, password string) {
	t.Helper()
	origText, origPassword := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText, getPassword = origText, origPassword
	})

	i := 0
	getSimpleText = func(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
		if i >= len(texts) {
			return "", io.EOF
		}
		text := texts[i]
		i++
		return text, nil
	}
	getPassword = func(w io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
}

func TestAppLogin_InstallsSession(t *testing.T) {
	client := &stubAPI{
		loginFn: func(ctx context.Context, email, password string) (*models.Session, error) {
			require.Equal(t, "a@b.io", email)
			require.Equal(t, "pw", password)
			return &models.Session{
				AccessToken: "tok-1",
				User:        models.User{ID: "u1", Username: "hunter", Level: 3},
			}, nil
		},
	}
	app := newTestApp(client)
	stubInputs(t, []string{"a@b.io"}, "pw")

	require.NoError(t, app.Login(context.Background()))

	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "tok-1", app.store.Token())
	assert.Equal(t, "hunter", app.store.Current().Username)
}

func TestAppSignup_SwitchesModeAndInstallsSession(t *testing.T) {
	client := &stubAPI{
		signupFn: func(ctx context.Context, email, password, username string) (*models.Session, error) {
			require.Equal(t, "new@b.io", email)
			require.Equal(t, "hunter", username)
			return &models.Session{AccessToken: "tok-2", User: models.User{ID: "u2", Username: username}}, nil
		},
	}
	app := newTestApp(client)
	stubInputs(t, []string{"hunter", "new@b.io"}, "pw")

	require.NoError(t, app.Signup(context.Background()))

	assert.Equal(t, controllers.ModeSignup, app.sessionCtrl.Mode())
	assert.True(t, app.isLoggedIn())
}

func TestAppLogin_APIFailure_NotEchoedTwice(t *testing.T) {
	client := &stubAPI{
		loginFn: func(ctx context.Context, email, password string) (*models.Session, error) {
			return nil, &api.APIError{Status: 401, Detail: "Invalid credentials"}
		},
	}
	app := newTestApp(client)
	stubInputs(t, []string{"a@b.io"}, "wrong")

	// The notifier already surfaced the failure; the REPL gets nil.
	require.NoError(t, app.Login(context.Background()))
	assert.False(t, app.isLoggedIn())
}

func TestAppLogin_ValidationFailure_ReturnsError(t *testing.T) {
	app := newTestApp(&stubAPI{})
	stubInputs(t, []string{"not-an-email"}, "pw")

	require.Error(t, app.Login(context.Background()))
	assert.False(t, app.isLoggedIn())
}

func TestAppLogout_ClearsSession(t *testing.T) {
	app := newTestApp(&stubAPI{})
	app.store.Install("tok", models.User{ID: "u1"})

	require.NoError(t, app.Logout(context.Background()))
	assert.False(t, app.isLoggedIn())
}

func TestGetStatus(t *testing.T) {
	app := newTestApp(&stubAPI{})
	app.Mode = ModeOnline

	assert.Equal(t, "(online)", app.getStatus())

	app.store.Install("tok", models.User{Username: "hunter"})
	assert.Equal(t, "(hunter online)", app.getStatus())
}
