package cli

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/api"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/config"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/controllers"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/session"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/logging"
)

// Mode reflects the last known reachability of the backend.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// App wires the controllers, session store and API client together and
// exposes one method per REPL command.
type App struct {
	config        *config.Config
	log           zerolog.Logger
	apiClient     api.Client
	store         *session.Store
	sessionCtrl   *controllers.SessionController
	challengeCtrl *controllers.ChallengeController
	reader        *bufio.Reader
	Mode          Mode
}

func NewApp(c *config.Config) (*App, error) {
	log := logging.New(logging.Options{Level: c.LogLevel, Pretty: true})

	store := session.NewStore()
	apiClient := api.NewHTTPClient(c.ServerBaseURL, store, c.RequestTimeout)
	notifier := NewTerminalNotifier(os.Stdout)

	app := &App{
		config:    c,
		log:       log,
		apiClient: apiClient,
		store:     store,
		reader:    bufio.NewReader(os.Stdin),
		Mode:      ModeOnline,
	}
	app.sessionCtrl = controllers.NewSessionController(apiClient, store, notifier, app, log)
	app.challengeCtrl = controllers.NewChallengeController(apiClient, notifier, log)

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.apiClient.Close()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.store.Authenticated()
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info().Str("mode", string(mode)).Msg("connectivity changed")
	}
}

// StartOnlineStatusWatcher periodically pings the server and records
// reachability in a.Mode. Purely informational; no command is gated on it.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.apiClient.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
