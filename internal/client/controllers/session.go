// Package controllers implements the two page-level controllers of the
// client: the session controller (login/signup form) and the boss
// challenge controller. Both are thin state machines over the backend
// API; all I/O side effects go through injected interfaces.
package controllers

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/api"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/models"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/session"
)

// Mode selects which authentication endpoint a submit targets.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission has not yet resolved.
var ErrSubmitInFlight = errors.New("submission already in flight")

// Credentials is the transient form state. It lives only inside the
// controller and is never persisted.
type Credentials struct {
	Email    string
	Password string
	Username string // signup only
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type signupForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Username string `validate:"required"`
}

var validate = validator.New()

// SessionController owns the credential form and the submit state machine:
// Idle -> Submitting -> (authenticated | Idle with error). There is no
// terminal failure state; the form stays re-enterable after any error.
type SessionController struct {
	api      api.Client
	store    *session.Store
	notifier Notifier
	nav      Navigator
	log      zerolog.Logger

	mu         sync.Mutex
	mode       Mode
	creds      Credentials
	submitting bool
}

func NewSessionController(client api.Client, store *session.Store, notifier Notifier, nav Navigator, log zerolog.Logger) *SessionController {
	return &SessionController{
		api:      client,
		store:    store,
		notifier: notifier,
		nav:      nav,
		log:      log,
		mode:     ModeLogin,
	}
}

func (c *SessionController) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// ToggleMode flips between login and signup. It is always available,
// including after a failed submit, and leaves every entered field intact.
// The username survives a switch back to login even though that mode does
// not use it; clearing it would lose data on a double toggle.
func (c *SessionController) ToggleMode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeLogin {
		c.mode = ModeSignup
	} else {
		c.mode = ModeLogin
	}
	return c.mode
}

func (c *SessionController) SetEmail(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds.Email = email
}

func (c *SessionController) SetPassword(password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds.Password = password
}

func (c *SessionController) SetUsername(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds.Username = username
}

// Credentials returns a copy of the current form state.
func (c *SessionController) Credentials() Credentials {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.creds
}

func (c *SessionController) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Submit validates the form and sends one request to the endpoint selected
// by the current mode. Validation failures never reach the network. A second
// Submit while one is in flight returns ErrSubmitInFlight.
//
// On success the returned token and user are installed into the session
// store and the navigator is invoked exactly once. On failure the server's
// detail message (or a generic fallback) is emitted through the notifier and
// the form stays editable; the entered password is not cleared.
func (c *SessionController) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	mode, creds := c.mode, c.creds
	if err := validateCredentials(mode, creds); err != nil {
		c.mu.Unlock()
		return err
	}
	c.submitting = true
	c.mu.Unlock()

	// The flag must reset on every terminal branch, error or not.
	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	sess, err := c.authenticate(ctx, mode, creds)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn().Err(err).Str("mode", string(mode)).Msg("authentication failed")
		c.notifier.Error(api.Detail(err, "Authentication failed"))
		return err
	}
	if ctx.Err() != nil {
		// The view that started this submit is gone; drop the response.
		return ctx.Err()
	}

	c.store.Install(sess.AccessToken, sess.User)
	c.log.Info().Str("user", sess.User.Username).Msg("signed in")
	c.nav.AuthenticatedHome()
	return nil
}

func (c *SessionController) authenticate(ctx context.Context, mode Mode, creds Credentials) (*models.Session, error) {
	if mode == ModeSignup {
		return c.api.Signup(ctx, creds.Email, creds.Password, creds.Username)
	}
	return c.api.Login(ctx, creds.Email, creds.Password)
}

func validateCredentials(mode Mode, creds Credentials) error {
	if mode == ModeSignup {
		return validate.Struct(signupForm{Email: creds.Email, Password: creds.Password, Username: creds.Username})
	}
	return validate.Struct(loginForm{Email: creds.Email, Password: creds.Password})
}
