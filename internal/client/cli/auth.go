package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/controllers"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and submits them through the session
// controller in login mode. API failures are surfaced by the controller's
// notifier; validation errors are returned and printed by the REPL.
func (a *App) Login(ctx context.Context) error {
	a.setSessionMode(controllers.ModeLogin)

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	a.sessionCtrl.SetEmail(email)

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	a.sessionCtrl.SetPassword(string(password))
	common.WipeByteArray(password)

	return a.submit(ctx)
}

// Signup prompts for a username plus credentials and submits them through
// the session controller in signup mode.
func (a *App) Signup(ctx context.Context) error {
	a.setSessionMode(controllers.ModeSignup)

	username, err := getSimpleText(a.reader, "Pick a username", os.Stdout)
	if err != nil {
		return err
	}
	a.sessionCtrl.SetUsername(username)

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	a.sessionCtrl.SetEmail(email)

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	a.sessionCtrl.SetPassword(string(password))
	common.WipeByteArray(password)

	return a.submit(ctx)
}

// submit runs the controller submit and filters out failures the notifier
// has already shown, so the REPL does not echo them a second time.
func (a *App) submit(ctx context.Context) error {
	err := a.sessionCtrl.Submit(ctx)
	if alreadyNotified(err) {
		return nil
	}
	return err
}

// Logout drops the local session. There is no server-side call to make;
// the token simply stops being sent.
func (a *App) Logout(ctx context.Context) error {
	a.store.Clear()
	fmt.Println("Logged out.")
	return nil
}

// AuthenticatedHome is the navigation target of a successful submit: greet
// the user and land on the boss challenge screen.
func (a *App) AuthenticatedHome() {
	user := a.store.Current()
	fmt.Printf("Welcome back, %s (level %d)!\n", user.Username, user.Level)
}

func (a *App) setSessionMode(mode controllers.Mode) {
	// ToggleMode is the only mode mutation the controller exposes; fields
	// entered in the other mode survive the flip.
	if a.sessionCtrl.Mode() != mode {
		a.sessionCtrl.ToggleMode()
	}
}
