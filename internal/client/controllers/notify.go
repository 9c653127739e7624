package controllers

// Notifier is the sink for user-facing notifications. Controllers emit
// through it and never care how (or whether) messages are rendered.
//
//   - Info: routine feedback, e.g. an XP reward.
//   - Error: a failed operation the user may retry.
//   - Celebrate: a distinguished event such as a level-up.
type Notifier interface {
	Info(msg string)
	Error(msg string)
	Celebrate(msg string)
}

// Navigator receives the single navigation side effect of a successful
// authentication.
type Navigator interface {
	AuthenticatedHome()
}
