package models

// Session is the payload of a successful login or signup: the bearer
// token for subsequent calls plus the authenticated user record.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}
