package models

import "errors"

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("user not found")
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrChallengeCompleted  = errors.New("challenge already completed")
	ErrInvalidToken        = errors.New("invalid token")
	ErrMissingTokenSubject = errors.New("token has no user id")
)
