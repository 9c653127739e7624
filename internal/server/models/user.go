// Package models defines the server-side domain records and the sentinel
// errors the HTTP layer maps onto status codes.
package models

import "time"

// User is an account with its gamification progress. HashedPassword never
// leaves the repository layer in API responses (json:"-").
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	HashedPassword  string    `json:"-"`
	Level           int       `json:"level"`
	XP              int       `json:"xp"`
	TotalXP         int       `json:"total_xp"`
	DisciplineScore int       `json:"discipline_score"`
	CurrentStreak   int       `json:"current_streak"`
	LongestStreak   int       `json:"longest_streak"`
	LastActive      time.Time `json:"last_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// Token is the authentication response payload.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}
