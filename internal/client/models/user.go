package models

import "time"

// User is the account record returned by the backend on authentication
// and from /auth/me. The client never mutates it; a fresh copy arrives
// with every response that carries one.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	Level           int       `json:"level"`
	XP              int       `json:"xp"`
	TotalXP         int       `json:"total_xp"`
	DisciplineScore int       `json:"discipline_score"`
	CurrentStreak   int       `json:"current_streak"`
	LongestStreak   int       `json:"longest_streak"`
	LastActive      time.Time `json:"last_active"`
	CreatedAt       time.Time `json:"created_at"`
}
