package models

import "time"

// BossChallenge is one user's daily challenge. Date is the UTC day it was
// generated for, formatted 2006-01-02; at most one challenge exists per
// (user, date) pair.
type BossChallenge struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Date          string     `json:"date"`
	ChallengeText string     `json:"challenge_text"`
	Difficulty    int        `json:"difficulty"`
	XPReward      int        `json:"xp_reward"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// CompletionResult reports the reward of completing a boss challenge.
type CompletionResult struct {
	Success  bool `json:"success"`
	XPGained int  `json:"xp_gained"`
	LevelUp  bool `json:"level_up"`
}
