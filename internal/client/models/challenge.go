package models

// BossChallenge is the daily challenge as served by the backend. The
// client replaces it wholesale on every fetch and never mutates fields
// locally; Completed only flips through a re-fetch.
type BossChallenge struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	ChallengeText string `json:"challenge_text"`
	Difficulty    int    `json:"difficulty"`
	XPReward      int    `json:"xp_reward"`
	Completed     bool   `json:"completed"`
}

// CompletionResult is the backend's answer to a completion request.
type CompletionResult struct {
	Success  bool `json:"success"`
	XPGained int  `json:"xp_gained"`
	LevelUp  bool `json:"level_up"`
}
