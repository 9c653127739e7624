// Package gamification holds the XP and leveling math plus the daily boss
// challenge generator.
package gamification

import (
	"math"
	"math/rand/v2"
)

// MaxLevel caps progression; XPForNextLevel reports 0 at the cap.
const MaxLevel = 1000

// challengeTexts is the pool daily challenges are drawn from.
var challengeTexts = []string{
	"Complete 5 high-difficulty tasks",
	"Study for 2 hours without breaks",
	"Complete all tasks in your weakest skill tree",
	"Achieve a perfect focus session (no distractions)",
	"Complete tasks worth 500+ XP today",
}

// LevelFromXP converts cumulative XP into a level:
// floor(sqrt(totalXP/100)) + 1, clamped to [1, MaxLevel].
func LevelFromXP(totalXP int) int {
	level := int(math.Sqrt(float64(totalXP)/100)) + 1
	if level < 1 {
		return 1
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// XPForNextLevel is the cumulative XP required to reach level+1, or 0 once
// the cap is reached.
func XPForNextLevel(level int) int {
	if level >= MaxLevel {
		return 0
	}
	return level * level * 100
}

// Challenge is the generated portion of a daily boss challenge.
type Challenge struct {
	Text       string
	Difficulty int
	XPReward   int
}

// GenerateChallenge produces the boss challenge for a user of the given
// level: difficulty scales one step per five levels (clamped to 1..5) and
// the reward grows with both. pick selects from the text pool and exists as
// a seam for deterministic tests; pass nil for random selection.
func GenerateChallenge(userLevel int, pick func(n int) int) Challenge {
	if pick == nil {
		pick = rand.IntN
	}

	difficulty := userLevel/5 + 1
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 5 {
		difficulty = 5
	}

	return Challenge{
		Text:       challengeTexts[pick(len(challengeTexts))],
		Difficulty: difficulty,
		XPReward:   difficulty*100 + userLevel*10,
	}
}

// Award applies gained XP to a user's progress counters and reports the
// new totals. The intra-level XP wraps modulo the next level's requirement;
// at the level cap it pins to 0.
func Award(totalXP, xpGained, oldLevel int) (newTotalXP, newXP, newLevel int, levelUp bool) {
	newTotalXP = totalXP + xpGained
	newLevel = LevelFromXP(newTotalXP)

	if need := XPForNextLevel(newLevel); need > 0 {
		newXP = newTotalXP % need
	}
	return newTotalXP, newXP, newLevel, newLevel > oldLevel
}
