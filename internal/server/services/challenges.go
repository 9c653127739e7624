package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/dbx"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/gamification"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/models"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/repositories/challenges"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/repositories/users"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/storage"
)

// ChallengeService serves and completes daily boss challenges. It works on
// the raw DB handle so completion can run its two writes in one
// transaction. now and pick are seams for deterministic tests; pick may be
// nil for random challenge selection.
type ChallengeService struct {
	db      *sql.DB
	dialect storage.Dialect
	now     func() time.Time
	pick    func(n int) int
}

func NewChallengeService(db *sql.DB, dialect storage.Dialect) *ChallengeService {
	return &ChallengeService{
		db:      db,
		dialect: dialect,
		now:     time.Now,
	}
}

func (s *ChallengeService) challengeRepo(db dbx.DBTX) challenges.Repository {
	return challenges.New(db, s.dialect)
}

func (s *ChallengeService) userRepo(db dbx.DBTX) users.Repository {
	return users.New(db, s.dialect)
}

// Today returns the user's challenge for the current UTC day, generating
// and persisting one on first call. Repeated calls on the same day return
// the same challenge.
func (s *ChallengeService) Today(ctx context.Context, user *models.User) (*models.BossChallenge, error) {
	repo := s.challengeRepo(s.db)
	date := s.now().UTC().Format("2006-01-02")

	existing, err := repo.GetForDate(ctx, user.ID, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrChallengeNotFound) {
		return nil, err
	}

	generated := gamification.GenerateChallenge(user.Level, s.pick)
	challenge := &models.BossChallenge{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		Date:          date,
		ChallengeText: generated.Text,
		Difficulty:    generated.Difficulty,
		XPReward:      generated.XPReward,
	}

	if err := repo.Create(ctx, challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// Complete marks the challenge done and credits its XP to the user, in a
// single transaction. Completing someone else's challenge or an unknown id
// yields models.ErrChallengeNotFound; doing it twice yields
// models.ErrChallengeCompleted.
func (s *ChallengeService) Complete(ctx context.Context, user *models.User, challengeID string) (*models.CompletionResult, error) {
	var result *models.CompletionResult

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		challengeRepo := s.challengeRepo(tx)
		userRepo := s.userRepo(tx)

		challenge, err := challengeRepo.GetByID(ctx, challengeID, user.ID)
		if err != nil {
			return err
		}
		if challenge.Completed {
			return models.ErrChallengeCompleted
		}

		if err := challengeRepo.MarkCompleted(ctx, challenge.ID, s.now()); err != nil {
			return err
		}

		totalXP, xp, level, levelUp := gamification.Award(user.TotalXP, challenge.XPReward, user.Level)
		if err := userRepo.UpdateProgress(ctx, user.ID, totalXP, xp, level); err != nil {
			return err
		}

		result = &models.CompletionResult{Success: true, XPGained: challenge.XPReward, LevelUp: levelUp}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
