package challenges

import (
	"context"
	"fmt"
	"time"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/dbx"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/models"
)

// PostgresRepository is the PostgreSQL flavor of the challenge store.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, challenge *models.BossChallenge) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO boss_challenges (id, user_id, date, challenge_text, difficulty, xp_reward, completed, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, NULL)
	`, challenge.ID, challenge.UserID, challenge.Date, challenge.ChallengeText,
		challenge.Difficulty, challenge.XPReward)
	if err != nil {
		return fmt.Errorf("failed to create boss challenge: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetForDate(ctx context.Context, userID, date string) (*models.BossChallenge, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, date, challenge_text, difficulty, xp_reward, completed, completed_at
		FROM boss_challenges WHERE user_id = $1 AND date = $2
	`, userID, date)
	return scanChallenge(row)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID string) (*models.BossChallenge, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, date, challenge_text, difficulty, xp_reward, completed, completed_at
		FROM boss_challenges WHERE id = $1 AND user_id = $2
	`, id, userID)
	return scanChallenge(row)
}

func (r *PostgresRepository) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE boss_challenges SET completed = 1, completed_at = $1 WHERE id = $2
	`, at.UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to mark challenge completed: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrChallengeNotFound
	}
	return nil
}
