package challenges

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/dbx"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/models"
)

// SQLiteRepository stores boss challenges in SQLite. The completed flag is
// persisted as 0/1 and timestamps as RFC3339 text for driver portability.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, challenge *models.BossChallenge) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO boss_challenges (id, user_id, date, challenge_text, difficulty, xp_reward, completed, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, NULL)
	`, challenge.ID, challenge.UserID, challenge.Date, challenge.ChallengeText,
		challenge.Difficulty, challenge.XPReward)
	if err != nil {
		return fmt.Errorf("failed to create boss challenge: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetForDate(ctx context.Context, userID, date string) (*models.BossChallenge, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, date, challenge_text, difficulty, xp_reward, completed, completed_at
		FROM boss_challenges WHERE user_id = ? AND date = ?
	`, userID, date)
	return scanChallenge(row)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id, userID string) (*models.BossChallenge, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, date, challenge_text, difficulty, xp_reward, completed, completed_at
		FROM boss_challenges WHERE id = ? AND user_id = ?
	`, id, userID)
	return scanChallenge(row)
}

func (r *SQLiteRepository) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE boss_challenges SET completed = 1, completed_at = ? WHERE id = ?
	`, at.UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to mark challenge completed: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrChallengeNotFound
	}
	return nil
}

func scanChallenge(row *sql.Row) (*models.BossChallenge, error) {
	var (
		challenge   models.BossChallenge
		completed   int
		completedAt sql.NullString
	)
	err := row.Scan(&challenge.ID, &challenge.UserID, &challenge.Date,
		&challenge.ChallengeText, &challenge.Difficulty, &challenge.XPReward,
		&completed, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrChallengeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan boss challenge: %w", err)
	}

	challenge.Completed = completed != 0
	if completedAt.Valid {
		t, err := time.Parse(time.RFC3339, completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("bad completed_at for challenge %s: %w", challenge.ID, err)
		}
		challenge.CompletedAt = &t
	}
	return &challenge, nil
}
