package users

import (
	"context"
	"fmt"
	"time"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/dbx"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/models"
)

// PostgresRepository is the PostgreSQL flavor of the users store. Same
// schema and row mapping as SQLite, positional placeholders aside.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, username, hashed_password, level, xp, total_xp,
			discipline_score, current_streak, longest_streak, last_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, user.ID, user.Email, user.Username, user.HashedPassword, user.Level, user.XP,
		user.TotalXP, user.DisciplineScore, user.CurrentStreak, user.LongestStreak,
		user.LastActive.UTC().Format(time.RFC3339), user.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, username, hashed_password, level, xp, total_xp,
			discipline_score, current_streak, longest_streak, last_active, created_at
		FROM users WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, username, hashed_password, level, xp, total_xp,
			discipline_score, current_streak, longest_streak, last_active, created_at
		FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *PostgresRepository) UpdateProgress(ctx context.Context, id string, totalXP, xp, level int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET total_xp = $1, xp = $2, level = $3 WHERE id = $4
	`, totalXP, xp, level, id)
	if err != nil {
		return fmt.Errorf("failed to update user progress: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
