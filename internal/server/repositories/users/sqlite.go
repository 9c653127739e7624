package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/dbx"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/models"
)

// SQLiteRepository stores users in SQLite. Timestamps are kept as RFC3339
// text so rows stay portable across drivers.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, username, hashed_password, level, xp, total_xp,
			discipline_score, current_streak, longest_streak, last_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, user.ID, user.Email, user.Username, user.HashedPassword, user.Level, user.XP,
		user.TotalXP, user.DisciplineScore, user.CurrentStreak, user.LongestStreak,
		user.LastActive.UTC().Format(time.RFC3339), user.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, username, hashed_password, level, xp, total_xp,
			discipline_score, current_streak, longest_streak, last_active, created_at
		FROM users WHERE email = ?
	`, email)
	return scanUser(row)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, username, hashed_password, level, xp, total_xp,
			discipline_score, current_streak, longest_streak, last_active, created_at
		FROM users WHERE id = ?
	`, id)
	return scanUser(row)
}

func (r *SQLiteRepository) UpdateProgress(ctx context.Context, id string, totalXP, xp, level int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET total_xp = ?, xp = ?, level = ? WHERE id = ?
	`, totalXP, xp, level, id)
	if err != nil {
		return fmt.Errorf("failed to update user progress: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// scanUser maps one row onto a User, converting the stored RFC3339 text
// back into time values.
func scanUser(row *sql.Row) (*models.User, error) {
	var (
		user       models.User
		lastActive string
		createdAt  string
	)
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.HashedPassword,
		&user.Level, &user.XP, &user.TotalXP, &user.DisciplineScore,
		&user.CurrentStreak, &user.LongestStreak, &lastActive, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	if user.LastActive, err = time.Parse(time.RFC3339, lastActive); err != nil {
		return nil, fmt.Errorf("bad last_active for user %s: %w", user.ID, err)
	}
	if user.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("bad created_at for user %s: %w", user.ID, err)
	}
	return &user, nil
}
