// Package challenges persists daily boss challenges.
package challenges

import (
	"context"
	"time"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/dbx"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/models"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/storage"
)

// Repository is the persistence contract for boss challenges. Missing rows
// are reported as models.ErrChallengeNotFound.
type Repository interface {
	Create(ctx context.Context, challenge *models.BossChallenge) error
	GetForDate(ctx context.Context, userID, date string) (*models.BossChallenge, error)
	GetByID(ctx context.Context, id, userID string) (*models.BossChallenge, error)
	MarkCompleted(ctx context.Context, id string, at time.Time) error
}

// New returns the Repository implementation matching the storage dialect.
func New(db dbx.DBTX, dialect storage.Dialect) Repository {
	if dialect == storage.DialectPostgres {
		return NewPostgresRepository(db)
	}
	return NewSQLiteRepository(db)
}
