// Package users persists account records.
package users

import (
	"context"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/dbx"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/models"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/storage"
)

// Repository is the persistence contract for users. Missing rows are
// reported as models.ErrUserNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProgress(ctx context.Context, id string, totalXP, xp, level int) error
}

// New returns the Repository implementation matching the storage dialect.
func New(db dbx.DBTX, dialect storage.Dialect) Repository {
	if dialect == storage.DialectPostgres {
		return NewPostgresRepository(db)
	}
	return NewSQLiteRepository(db)
}
