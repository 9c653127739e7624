// Package storage opens the server database and applies migrations.
// SQLite is the default; a postgres:// DSN switches to PostgreSQL via the
// pgx stdlib driver. Repository constructors pick the matching SQL flavor
// based on the reported dialect.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// Open connects to the database named by dsn, runs pending migrations and
// returns the handle together with the selected dialect.
func Open(ctx context.Context, dsn string) (*sql.DB, Dialect, error) {
	dialect := DialectSQLite
	driver := "sqlite"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialect = DialectPostgres
		driver = "pgx"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}

	if err := RunMigrations(ctx, db, dialect); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("run migrations: %w", err)
	}

	return db, dialect, nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect(string(dialect)); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
