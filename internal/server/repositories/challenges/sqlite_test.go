package challenges

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/models"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/storage"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, storage.RunMigrations(context.Background(), db, storage.DialectSQLite))

	// Owner row for the foreign key.
	_, err = db.Exec(`
		INSERT INTO users (id, email, username, hashed_password, last_active, created_at)
		VALUES ('u1', 'a@b.io', 'hunter', 'hashed', '2026-08-30T00:00:00Z', '2026-08-30T00:00:00Z')
	`)
	require.NoError(t, err)
	return db
}

func testChallenge() *models.BossChallenge {
	return &models.BossChallenge{
		ID:            "ch-1",
		UserID:        "u1",
		Date:          "2026-08-30",
		ChallengeText: "Study for 2 hours without breaks",
		Difficulty:    3,
		XPReward:      500,
	}
}

func TestCreateAndGetForDate(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	want := testChallenge()

	require.NoError(t, r.Create(ctx, want))

	got, err := r.GetForDate(ctx, "u1", "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
}

func TestGetForDate_Missing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.GetForDate(context.Background(), "u1", "2026-08-31")
	assert.ErrorIs(t, err, models.ErrChallengeNotFound)
}

func TestGetByID_ScopedToUser(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, testChallenge()))

	got, err := r.GetByID(ctx, "ch-1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "ch-1", got.ID)

	// Someone else's id never resolves.
	_, err = r.GetByID(ctx, "ch-1", "u2")
	assert.ErrorIs(t, err, models.ErrChallengeNotFound)
}

func TestCreate_SecondChallengeSameDayFails(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, testChallenge()))

	second := testChallenge()
	second.ID = "ch-2"
	assert.Error(t, r.Create(ctx, second))
}

func TestMarkCompleted(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, testChallenge()))

	at := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	require.NoError(t, r.MarkCompleted(ctx, "ch-1", at))

	got, err := r.GetByID(ctx, "ch-1", "u1")
	require.NoError(t, err)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, at, got.CompletedAt.UTC())
}

func TestMarkCompleted_Unknown(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	err := r.MarkCompleted(context.Background(), "absent", time.Now())
	assert.ErrorIs(t, err, models.ErrChallengeNotFound)
}

func TestNew_SelectsDialect(t *testing.T) {
	db := setupDB(t)

	assert.IsType(t, &SQLiteRepository{}, New(db, storage.DialectSQLite))
	assert.IsType(t, &PostgresRepository{}, New(db, storage.DialectPostgres))
}
