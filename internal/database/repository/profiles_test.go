package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/novara/internal/database"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	migrations, err := filepath.Abs("../migrations")
	require.NoError(t, err)
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "test.db"), migrations)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestProfileRepoLatestEmpty(t *testing.T) {
	t.Parallel()
	repo := NewProfileRepo(openTestDB(t))

	p, err := repo.Latest(context.Background())
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestProfileRepoUpsertAndLatest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewProfileRepo(openTestDB(t))

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, Profile{ID: "a", Role: "shopper", BiometricsEnabled: true, SeedBackedUp: true, CompletedAt: first}))
	require.NoError(t, repo.Upsert(ctx, Profile{ID: "b", Role: "shopper", CompletedAt: first.Add(time.Hour)}))

	p, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, "b", p.ID)
	require.False(t, p.BiometricsEnabled)

	// upsert replaces in place
	require.NoError(t, repo.Upsert(ctx, Profile{ID: "a", Role: "shopper", SeedBackedUp: true, CompletedAt: first.Add(2 * time.Hour)}))
	p, err = repo.Latest(ctx)
	require.NoError(t, err)
	require.Equal(t, "a", p.ID)
	require.True(t, p.SeedBackedUp)
	require.True(t, p.CompletedAt.Equal(first.Add(2*time.Hour)))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestProfileRepoRejectsUnknownRole(t *testing.T) {
	t.Parallel()
	repo := NewProfileRepo(openTestDB(t))
	err := repo.Upsert(context.Background(), Profile{ID: "x", Role: "admin", CompletedAt: time.Now()})
	require.Error(t, err)
}

func TestProfileRepoDeleteAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewProfileRepo(db)
	require.NoError(t, repo.Upsert(ctx, Profile{ID: "a", Role: "merchant", CompletedAt: time.Now()}))

	require.NoError(t, database.WithTx(db, func(tx *sql.Tx) error {
		return repo.DeleteAll(ctx, tx)
	}))
	p, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.Nil(t, p)
}
