package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/novara/internal/database/repository"
	"github.com/jask/novara/internal/secrets"
)

func TestResetWipesProfilesAndVault(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openDB(t)
	repo := repository.NewProfileRepo(db)
	vault := &secrets.PinVault{
		Path: filepath.Join(t.TempDir(), "pin.json"),
		KDF:  secrets.KDF{Time: 1, Memory: 1024, Threads: 1},
	}
	require.NoError(t, vault.Store("135790", false))
	require.NoError(t, repo.Upsert(ctx, repository.Profile{ID: "p1", Role: "shopper", SeedBackedUp: true, CompletedAt: time.Now()}))

	svc := &MaintenanceService{DB: db, Vault: vault}
	require.NoError(t, svc.Reset(ctx))

	p, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.Nil(t, p)
	_, err = vault.Load()
	require.ErrorIs(t, err, secrets.ErrNoPin)

	// second reset is a no-op
	require.NoError(t, svc.Reset(ctx))
}

func TestResetWithoutDB(t *testing.T) {
	t.Parallel()
	require.Error(t, (&MaintenanceService{}).Reset(context.Background()))
}
