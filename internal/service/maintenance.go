package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/jask/novara/internal/database"
	"github.com/jask/novara/internal/database/repository"
)

// VaultEraser removes the stored PIN verifier.
type VaultEraser interface {
	Delete() error
}

// MaintenanceService houses destructive actions surfaced through the CLI.
type MaintenanceService struct {
	DB    *sql.DB
	Vault VaultEraser
}

// Reset wipes every profile and the PIN verifier. The schema stays so the
// app can keep running.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	profiles := repository.NewProfileRepo(s.DB)
	if err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		if err := profiles.DeleteAll(ctx, tx); err != nil {
			return fmt.Errorf("reset profiles: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	if s.Vault != nil {
		if err := s.Vault.Delete(); err != nil {
			return fmt.Errorf("reset vault: %w", err)
		}
	}
	log.Printf("maintenance: onboarding state wiped")
	return nil
}
