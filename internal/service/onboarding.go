package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jask/novara/internal/database"
	"github.com/jask/novara/internal/database/repository"
	"github.com/jask/novara/internal/navigation"
	"github.com/jask/novara/internal/onboarding"
	"github.com/jask/novara/internal/secrets"
)

// PinStore persists the wallet PIN verifier.
type PinStore interface {
	Store(pin string, biometrics bool) error
	Load() (secrets.Record, error)
}

// OnboardingService runs the side effects the navigation flow asks for.
type OnboardingService struct {
	Vault     PinStore
	Profiles  *repository.ProfileRepo
	Clipboard Clipboard
	Now       func() time.Time
}

// Status summarises what has been persisted so far.
type Status struct {
	Profile    *repository.Profile
	Role       onboarding.Role
	PinStored  bool
	PinUpdated time.Time
}

func (s Status) Completed() bool {
	return s.Profile != nil && s.Profile.SeedBackedUp
}

// PinReady stores the session PIN. The PIN is not logged.
func (s *OnboardingService) PinReady(ctx context.Context, sess navigation.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Vault == nil {
		return fmt.Errorf("onboarding: vault not configured")
	}
	if err := s.Vault.Store(sess.Pin, sess.BiometricsEnabled); err != nil {
		return fmt.Errorf("store pin: %w", err)
	}
	log.Printf("onboarding: session %s pin stored (biometrics=%t)", sess.ID, sess.BiometricsEnabled)
	return nil
}

// CopySeed puts the space-joined words on the clipboard.
func (s *OnboardingService) CopySeed(words []string) error {
	if len(words) == 0 {
		return fmt.Errorf("copy seed: no words")
	}
	cb := s.Clipboard
	if cb == nil {
		cb = DisabledClipboard{}
	}
	if err := cb.WriteAll(strings.Join(words, " ")); err != nil {
		return fmt.Errorf("copy seed: %w", err)
	}
	return nil
}

// Complete records the finished onboarding run.
func (s *OnboardingService) Complete(ctx context.Context, sess navigation.Session) (repository.Profile, error) {
	if s.Profiles == nil {
		return repository.Profile{}, fmt.Errorf("onboarding: profiles not configured")
	}
	if !sess.Role.Valid() {
		return repository.Profile{}, fmt.Errorf("onboarding: session %s has no role", sess.ID)
	}
	p := repository.Profile{
		ID:                sess.ID.String(),
		Role:              sess.Role.String(),
		BiometricsEnabled: sess.BiometricsEnabled,
		SeedBackedUp:      sess.SeedBackedUp,
		CompletedAt:       s.now(),
	}
	if err := s.Profiles.Upsert(ctx, p); err != nil {
		return repository.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	log.Printf("onboarding: session %s completed as %s", sess.ID, p.Role)
	return p, nil
}

func (s *OnboardingService) Status(ctx context.Context) (Status, error) {
	var st Status
	if s.Profiles != nil {
		p, err := s.Profiles.Latest(ctx)
		if err != nil {
			return st, fmt.Errorf("latest profile: %w", err)
		}
		st.Profile = p
		if p != nil {
			role, err := onboarding.ParseRole(p.Role)
			if err != nil {
				return st, fmt.Errorf("profile %s: %w", p.ID, err)
			}
			st.Role = role
		}
	}
	if s.Vault != nil {
		rec, err := s.Vault.Load()
		switch {
		case err == nil:
			st.PinStored = true
			st.PinUpdated = rec.UpdatedAt
		case errors.Is(err, secrets.ErrNoPin):
		default:
			return st, fmt.Errorf("load vault: %w", err)
		}
	}
	return st, nil
}

func (s *OnboardingService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC().Truncate(time.Second)
	}
	return database.Now()
}
