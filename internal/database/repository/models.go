package repository

import "time"

// Profile is a completed onboarding run.
type Profile struct {
	ID                string
	Role              string
	BiometricsEnabled bool
	SeedBackedUp      bool
	CompletedAt       time.Time
}
