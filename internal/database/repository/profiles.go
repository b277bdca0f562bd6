package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ProfileRepo handles onboarding profiles.
type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Upsert(ctx context.Context, p Profile) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO profiles(id, role, biometrics_enabled, seed_backed_up, completed_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 role=excluded.role,
	 biometrics_enabled=excluded.biometrics_enabled,
	 seed_backed_up=excluded.seed_backed_up,
	 completed_at=excluded.completed_at;
	`, p.ID, p.Role, p.BiometricsEnabled, p.SeedBackedUp, p.CompletedAt.UTC())
	return err
}

// Latest returns the most recently completed profile, or nil when none exist.
func (r *ProfileRepo) Latest(ctx context.Context) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, role, biometrics_enabled, seed_backed_up, completed_at
	FROM profiles ORDER BY completed_at DESC, rowid DESC LIMIT 1`)
	var p Profile
	if err := row.Scan(&p.ID, &p.Role, &p.BiometricsEnabled, &p.SeedBackedUp, &p.CompletedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepo) List(ctx context.Context) ([]Profile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, role, biometrics_enabled, seed_backed_up, completed_at FROM profiles ORDER BY completed_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Role, &p.BiometricsEnabled, &p.SeedBackedUp, &p.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteAll removes every profile inside tx.
func (r *ProfileRepo) DeleteAll(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM profiles`)
	return err
}
