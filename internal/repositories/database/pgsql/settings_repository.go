package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallybook/tallybook/internal/apperrors"
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
)

// PgxSettingsRepository backs the engine's key-value state (active company
// selection, seed marker) with a small settings table.
type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for settings data.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

// Get retrieves the value for key, or apperrors.ErrNotFound when unset.
func (r *PgxSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM app_settings WHERE key = $1;`
	var value string
	err := r.Pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to read setting "+key, err)
	}
	return value, nil
}

// Set stores or replaces the value for key.
func (r *PgxSettingsRepository) Set(ctx context.Context, key string, value string) error {
	query := `
		INSERT INTO app_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;
	`
	_, err := r.Pool.Exec(ctx, query, key, value)
	if err != nil {
		return apperrors.NewAppError(500, "failed to write setting "+key, err)
	}
	return nil
}
