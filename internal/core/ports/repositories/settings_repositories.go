package repositories

import "context"

// SettingsRepository is the engine-owned key-value store holding the small
// amount of state that lives outside the primary entities: the active company
// selection and the "default data already seeded" marker. Both survive restarts.
type SettingsRepository interface {
	// Get retrieves the value for key. Returns apperrors.ErrNotFound when the
	// key has never been set.
	Get(ctx context.Context, key string) (string, error)

	// Set stores or replaces the value for key.
	Set(ctx context.Context, key string, value string) error
}
