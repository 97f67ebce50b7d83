package settings

import "context"

type SettingsRepository interface {
	// GetBool reads a boolean setting, returning the fallback when the
	// key has never been written.
	GetBool(ctx context.Context, key string, fallback bool) (bool, error)

	// SetBool upserts a boolean setting.
	SetBool(ctx context.Context, key string, value bool) error
}
