package postgresql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/workshift-ph/timeclock-backend/internal/domain/settings"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// GetBool implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) GetBool(ctx context.Context, key string, fallback bool) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT value FROM system_settings WHERE key = $1`

	var value string
	err := q.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return fallback, nil
		}
		return fallback, fmt.Errorf("failed to get setting: %w", err)
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, nil
	}
	return parsed, nil
}

// SetBool implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) SetBool(ctx context.Context, key string, value bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO system_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, key, strconv.FormatBool(value)); err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}
