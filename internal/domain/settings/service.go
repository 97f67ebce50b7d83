package settings

import "context"

type SettingsService interface {
	// Breaktime reads the system-wide break toggle.
	Breaktime(ctx context.Context) (BreaktimeResponse, error)

	// UpdateBreaktime sets the system-wide break toggle. Admin only.
	UpdateBreaktime(ctx context.Context, req UpdateBreaktimeRequest) (BreaktimeResponse, error)
}
