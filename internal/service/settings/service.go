package settings

import (
	"context"

	"github.com/workshift-ph/timeclock-backend/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
}

func NewSettingsService(settingsRepository settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{SettingsRepository: settingsRepository}
}

// Breaktime implements settings.SettingsService.
func (s *SettingsServiceImpl) Breaktime(ctx context.Context) (settings.BreaktimeResponse, error) {
	enabled, err := s.GetBool(ctx, settings.KeyBreaktimeEnabled, false)
	if err != nil {
		return settings.BreaktimeResponse{}, err
	}
	return settings.BreaktimeResponse{Enabled: enabled}, nil
}

// UpdateBreaktime implements settings.SettingsService.
func (s *SettingsServiceImpl) UpdateBreaktime(ctx context.Context, req settings.UpdateBreaktimeRequest) (settings.BreaktimeResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.BreaktimeResponse{}, err
	}

	if err := s.SetBool(ctx, settings.KeyBreaktimeEnabled, *req.Enabled); err != nil {
		return settings.BreaktimeResponse{}, err
	}
	return settings.BreaktimeResponse{Enabled: *req.Enabled}, nil
}
