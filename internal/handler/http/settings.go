package http

import (
	"encoding/json"
	"net/http"

	"github.com/workshift-ph/timeclock-backend/internal/domain/settings"
	"github.com/workshift-ph/timeclock-backend/internal/handler/http/response"
)

type SettingsHandler interface {
	Breaktime(w http.ResponseWriter, r *http.Request)
	UpdateBreaktime(w http.ResponseWriter, r *http.Request)
}

type SettingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &SettingsHandlerImpl{settingsService: settingsService}
}

// Breaktime implements SettingsHandler.
func (h *SettingsHandlerImpl) Breaktime(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settingsService.Breaktime(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, setting)
}

// UpdateBreaktime implements SettingsHandler.
func (h *SettingsHandlerImpl) UpdateBreaktime(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateBreaktimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	setting, err := h.settingsService.UpdateBreaktime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Breaktime setting updated", setting)
}
