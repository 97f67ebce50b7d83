package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/workshift-ph/timeclock-backend/internal/domain/timeentry"
	"github.com/workshift-ph/timeclock-backend/internal/handler/http/response"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/jwt"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/sse"
)

type TimeTrackingHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	TodayEntry(w http.ResponseWriter, r *http.Request)
	RequestOvertime(w http.ResponseWriter, r *http.Request)
	ListOvertimeRequests(w http.ResponseWriter, r *http.Request)
	ApproveOvertime(w http.ResponseWriter, r *http.Request)
	Notifications(w http.ResponseWriter, r *http.Request)
	AdjustTime(w http.ResponseWriter, r *http.Request)
	Progress(w http.ResponseWriter, r *http.Request)
	TimeLogs(w http.ResponseWriter, r *http.Request)
	ActiveUsers(w http.ResponseWriter, r *http.Request)

	// SSE
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type TimeTrackingHandlerImpl struct {
	trackingService timeentry.TimeTrackingService
	jwtService      jwt.Service
	hub             *sse.Hub
}

func NewTimeTrackingHandler(trackingService timeentry.TimeTrackingService, jwtService jwt.Service, hub *sse.Hub) TimeTrackingHandler {
	return &TimeTrackingHandlerImpl{
		trackingService: trackingService,
		jwtService:      jwtService,
		hub:             hub,
	}
}

// getUserIDFromContext extracts user_id from JWT context
func getUserIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	return ""
}

// ClockIn implements TimeTrackingHandler.
func (h *TimeTrackingHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	entry, err := h.trackingService.ClockIn(r.Context())
	if err != nil {
		slog.Error("ClockIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in", entry)
}

// ClockOut implements TimeTrackingHandler.
func (h *TimeTrackingHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req timeentry.ClockOutRequest
	// Body is optional, only carries the overtime note.
	_ = json.NewDecoder(r.Body).Decode(&req)

	entry, err := h.trackingService.ClockOut(r.Context(), req)
	if err != nil {
		slog.Error("ClockOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", entry)
}

// TodayEntry implements TimeTrackingHandler.
func (h *TimeTrackingHandlerImpl) TodayEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.trackingService.TodayEntry(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entry)
}

// RequestOvertime implements TimeTrackingHandler.
func (h *TimeTrackingHandlerImpl) RequestOvertime(w http.ResponseWriter, r *http.Request) {
	var req timeentry.OvertimeRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.trackingService.RequestOvertime(r.Context(), req)
	if err != nil {
		slog.Error("RequestOvertime service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime requested", entry)
}

// ListOvertimeRequests implements TimeTrackingHandler.
func (h *TimeTrackingHandlerImpl) ListOvertimeRequests(w http.ResponseWriter, r *http.Request) {
	entries, err := h.trackingService.ListOvertimeRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// ApproveOvertime implements TimeTrackingHandler.
func (h *TimeTrackingHandlerImpl) ApproveOvertime(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")

	var req timeentry.ApproveOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.trackingService.ApproveOvertime(r.Context(), entryID, req)
	if err != nil {
		slog.Error("ApproveOvertime service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime decision recorded", entry)
}

// Notifications implements TimeTrackingHandler.
func (h *TimeTrackingHandlerImpl) Notifications(w http.ResponseWriter, r *http.Request) {
	entries, err := h.trackingService.Notifications(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// AdjustTime implements TimeTrackingHandler.
func (h *TimeTrackingHandlerImpl) AdjustTime(w http.ResponseWriter, r *http.Request) {
	var req timeentry.AdjustTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = chi.URLParam(r, "userId")

	entry, err := h.trackingService.AdjustTime(r.Context(), req)
	if err != nil {
		slog.Error("AdjustTime service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entry adjusted", entry)
}

// Progress implements TimeTrackingHandler.
func (h *TimeTrackingHandlerImpl) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.trackingService.Progress(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, progress)
}

// TimeLogs implements TimeTrackingHandler.
func (h *TimeTrackingHandlerImpl) TimeLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := h.trackingService.TimeLogs(r.Context(), r.URL.Query().Get("week_start"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// ActiveUsers implements TimeTrackingHandler.
func (h *TimeTrackingHandlerImpl) ActiveUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.trackingService.ActiveUsers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

type sseTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// GetSSEToken implements TimeTrackingHandler.
func (h *TimeTrackingHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, sseTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream implements TimeTrackingHandler. EventSource cannot send
// custom headers, so auth rides in a short-lived query token.
func (h *TimeTrackingHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(userID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":\"%s\"}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
