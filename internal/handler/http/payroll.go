package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/workshift-ph/timeclock-backend/internal/domain/payslip"
	"github.com/workshift-ph/timeclock-backend/internal/handler/http/response"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Release(w http.ResponseWriter, r *http.Request)
	Recalculate(w http.ResponseWriter, r *http.Request)
	Logs(w http.ResponseWriter, r *http.Request)
	DeleteLog(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payslip.PayrollService
}

func NewPayrollHandler(payrollService payslip.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Generate implements PayrollHandler.
func (h *PayrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payslip.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		slog.Error("Generate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslips generated", result)
}

// Report implements PayrollHandler.
func (h *PayrollHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := payslip.ReportQuery{
		WeekStart: query.Get("weekStart"),
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
	}
	if dates := query.Get("selectedDates"); dates != "" {
		q.SelectedDates = strings.Split(dates, ",")
	}

	payslips, err := h.payrollService.Report(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payslips)
}

// History implements PayrollHandler.
func (h *PayrollHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := payslip.HistoryQuery{
		WeekStart:   query.Get("weekStart"),
		WeekEnd:     query.Get("weekEnd"),
		SpecificDay: query.Get("specificDay"),
	}

	payslips, err := h.payrollService.History(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payslips)
}

// Update implements PayrollHandler.
func (h *PayrollHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req payslip.UpdatePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.payrollService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update payslip service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip updated", updated)
}

// Release implements PayrollHandler.
func (h *PayrollHandlerImpl) Release(w http.ResponseWriter, r *http.Request) {
	var req payslip.ReleaseRequest
	// Empty body releases every pending payslip.
	_ = json.NewDecoder(r.Body).Decode(&req)

	result, err := h.payrollService.Release(r.Context(), req)
	if err != nil {
		slog.Error("Release service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// Recalculate implements PayrollHandler.
func (h *PayrollHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.Recalculate(r.Context())
	if err != nil {
		slog.Error("Recalculate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// Logs implements PayrollHandler.
func (h *PayrollHandlerImpl) Logs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.payrollService.Logs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, logs)
}

// DeleteLog implements PayrollHandler.
func (h *PayrollHandlerImpl) DeleteLog(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeleteLog(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip log deleted", nil)
}
