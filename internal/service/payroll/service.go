package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workshift-ph/timeclock-backend/internal/domain/payslip"
	"github.com/workshift-ph/timeclock-backend/internal/domain/settings"
	"github.com/workshift-ph/timeclock-backend/internal/domain/timeentry"
	"github.com/workshift-ph/timeclock-backend/internal/domain/user"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/database"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/sse"
)

type PayrollServiceImpl struct {
	db *database.DB
	payslip.PayslipRepository
	payslipLogs payslip.LogRepository
	timeentry.TimeEntryRepository
	user.UserRepository
	settings.SettingsRepository
	hub *sse.Hub
}

func NewPayrollService(
	db *database.DB,
	payslipRepository payslip.PayslipRepository,
	payslipLogRepository payslip.LogRepository,
	timeEntryRepository timeentry.TimeEntryRepository,
	userRepository user.UserRepository,
	settingsRepository settings.SettingsRepository,
	hub *sse.Hub,
) payslip.PayrollService {
	return &PayrollServiceImpl{
		db:                  db,
		PayslipRepository:   payslipRepository,
		payslipLogs:         payslipLogRepository,
		TimeEntryRepository: timeEntryRepository,
		UserRepository:      userRepository,
		SettingsRepository:  settingsRepository,
		hub:                 hub,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// window is a resolved payroll selection: the covered period plus the
// individual days that count toward it.
type window struct {
	start time.Time
	end   time.Time
	dates []time.Time
}

// resolveWindow picks the generation mode: selected dates win over an
// explicit range, which wins over a week.
func resolveWindow(weekStart, startDate, endDate string, selectedDates []string) (window, error) {
	switch {
	case len(selectedDates) > 0:
		dates := make([]time.Time, 0, len(selectedDates))
		for _, s := range selectedDates {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				return window{}, payslip.ErrSelectorRequired
			}
			dates = append(dates, d)
		}
		w := window{start: dates[0], end: dates[0], dates: dates}
		for _, d := range dates[1:] {
			if d.Before(w.start) {
				w.start = d
			}
			if d.After(w.end) {
				w.end = d
			}
		}
		return w, nil

	case startDate != "" && endDate != "":
		start, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return window{}, payslip.ErrSelectorRequired
		}
		end, err := time.Parse("2006-01-02", endDate)
		if err != nil || end.Before(start) {
			return window{}, payslip.ErrSelectorRequired
		}
		return spanWindow(start, end), nil

	case weekStart != "":
		start, err := time.Parse("2006-01-02", weekStart)
		if err != nil {
			return window{}, payslip.ErrSelectorRequired
		}
		return spanWindow(start, start.AddDate(0, 0, 6)), nil
	}

	return window{}, payslip.ErrSelectorRequired
}

func spanWindow(start, end time.Time) window {
	w := window{start: start, end: end}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		w.dates = append(w.dates, d)
	}
	return w
}

// calculateForUser runs the pay rules over one user's entries in the
// window. The user lookup error is surfaced as-is so callers can tell
// a missing user apart from a storage failure.
func (s *PayrollServiceImpl) calculateForUser(ctx context.Context, userID string, w window) (Breakdown, user.User, error) {
	userData, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return Breakdown{}, user.User{}, err
	}

	breaktime, err := s.SettingsRepository.GetBool(ctx, settings.KeyBreaktimeEnabled, false)
	if err != nil {
		return Breakdown{}, user.User{}, err
	}

	entries, err := s.TimeEntryRepository.ListForUserRange(ctx, userID, w.start, w.end)
	if err != nil {
		return Breakdown{}, user.User{}, err
	}

	if len(w.dates) < dayCount(w.start, w.end) {
		entries = filterToDates(entries, w.dates)
	}

	b := Calculate(entries, Options{
		StaffHouse:       userData.StaffHouse,
		BreaktimeEnabled: breaktime,
	})
	return b, userData, nil
}

func dayCount(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func groupByDate(entries []timeentry.TimeEntry) map[string][]timeentry.TimeEntry {
	byDate := make(map[string][]timeentry.TimeEntry, len(entries))
	for _, e := range entries {
		key := e.Date.Format("2006-01-02")
		byDate[key] = append(byDate[key], e)
	}
	return byDate
}

func filterToDates(entries []timeentry.TimeEntry, dates []time.Time) []timeentry.TimeEntry {
	keep := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		keep[d.Format("2006-01-02")] = struct{}{}
	}
	var filtered []timeentry.TimeEntry
	for _, e := range entries {
		if _, ok := keep[e.Date.Format("2006-01-02")]; ok {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Generate implements payslip.PayrollService.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payslip.GenerateRequest) (payslip.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.GenerateResponse{}, err
	}

	adminID, err := userIDFromContext(ctx)
	if err != nil {
		return payslip.GenerateResponse{}, err
	}

	w, err := resolveWindow(req.WeekStart, req.StartDate, req.EndDate, req.SelectedDates)
	if err != nil {
		return payslip.GenerateResponse{}, err
	}

	userIDs, err := s.TimeEntryRepository.ListUserIDsWithClosedEntries(ctx, w.dates, req.UserIDs)
	if err != nil {
		return payslip.GenerateResponse{}, err
	}
	if len(userIDs) == 0 {
		return payslip.GenerateResponse{}, payslip.ErrNoEntriesInWindow
	}

	breaktime, err := s.SettingsRepository.GetBool(ctx, settings.KeyBreaktimeEnabled, false)
	if err != nil {
		return payslip.GenerateResponse{}, err
	}

	var resp payslip.GenerateResponse
	var affected []string
	for _, userID := range userIDs {
		userData, err := s.UserRepository.GetByID(ctx, userID)
		if err != nil {
			return payslip.GenerateResponse{}, fmt.Errorf("failed to calculate payroll for user %s: %w", userID, err)
		}

		entries, err := s.TimeEntryRepository.ListForUserRange(ctx, userID, w.start, w.end)
		if err != nil {
			return payslip.GenerateResponse{}, err
		}
		byDate := groupByDate(entries)

		// One payslip per worked day. The base-pay cap and the
		// staff-house charge are daily amounts, so wider windows
		// would understate pay.
		createdForUser := 0
		for _, d := range w.dates {
			dayEntries := byDate[d.Format("2006-01-02")]
			if len(dayEntries) == 0 {
				continue
			}

			b := Calculate(dayEntries, Options{
				StaffHouse:       userData.StaffHouse,
				BreaktimeEnabled: breaktime,
			})

			// Closed entries can still net zero worked time.
			if b.TotalHours <= 0 {
				resp.Skipped++
				continue
			}

			created, inserted, err := s.PayslipRepository.Create(ctx, payslip.Payslip{
				UserID:              userID,
				WeekStart:           d,
				WeekEnd:             d,
				TotalHours:          b.TotalHours,
				OvertimeHours:       b.OvertimeHours,
				UndertimeHours:      b.UndertimeHours,
				BaseSalary:          b.BaseSalary,
				OvertimePay:         b.OvertimePay,
				UndertimeDeduction:  b.UndertimeDeduction,
				StaffHouseDeduction: b.StaffHouseDeduction,
				TotalSalary:         b.TotalSalary,
				ClockInTime:         b.FirstClockIn,
				ClockOutTime:        b.LastClockOut,
				Status:              payslip.StatusPending,
			})
			if err != nil {
				return payslip.GenerateResponse{}, err
			}
			if !inserted {
				resp.Skipped++
				continue
			}

			resp.Created = append(resp.Created, payslip.ToResponse(created))
			createdForUser++
		}

		if createdForUser > 0 {
			affected = append(affected, userID)
		}
	}

	if len(resp.Created) > 0 {
		_, err = s.payslipLogs.Append(ctx, payslip.Log{
			AdminID:      adminID,
			Action:       payslip.LogActionGenerated,
			PeriodStart:  w.start,
			PeriodEnd:    w.end,
			PayslipCount: len(resp.Created),
			UserIDs:      affected,
		})
		if err != nil {
			return payslip.GenerateResponse{}, err
		}
	}

	return resp, nil
}

// Report implements payslip.PayrollService.
func (s *PayrollServiceImpl) Report(ctx context.Context, q payslip.ReportQuery) ([]payslip.PayslipResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	w, err := resolveWindow(q.WeekStart, q.StartDate, q.EndDate, q.SelectedDates)
	if err != nil {
		return nil, err
	}

	payslips, err := s.PayslipRepository.ListForReport(ctx, w.start, w.end)
	if err != nil {
		return nil, err
	}

	// A selected-dates query spans min..max in SQL, so drop payslips
	// on the intervening unselected days.
	if len(w.dates) < dayCount(w.start, w.end) {
		payslips = filterPayslipsToDates(payslips, w.dates)
	}

	responses := make([]payslip.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		responses = append(responses, payslip.ToResponse(p))
	}
	return responses, nil
}

func filterPayslipsToDates(payslips []payslip.Payslip, dates []time.Time) []payslip.Payslip {
	keep := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		keep[d.Format("2006-01-02")] = struct{}{}
	}
	filtered := make([]payslip.Payslip, 0, len(payslips))
	for _, p := range payslips {
		if _, ok := keep[p.WeekStart.Format("2006-01-02")]; ok {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// History implements payslip.PayrollService.
func (s *PayrollServiceImpl) History(ctx context.Context, q payslip.HistoryQuery) ([]payslip.PayslipResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	payslips, err := s.PayslipRepository.ListReleasedForUser(ctx, userID, q)
	if err != nil {
		return nil, err
	}

	responses := make([]payslip.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		responses = append(responses, payslip.ToResponse(p))
	}
	return responses, nil
}

// Update implements payslip.PayrollService. The total is always
// recomputed from the submitted parts; a client cannot set it directly.
func (s *PayrollServiceImpl) Update(ctx context.Context, req payslip.UpdatePayslipRequest) (payslip.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.PayslipResponse{}, err
	}

	adminID, err := userIDFromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	current, err := s.PayslipRepository.GetByID(ctx, req.ID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	current.ClockInTime = req.ClockInTime
	current.ClockOutTime = req.ClockOutTime
	current.TotalHours = req.TotalHours
	current.OvertimeHours = req.OvertimeHours
	current.UndertimeHours = req.UndertimeHours
	current.BaseSalary = req.BaseSalary
	current.OvertimePay = req.OvertimePay
	current.UndertimeDeduction = req.UndertimeDeduction
	current.StaffHouseDeduction = req.StaffHouseDeduction
	current.TotalSalary = req.BaseSalary.
		Add(req.OvertimePay).
		Sub(req.UndertimeDeduction).
		Sub(req.StaffHouseDeduction).
		Round(2)

	if err := s.PayslipRepository.Update(ctx, current); err != nil {
		return payslip.PayslipResponse{}, err
	}

	_, err = s.payslipLogs.Append(ctx, payslip.Log{
		AdminID:      adminID,
		Action:       payslip.LogActionEdited,
		PeriodStart:  current.WeekStart,
		PeriodEnd:    current.WeekEnd,
		PayslipCount: 1,
		UserIDs:      []string{current.UserID},
	})
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	return payslip.ToResponse(current), nil
}

// Release implements payslip.PayrollService.
func (s *PayrollServiceImpl) Release(ctx context.Context, req payslip.ReleaseRequest) (payslip.ReleaseResponse, error) {
	adminID, err := userIDFromContext(ctx)
	if err != nil {
		return payslip.ReleaseResponse{}, err
	}

	var periodStart, periodEnd *time.Time
	if len(req.SelectedDates) > 0 {
		w, err := resolveWindow("", "", "", req.SelectedDates)
		if err != nil {
			return payslip.ReleaseResponse{}, err
		}
		periodStart, periodEnd = &w.start, &w.end
	}

	count, affected, err := s.PayslipRepository.Release(ctx, periodStart, periodEnd, req.UserIDs)
	if err != nil {
		return payslip.ReleaseResponse{}, err
	}

	if count > 0 {
		logStart, logEnd := time.Now(), time.Now()
		if periodStart != nil {
			logStart, logEnd = *periodStart, *periodEnd
		}
		_, err = s.payslipLogs.Append(ctx, payslip.Log{
			AdminID:      adminID,
			Action:       payslip.LogActionReleased,
			PeriodStart:  logStart,
			PeriodEnd:    logEnd,
			PayslipCount: count,
			UserIDs:      affected,
		})
		if err != nil {
			return payslip.ReleaseResponse{}, err
		}

		s.hub.PublishToMany(affected, sse.Event{
			Event: "payslip_released",
			Data: map[string]interface{}{
				"count": count,
			},
		})
	}

	return payslip.ReleaseResponse{
		ReleasedCount: count,
		Message:       fmt.Sprintf("%d payslip(s) released", count),
	}, nil
}

// Recalculate implements payslip.PayrollService. Flagged payslips are
// recomputed over their original window and returned to pending.
func (s *PayrollServiceImpl) Recalculate(ctx context.Context) (payslip.RecalculateResponse, error) {
	flagged, err := s.PayslipRepository.ListNeedingRecalculation(ctx)
	if err != nil {
		return payslip.RecalculateResponse{}, err
	}

	count := 0
	for _, p := range flagged {
		if !p.Status.CanTransitionTo(payslip.StatusPending) {
			return payslip.RecalculateResponse{}, fmt.Errorf("payslip %s: %w", p.ID, payslip.ErrInvalidTransition)
		}

		w := spanWindow(p.WeekStart, p.WeekEnd)

		b, _, err := s.calculateForUser(ctx, p.UserID, w)
		if err != nil {
			return payslip.RecalculateResponse{}, fmt.Errorf("failed to recalculate payslip %s: %w", p.ID, err)
		}

		p.TotalHours = b.TotalHours
		p.OvertimeHours = b.OvertimeHours
		p.UndertimeHours = b.UndertimeHours
		p.BaseSalary = b.BaseSalary
		p.OvertimePay = b.OvertimePay
		p.UndertimeDeduction = b.UndertimeDeduction
		p.StaffHouseDeduction = b.StaffHouseDeduction
		p.TotalSalary = b.TotalSalary
		p.ClockInTime = b.FirstClockIn
		p.ClockOutTime = b.LastClockOut
		p.Status = payslip.StatusPending

		if err := s.PayslipRepository.Update(ctx, p); err != nil {
			return payslip.RecalculateResponse{}, err
		}
		count++
	}

	return payslip.RecalculateResponse{
		RecalculatedCount: count,
		Message:           fmt.Sprintf("%d payslip(s) recalculated", count),
	}, nil
}

// Logs implements payslip.PayrollService.
func (s *PayrollServiceImpl) Logs(ctx context.Context) ([]payslip.LogResponse, error) {
	logs, err := s.payslipLogs.List(ctx, 50)
	if err != nil {
		return nil, err
	}

	responses := make([]payslip.LogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, payslip.ToLogResponse(l))
	}
	return responses, nil
}

// DeleteLog implements payslip.PayrollService.
func (s *PayrollServiceImpl) DeleteLog(ctx context.Context, id string) error {
	return s.payslipLogs.Delete(ctx, id)
}
