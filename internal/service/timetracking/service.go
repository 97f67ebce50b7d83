package timetracking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/workshift-ph/timeclock-backend/internal/domain/payslip"
	"github.com/workshift-ph/timeclock-backend/internal/domain/timeentry"
	"github.com/workshift-ph/timeclock-backend/internal/domain/user"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/database"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/sse"
	"github.com/workshift-ph/timeclock-backend/internal/repository/postgresql"
)

// Overtime requests on fully closed days materialize as an evening
// entry covering the usual 16:00 to 18:00 window.
const (
	eveningOvertimeStartHour = 16
	eveningOvertimeEndHour   = 18
)

type TimeTrackingServiceImpl struct {
	db *database.DB
	timeentry.TimeEntryRepository
	payslip.PayslipRepository
	payslipLogs payslip.LogRepository
	user.UserRepository
	hub *sse.Hub
}

func NewTimeTrackingService(
	db *database.DB,
	timeEntryRepository timeentry.TimeEntryRepository,
	payslipRepository payslip.PayslipRepository,
	payslipLogRepository payslip.LogRepository,
	userRepository user.UserRepository,
	hub *sse.Hub,
) timeentry.TimeTrackingService {
	return &TimeTrackingServiceImpl{
		db:                  db,
		TimeEntryRepository: timeEntryRepository,
		PayslipRepository:   payslipRepository,
		payslipLogs:         payslipLogRepository,
		UserRepository:      userRepository,
		hub:                 hub,
	}
}

func claimsFromContext(ctx context.Context) (userID string, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}
	role, _ = claims["role"].(string)
	return userID, role, nil
}

// ClockIn implements timeentry.TimeTrackingService.
func (s *TimeTrackingServiceImpl) ClockIn(ctx context.Context) (timeentry.TimeEntryResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	now := time.Now()
	today := timeentry.DateOf(now)

	// One entry per day, whether still open or already closed.
	hasEntry, err := s.TimeEntryRepository.HasEntryForDate(ctx, userID, today)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	if hasEntry {
		return timeentry.TimeEntryResponse{}, timeentry.ErrAlreadyClockedIn
	}

	created, err := s.TimeEntryRepository.Create(ctx, timeentry.TimeEntry{
		UserID:    userID,
		ClockIn:   now,
		Date:      today,
		WeekStart: timeentry.WeekStartOf(now),
	})
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	return timeentry.ToResponse(created), nil
}

// ClockOut implements timeentry.TimeTrackingService.
func (s *TimeTrackingServiceImpl) ClockOut(ctx context.Context, req timeentry.ClockOutRequest) (timeentry.TimeEntryResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	now := time.Now()
	today := timeentry.DateOf(now)

	open, err := s.TimeEntryRepository.GetOpenSession(ctx, userID, today)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	if open == nil {
		return timeentry.TimeEntryResponse{}, timeentry.ErrNoActiveSession
	}

	if err := s.TimeEntryRepository.SetClockOut(ctx, open.ID, now, req.OvertimeNote); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	closed, err := s.TimeEntryRepository.GetByID(ctx, open.ID)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	return timeentry.ToResponse(closed), nil
}

// TodayEntry implements timeentry.TimeTrackingService.
func (s *TimeTrackingServiceImpl) TodayEntry(ctx context.Context) (*timeentry.TimeEntryResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	latest, err := s.TimeEntryRepository.GetLatestForDate(ctx, userID, timeentry.DateOf(time.Now()))
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}

	resp := timeentry.ToResponse(*latest)
	return &resp, nil
}

// RequestOvertime implements timeentry.TimeTrackingService. Any entry
// already on the date carries the request directly; an empty day gets
// an evening entry so the extra hours have somewhere to accrue.
func (s *TimeTrackingServiceImpl) RequestOvertime(ctx context.Context, req timeentry.OvertimeRequestRequest) (timeentry.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	latest, err := s.TimeEntryRepository.GetLatestForDate(ctx, userID, date)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	if latest != nil {
		if err := s.TimeEntryRepository.MarkOvertimeRequested(ctx, latest.ID, req.Note); err != nil {
			return timeentry.TimeEntryResponse{}, err
		}
		updated, err := s.TimeEntryRepository.GetByID(ctx, latest.ID)
		if err != nil {
			return timeentry.TimeEntryResponse{}, err
		}
		return timeentry.ToResponse(updated), nil
	}

	clockIn := time.Date(date.Year(), date.Month(), date.Day(), eveningOvertimeStartHour, 0, 0, 0, date.Location())
	clockOut := time.Date(date.Year(), date.Month(), date.Day(), eveningOvertimeEndHour, 0, 0, 0, date.Location())
	note := req.Note

	created, err := s.TimeEntryRepository.Create(ctx, timeentry.TimeEntry{
		UserID:            userID,
		ClockIn:           clockIn,
		ClockOut:          &clockOut,
		Date:              date,
		WeekStart:         timeentry.WeekStartOf(date),
		OvertimeRequested: true,
		OvertimeNote:      &note,
	})
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	return timeentry.ToResponse(created), nil
}

// ListOvertimeRequests implements timeentry.TimeTrackingService.
func (s *TimeTrackingServiceImpl) ListOvertimeRequests(ctx context.Context) ([]timeentry.TimeEntryResponse, error) {
	entries, err := s.TimeEntryRepository.ListPendingOvertime(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]timeentry.TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, timeentry.ToResponse(e))
	}
	return responses, nil
}

// ApproveOvertime implements timeentry.TimeTrackingService.
func (s *TimeTrackingServiceImpl) ApproveOvertime(ctx context.Context, entryID string, req timeentry.ApproveOvertimeRequest) (timeentry.TimeEntryResponse, error) {
	adminID, _, err := claimsFromContext(ctx)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	if err := s.TimeEntryRepository.DecideOvertime(ctx, entryID, req.Approved, adminID); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	decided, err := s.TimeEntryRepository.GetByID(ctx, entryID)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	s.hub.Publish(decided.UserID, sse.Event{
		UserID: decided.UserID,
		Event:  "overtime_decision",
		Data: map[string]interface{}{
			"entry_id": decided.ID,
			"date":     decided.Date.Format("2006-01-02"),
			"approved": req.Approved,
		},
	})

	return timeentry.ToResponse(decided), nil
}

// Notifications implements timeentry.TimeTrackingService.
func (s *TimeTrackingServiceImpl) Notifications(ctx context.Context) ([]timeentry.TimeEntryResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.TimeEntryRepository.ListUnnotifiedDecisions(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]timeentry.TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, timeentry.ToResponse(e))
	}
	return responses, nil
}

// AdjustTime implements timeentry.TimeTrackingService. The user's day
// is replaced wholesale and every payslip covering the date is flagged
// for recalculation in the same transaction.
func (s *TimeTrackingServiceImpl) AdjustTime(ctx context.Context, req timeentry.AdjustTimeRequest) (timeentry.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	adminID, _, err := claimsFromContext(ctx)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	if _, err := s.UserRepository.GetByID(ctx, req.UserID); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	clockIn := atClockTime(date, req.ClockIn)

	var clockOut *time.Time
	if req.ClockOut != nil {
		out := atClockTime(date, *req.ClockOut)
		// An overnight adjustment rolls the clock-out to the next day.
		if !out.After(clockIn) {
			out = out.AddDate(0, 0, 1)
		}
		clockOut = &out
	}

	var adjusted timeentry.TimeEntry
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.TimeEntryRepository.DeleteForUserDate(txCtx, req.UserID, date); err != nil {
			return err
		}

		adjusted, err = s.TimeEntryRepository.Create(txCtx, timeentry.TimeEntry{
			UserID:    req.UserID,
			ClockIn:   clockIn,
			ClockOut:  clockOut,
			Date:      date,
			WeekStart: timeentry.WeekStartOf(date),
		})
		if err != nil {
			return err
		}

		flagged, err := s.PayslipRepository.MarkNeedsRecalculation(txCtx, req.UserID, date)
		if err != nil {
			return err
		}

		_, err = s.payslipLogs.Append(txCtx, payslip.Log{
			AdminID:      adminID,
			Action:       payslip.LogActionTimeAdjusted,
			PeriodStart:  date,
			PeriodEnd:    date,
			PayslipCount: flagged,
			UserIDs:      []string{req.UserID},
		})
		return err
	})
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	return timeentry.ToResponse(adjusted), nil
}

func atClockTime(date time.Time, clock string) time.Time {
	t, _ := time.Parse("15:04", clock)
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// Progress implements timeentry.TimeTrackingService.
func (s *TimeTrackingServiceImpl) Progress(ctx context.Context) (timeentry.ProgressResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return timeentry.ProgressResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return timeentry.ProgressResponse{}, err
	}

	worked, daysWorked, err := s.TimeEntryRepository.SumClosedHours(ctx, userID)
	if err != nil {
		return timeentry.ProgressResponse{}, err
	}

	resp := timeentry.ProgressResponse{
		RequiredHours:   userData.RequiredHours,
		WorkedHours:     worked,
		TotalDaysWorked: daysWorked,
	}
	if userData.RequiredHours > 0 {
		resp.RemainingHours = userData.RequiredHours - worked
		if resp.RemainingHours < 0 {
			resp.RemainingHours = 0
		}
		resp.ProgressPercentage = worked / userData.RequiredHours * 100
		if resp.ProgressPercentage > 100 {
			resp.ProgressPercentage = 100
		}
		resp.IsCompleted = worked >= userData.RequiredHours
	}

	return resp, nil
}

// TimeLogs implements timeentry.TimeTrackingService.
func (s *TimeTrackingServiceImpl) TimeLogs(ctx context.Context, weekStart string) ([]timeentry.TimeEntryResponse, error) {
	var week *time.Time
	if weekStart != "" {
		parsed, err := time.Parse("2006-01-02", weekStart)
		if err != nil {
			return nil, timeentry.ErrInvalidWeekStart
		}
		week = &parsed
	}

	entries, err := s.TimeEntryRepository.ListLogs(ctx, week)
	if err != nil {
		return nil, err
	}

	responses := make([]timeentry.TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, timeentry.ToResponse(e))
	}
	return responses, nil
}

// ActiveUsers implements timeentry.TimeTrackingService.
func (s *TimeTrackingServiceImpl) ActiveUsers(ctx context.Context) ([]timeentry.ActiveUserResponse, error) {
	entries, err := s.TimeEntryRepository.ListActiveSessions(ctx, timeentry.DateOf(time.Now()))
	if err != nil {
		return nil, err
	}

	responses := make([]timeentry.ActiveUserResponse, 0, len(entries))
	for _, e := range entries {
		resp := timeentry.ActiveUserResponse{
			UserID:  e.UserID,
			ClockIn: e.ClockIn,
		}
		if e.Username != nil {
			resp.Username = *e.Username
		}
		if e.Department != nil {
			resp.Department = *e.Department
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
