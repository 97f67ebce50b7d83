package timeentry

import (
	"time"

	"github.com/workshift-ph/timeclock-backend/internal/pkg/validator"
)

type ClockOutRequest struct {
	OvertimeNote *string `json:"overtime_note,omitempty"`
}

type OvertimeRequestRequest struct {
	Date string `json:"date"`
	Note string `json:"note"`
}

func (r *OvertimeRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Note) {
		errs = append(errs, validator.ValidationError{Field: "note", Message: "note is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveOvertimeRequest struct {
	Approved bool `json:"approved"`
}

// AdjustTimeRequest replaces a user's time entry for one date with
// admin-supplied wall-clock times.
type AdjustTimeRequest struct {
	UserID   string
	Date     string  `json:"date"`
	ClockIn  string  `json:"clock_in"`            // HH:MM
	ClockOut *string `json:"clock_out,omitempty"` // HH:MM, empty leaves the session open
}

func (r *AdjustTimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "must be a valid UUID"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if !validator.IsValidClockTime(r.ClockIn) {
		errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "clock_in must be HH:MM"})
	}
	if r.ClockOut != nil && !validator.IsValidClockTime(*r.ClockOut) {
		errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "clock_out must be HH:MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TimeEntryResponse struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	ClockIn           time.Time  `json:"clock_in"`
	ClockOut          *time.Time `json:"clock_out,omitempty"`
	Date              string     `json:"date"`
	WeekStart         string     `json:"week_start"`
	OvertimeRequested bool       `json:"overtime_requested"`
	OvertimeApproved  *bool      `json:"overtime_approved,omitempty"`
	OvertimeNote      *string    `json:"overtime_note,omitempty"`
	Username          *string    `json:"username,omitempty"`
	Department        *string    `json:"department,omitempty"`
}

func ToResponse(e TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:                e.ID,
		UserID:            e.UserID,
		ClockIn:           e.ClockIn,
		ClockOut:          e.ClockOut,
		Date:              e.Date.Format("2006-01-02"),
		WeekStart:         e.WeekStart.Format("2006-01-02"),
		OvertimeRequested: e.OvertimeRequested,
		OvertimeApproved:  e.OvertimeApproved,
		OvertimeNote:      e.OvertimeNote,
		Username:          e.Username,
		Department:        e.Department,
	}
}

// ProgressResponse reports worked hours against the user's goal.
type ProgressResponse struct {
	RequiredHours      float64 `json:"required_hours"`
	WorkedHours        float64 `json:"worked_hours"`
	RemainingHours     float64 `json:"remaining_hours"`
	ProgressPercentage float64 `json:"progress_percentage"`
	IsCompleted        bool    `json:"is_completed"`
	TotalDaysWorked    int     `json:"total_days_worked"`
}

type ActiveUserResponse struct {
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Department string    `json:"department"`
	ClockIn    time.Time `json:"clock_in"`
}
