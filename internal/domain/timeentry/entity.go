package timeentry

import "time"

type TimeEntry struct {
	ID                string
	UserID            string
	ClockIn           time.Time
	ClockOut          *time.Time
	Date              time.Time // calendar day of ClockIn
	WeekStart         time.Time // Sunday of the ClockIn week
	OvertimeRequested bool
	// OvertimeApproved is nil while the request is pending.
	OvertimeApproved         *bool
	OvertimeNote             *string
	OvertimeApprovedBy       *string
	OvertimeNotificationSent bool
	CreatedAt                time.Time
	UpdatedAt                time.Time

	// Joined fields
	Username   *string
	Department *string
}

// IsOpen reports whether the entry is a running session.
func (e *TimeEntry) IsOpen() bool {
	return e.ClockOut == nil
}

// OvertimeEligible reports whether overtime pay may accrue on this entry.
func (e *TimeEntry) OvertimeEligible() bool {
	return e.OvertimeRequested && e.OvertimeApproved != nil && *e.OvertimeApproved
}

// WeekStartOf returns the Sunday starting the week containing t.
func WeekStartOf(t time.Time) time.Time {
	day := t.Truncate(0)
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
