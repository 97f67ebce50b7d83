package timeentry

import "errors"

var (
	ErrAlreadyClockedIn = errors.New("already clocked in today")
	ErrNoActiveSession  = errors.New("no active clock in found")
	ErrEntryNotFound    = errors.New("time entry not found")
	ErrInvalidWeekStart = errors.New("week_start must be YYYY-MM-DD")
)
