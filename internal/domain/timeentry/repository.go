package timeentry

import (
	"context"
	"time"
)

type TimeEntryRepository interface {
	// Create creates a new time entry
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	// GetByID retrieves an entry by ID
	GetByID(ctx context.Context, id string) (TimeEntry, error)

	// GetOpenSession returns the user's entry with no clock_out for the
	// given date, or nil when none exists.
	GetOpenSession(ctx context.Context, userID string, date time.Time) (*TimeEntry, error)

	// GetLatestForDate returns the user's most recent entry for a date,
	// or nil when the user has none.
	GetLatestForDate(ctx context.Context, userID string, date time.Time) (*TimeEntry, error)

	// HasEntryForDate reports whether the user has any entry on the date.
	HasEntryForDate(ctx context.Context, userID string, date time.Time) (bool, error)

	// ListForUserDate returns a user's entries on a date ordered by clock_in.
	ListForUserDate(ctx context.Context, userID string, date time.Time) ([]TimeEntry, error)

	// ListForUserRange returns a user's entries between two dates inclusive.
	ListForUserRange(ctx context.Context, userID string, start, end time.Time) ([]TimeEntry, error)

	// SetClockOut closes an entry.
	SetClockOut(ctx context.Context, id string, clockOut time.Time, overtimeNote *string) error

	// MarkOvertimeRequested flags an entry as requesting overtime and
	// resets any previous decision.
	MarkOvertimeRequested(ctx context.Context, id string, note string) error

	// DecideOvertime records an approval decision.
	DecideOvertime(ctx context.Context, id string, approved bool, adminID string) error

	// ListPendingOvertime returns requested-but-undecided entries with
	// usernames, newest first.
	ListPendingOvertime(ctx context.Context) ([]TimeEntry, error)

	// ListUnnotifiedDecisions returns a user's decided entries that have
	// not yet been surfaced, marking them as notified.
	ListUnnotifiedDecisions(ctx context.Context, userID string) ([]TimeEntry, error)

	// DeleteForUserDate removes all of a user's entries on a date.
	DeleteForUserDate(ctx context.Context, userID string, date time.Time) error

	// SumClosedHours totals the raw clock_in→clock_out duration of all of
	// a user's closed entries, in hours, plus the distinct days worked.
	SumClosedHours(ctx context.Context, userID string) (hours float64, daysWorked int, err error)

	// ListLogs returns all entries joined with usernames, optionally
	// filtered by week_start.
	ListLogs(ctx context.Context, weekStart *time.Time) ([]TimeEntry, error)

	// ListActiveSessions returns currently clocked-in users for a date.
	ListActiveSessions(ctx context.Context, date time.Time) ([]TimeEntry, error)

	// ListUserIDsWithClosedEntries returns IDs of active users having at
	// least one closed entry on any of the dates, optionally restricted
	// to a user ID subset.
	ListUserIDsWithClosedEntries(ctx context.Context, dates []time.Time, userIDs []string) ([]string, error)
}
