package timeentry

import "context"

type TimeTrackingService interface {
	// ClockIn opens a session for the caller at the current time.
	ClockIn(ctx context.Context) (TimeEntryResponse, error)

	// ClockOut closes the caller's open session.
	ClockOut(ctx context.Context, req ClockOutRequest) (TimeEntryResponse, error)

	// TodayEntry returns the caller's latest entry for today, or nil.
	TodayEntry(ctx context.Context) (*TimeEntryResponse, error)

	// RequestOvertime flags the caller's entry on the date for
	// overtime, creating an evening entry when the day is already
	// fully closed.
	RequestOvertime(ctx context.Context, req OvertimeRequestRequest) (TimeEntryResponse, error)

	// ListOvertimeRequests returns undecided overtime requests.
	// Admin only.
	ListOvertimeRequests(ctx context.Context) ([]TimeEntryResponse, error)

	// ApproveOvertime records an overtime decision. Admin only.
	ApproveOvertime(ctx context.Context, entryID string, req ApproveOvertimeRequest) (TimeEntryResponse, error)

	// Notifications drains the caller's undelivered overtime decisions.
	Notifications(ctx context.Context) ([]TimeEntryResponse, error)

	// AdjustTime replaces a user's entries on a date and flags the
	// covering payslips for recalculation. Admin only.
	AdjustTime(ctx context.Context, req AdjustTimeRequest) (TimeEntryResponse, error)

	// Progress reports the caller's cumulative hours against their goal.
	Progress(ctx context.Context) (ProgressResponse, error)

	// TimeLogs returns all entries, optionally for one week. Admin only.
	TimeLogs(ctx context.Context, weekStart string) ([]TimeEntryResponse, error)

	// ActiveUsers returns currently clocked-in users. Admin only.
	ActiveUsers(ctx context.Context) ([]ActiveUserResponse, error)
}
