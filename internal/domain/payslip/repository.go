package payslip

import (
	"context"
	"time"
)

type PayslipRepository interface {
	// Create inserts a payslip. The (user_id, week_start, week_end) key
	// is protected by a unique constraint; when a matching row already
	// exists nothing is inserted and created is false.
	Create(ctx context.Context, p Payslip) (created Payslip, inserted bool, err error)

	// GetByID retrieves a payslip by ID
	GetByID(ctx context.Context, id string) (Payslip, error)

	// ListForReport returns payslips joined with username/department
	// whose week_start falls between the two dates inclusive.
	ListForReport(ctx context.Context, start, end time.Time) ([]Payslip, error)

	// ListReleasedForUser returns an employee's released payslips, newest
	// first. Zero-value times widen the filter to the whole year.
	ListReleasedForUser(ctx context.Context, userID string, q HistoryQuery) ([]Payslip, error)

	// Update overwrites the computed fields of a payslip.
	Update(ctx context.Context, p Payslip) error

	// Release transitions pending payslips in scope to released and
	// returns the affected user IDs.
	Release(ctx context.Context, periodStart, periodEnd *time.Time, userIDs []string) (count int, affectedUserIDs []string, err error)

	// MarkNeedsRecalculation flags every payslip of the user whose
	// window covers the date, returning how many were flagged.
	MarkNeedsRecalculation(ctx context.Context, userID string, date time.Time) (int, error)

	// ListNeedingRecalculation returns payslips flagged for recalculation.
	ListNeedingRecalculation(ctx context.Context) ([]Payslip, error)
}

type LogRepository interface {
	// Append writes an audit row.
	Append(ctx context.Context, log Log) (Log, error)

	// List returns the most recent audit rows with admin usernames.
	List(ctx context.Context, limit int) ([]Log, error)

	// Delete removes an audit row.
	Delete(ctx context.Context, id string) error
}
