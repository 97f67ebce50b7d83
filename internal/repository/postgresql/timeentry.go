package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workshift-ph/timeclock-backend/internal/domain/timeentry"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/database"
)

type timeEntryRepositoryImpl struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timeentry.TimeEntryRepository {
	return &timeEntryRepositoryImpl{db: db}
}

const timeEntryColumns = `id, user_id, clock_in, clock_out, date, week_start,
	   overtime_requested, overtime_approved, overtime_note, overtime_approved_by,
	   overtime_notification_sent, created_at, updated_at`

func scanTimeEntry(row pgx.Row) (timeentry.TimeEntry, error) {
	var e timeentry.TimeEntry
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.ClockIn,
		&e.ClockOut,
		&e.Date,
		&e.WeekStart,
		&e.OvertimeRequested,
		&e.OvertimeApproved,
		&e.OvertimeNote,
		&e.OvertimeApprovedBy,
		&e.OvertimeNotificationSent,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// Create implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) Create(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	query := `
		INSERT INTO time_entries (
			id, user_id, clock_in, clock_out, date, week_start,
			overtime_requested, overtime_approved, overtime_note, overtime_approved_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + timeEntryColumns

	created, err := scanTimeEntry(q.QueryRow(ctx, query,
		entry.ID,
		entry.UserID,
		entry.ClockIn,
		entry.ClockOut,
		entry.Date,
		entry.WeekStart,
		entry.OvertimeRequested,
		entry.OvertimeApproved,
		entry.OvertimeNote,
		entry.OvertimeApprovedBy,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "idx_time_entries_open_session" {
			return timeentry.TimeEntry{}, timeentry.ErrAlreadyClockedIn
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return created, nil
}

// GetByID implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) GetByID(ctx context.Context, id string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = $1`

	found, err := scanTimeEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to get time entry: %w", err)
	}

	return found, nil
}

// GetOpenSession implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) GetOpenSession(ctx context.Context, userID string, date time.Time) (*timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE user_id = $1 AND date = $2 AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
	`

	found, err := scanTimeEntry(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &found, nil
}

// GetLatestForDate implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) GetLatestForDate(ctx context.Context, userID string, date time.Time) (*timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE user_id = $1 AND date = $2
		ORDER BY clock_in DESC
		LIMIT 1
	`

	found, err := scanTimeEntry(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest entry: %w", err)
	}

	return &found, nil
}

// HasEntryForDate implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) HasEntryForDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM time_entries WHERE user_id = $1 AND date = $2)`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check entry existence: %w", err)
	}
	return exists, nil
}

// ListForUserDate implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ListForUserDate(ctx context.Context, userID string, date time.Time) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE user_id = $1 AND date = $2
		ORDER BY clock_in ASC
	`

	rows, err := q.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for date: %w", err)
	}
	defer rows.Close()

	return collectTimeEntries(rows)
}

// ListForUserRange implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ListForUserRange(ctx context.Context, userID string, start, end time.Time) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY clock_in ASC
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for range: %w", err)
	}
	defer rows.Close()

	return collectTimeEntries(rows)
}

func collectTimeEntries(rows pgx.Rows) ([]timeentry.TimeEntry, error) {
	var entries []timeentry.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// SetClockOut implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) SetClockOut(ctx context.Context, id string, clockOut time.Time, overtimeNote *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET clock_out = $2,
			overtime_note = COALESCE($3, overtime_note),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, clockOut, overtimeNote)
	if err != nil {
		return fmt.Errorf("failed to set clock out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeentry.ErrEntryNotFound
	}

	return nil
}

// MarkOvertimeRequested implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) MarkOvertimeRequested(ctx context.Context, id string, note string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET overtime_requested = TRUE,
			overtime_approved = NULL,
			overtime_note = $2,
			overtime_approved_by = NULL,
			overtime_notification_sent = FALSE,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, note)
	if err != nil {
		return fmt.Errorf("failed to mark overtime requested: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeentry.ErrEntryNotFound
	}

	return nil
}

// DecideOvertime implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) DecideOvertime(ctx context.Context, id string, approved bool, adminID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET overtime_approved = $2,
			overtime_approved_by = $3,
			overtime_notification_sent = FALSE,
			updated_at = NOW()
		WHERE id = $1 AND overtime_requested = TRUE
	`

	tag, err := q.Exec(ctx, query, id, approved, adminID)
	if err != nil {
		return fmt.Errorf("failed to decide overtime: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeentry.ErrEntryNotFound
	}

	return nil
}

// ListPendingOvertime implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ListPendingOvertime(ctx context.Context) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.user_id, t.clock_in, t.clock_out, t.date, t.week_start,
			   t.overtime_requested, t.overtime_approved, t.overtime_note, t.overtime_approved_by,
			   t.overtime_notification_sent, t.created_at, t.updated_at,
			   u.username, u.department
		FROM time_entries t
		JOIN users u ON u.id = t.user_id
		WHERE t.overtime_requested = TRUE AND t.overtime_approved IS NULL
		ORDER BY t.date DESC, t.clock_in DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending overtime: %w", err)
	}
	defer rows.Close()

	return collectJoinedTimeEntries(rows)
}

func collectJoinedTimeEntries(rows pgx.Rows) ([]timeentry.TimeEntry, error) {
	var entries []timeentry.TimeEntry
	for rows.Next() {
		var e timeentry.TimeEntry
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.ClockIn,
			&e.ClockOut,
			&e.Date,
			&e.WeekStart,
			&e.OvertimeRequested,
			&e.OvertimeApproved,
			&e.OvertimeNote,
			&e.OvertimeApprovedBy,
			&e.OvertimeNotificationSent,
			&e.CreatedAt,
			&e.UpdatedAt,
			&e.Username,
			&e.Department,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListUnnotifiedDecisions implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ListUnnotifiedDecisions(ctx context.Context, userID string) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET overtime_notification_sent = TRUE, updated_at = NOW()
		WHERE user_id = $1
		  AND overtime_requested = TRUE
		  AND overtime_approved IS NOT NULL
		  AND overtime_notification_sent = FALSE
		RETURNING ` + timeEntryColumns

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime decisions: %w", err)
	}
	defer rows.Close()

	return collectTimeEntries(rows)
}

// DeleteForUserDate implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) DeleteForUserDate(ctx context.Context, userID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM time_entries WHERE user_id = $1 AND date = $2`

	if _, err := q.Exec(ctx, query, userID, date); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}
	return nil
}

// SumClosedHours implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) SumClosedHours(ctx context.Context, userID string) (float64, int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(EXTRACT(EPOCH FROM (clock_out - clock_in)) / 3600.0), 0),
			   COUNT(DISTINCT date)
		FROM time_entries
		WHERE user_id = $1 AND clock_out IS NOT NULL
	`

	var hours float64
	var daysWorked int
	if err := q.QueryRow(ctx, query, userID).Scan(&hours, &daysWorked); err != nil {
		return 0, 0, fmt.Errorf("failed to sum worked hours: %w", err)
	}

	return hours, daysWorked, nil
}

// ListLogs implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ListLogs(ctx context.Context, weekStart *time.Time) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.user_id, t.clock_in, t.clock_out, t.date, t.week_start,
			   t.overtime_requested, t.overtime_approved, t.overtime_note, t.overtime_approved_by,
			   t.overtime_notification_sent, t.created_at, t.updated_at,
			   u.username, u.department
		FROM time_entries t
		JOIN users u ON u.id = t.user_id
		WHERE $1::date IS NULL OR t.week_start = $1
		ORDER BY t.clock_in DESC
	`

	rows, err := q.Query(ctx, query, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list time logs: %w", err)
	}
	defer rows.Close()

	return collectJoinedTimeEntries(rows)
}

// ListActiveSessions implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ListActiveSessions(ctx context.Context, date time.Time) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.user_id, t.clock_in, t.clock_out, t.date, t.week_start,
			   t.overtime_requested, t.overtime_approved, t.overtime_note, t.overtime_approved_by,
			   t.overtime_notification_sent, t.created_at, t.updated_at,
			   u.username, u.department
		FROM time_entries t
		JOIN users u ON u.id = t.user_id
		WHERE t.date = $1 AND t.clock_out IS NULL AND u.active = TRUE
		ORDER BY t.clock_in ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}
	defer rows.Close()

	return collectJoinedTimeEntries(rows)
}

// ListUserIDsWithClosedEntries implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ListUserIDsWithClosedEntries(ctx context.Context, dates []time.Time, userIDs []string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT t.user_id
		FROM time_entries t
		JOIN users u ON u.id = t.user_id
		WHERE t.clock_out IS NOT NULL
		  AND u.active = TRUE
		  AND t.date = ANY($1)
		  AND (cardinality($2::uuid[]) = 0 OR t.user_id = ANY($2))
	`

	if userIDs == nil {
		userIDs = []string{}
	}

	rows, err := q.Query(ctx, query, dates, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with entries: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
