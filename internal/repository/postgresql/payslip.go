package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workshift-ph/timeclock-backend/internal/domain/payslip"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/database"
)

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

const payslipColumns = `id, user_id, week_start, week_end, total_hours, overtime_hours,
	   undertime_hours, base_salary, overtime_pay, undertime_deduction,
	   staff_house_deduction, total_salary, clock_in_time, clock_out_time,
	   status, created_at, updated_at`

func scanPayslip(row pgx.Row) (payslip.Payslip, error) {
	var p payslip.Payslip
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.WeekStart,
		&p.WeekEnd,
		&p.TotalHours,
		&p.OvertimeHours,
		&p.UndertimeHours,
		&p.BaseSalary,
		&p.OvertimePay,
		&p.UndertimeDeduction,
		&p.StaffHouseDeduction,
		&p.TotalSalary,
		&p.ClockInTime,
		&p.ClockOutTime,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// Create implements payslip.PayslipRepository. The unique key on
// (user_id, week_start, week_end) turns concurrent duplicate inserts
// into a no-op instead of an error.
func (r *payslipRepositoryImpl) Create(ctx context.Context, p payslip.Payslip) (payslip.Payslip, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			user_id, week_start, week_end, total_hours, overtime_hours,
			undertime_hours, base_salary, overtime_pay, undertime_deduction,
			staff_house_deduction, total_salary, clock_in_time, clock_out_time, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id, week_start, week_end) DO NOTHING
		RETURNING ` + payslipColumns

	created, err := scanPayslip(q.QueryRow(ctx, query,
		p.UserID,
		p.WeekStart,
		p.WeekEnd,
		p.TotalHours,
		p.OvertimeHours,
		p.UndertimeHours,
		p.BaseSalary,
		p.OvertimePay,
		p.UndertimeDeduction,
		p.StaffHouseDeduction,
		p.TotalSalary,
		p.ClockInTime,
		p.ClockOutTime,
		p.Status,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.Payslip{}, false, nil
		}
		return payslip.Payslip{}, false, fmt.Errorf("failed to create payslip: %w", err)
	}

	return created, true, nil
}

// GetByID implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) GetByID(ctx context.Context, id string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE id = $1`

	found, err := scanPayslip(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return found, nil
}

// ListForReport implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) ListForReport(ctx context.Context, start, end time.Time) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.user_id, p.week_start, p.week_end, p.total_hours, p.overtime_hours,
			   p.undertime_hours, p.base_salary, p.overtime_pay, p.undertime_deduction,
			   p.staff_house_deduction, p.total_salary, p.clock_in_time, p.clock_out_time,
			   p.status, p.created_at, p.updated_at,
			   u.username, u.department
		FROM payslips p
		JOIN users u ON u.id = p.user_id
		WHERE p.week_start >= $1 AND p.week_start <= $2
		ORDER BY u.username ASC, p.week_start ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips for report: %w", err)
	}
	defer rows.Close()

	return collectJoinedPayslips(rows)
}

func collectJoinedPayslips(rows pgx.Rows) ([]payslip.Payslip, error) {
	var payslips []payslip.Payslip
	for rows.Next() {
		var p payslip.Payslip
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.WeekStart,
			&p.WeekEnd,
			&p.TotalHours,
			&p.OvertimeHours,
			&p.UndertimeHours,
			&p.BaseSalary,
			&p.OvertimePay,
			&p.UndertimeDeduction,
			&p.StaffHouseDeduction,
			&p.TotalSalary,
			&p.ClockInTime,
			&p.ClockOutTime,
			&p.Status,
			&p.CreatedAt,
			&p.UpdatedAt,
			&p.Username,
			&p.Department,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payslips, nil
}

// ListReleasedForUser implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) ListReleasedForUser(ctx context.Context, userID string, hq payslip.HistoryQuery) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips
		WHERE user_id = $1
		  AND status = 'released'
		  AND ($2::date IS NULL OR week_start >= $2)
		  AND ($3::date IS NULL OR week_start <= $3)
		  AND ($4::date IS NULL OR (week_start <= $4 AND week_end >= $4))
		ORDER BY week_start DESC
	`

	rows, err := q.Query(ctx, query, userID,
		nullableDate(hq.WeekStart),
		nullableDate(hq.WeekEnd),
		nullableDate(hq.SpecificDay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslip history: %w", err)
	}
	defer rows.Close()

	var payslips []payslip.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payslips, nil
}

func nullableDate(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Update implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) Update(ctx context.Context, p payslip.Payslip) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET total_hours = $2,
			overtime_hours = $3,
			undertime_hours = $4,
			base_salary = $5,
			overtime_pay = $6,
			undertime_deduction = $7,
			staff_house_deduction = $8,
			total_salary = $9,
			clock_in_time = $10,
			clock_out_time = $11,
			status = $12,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		p.ID,
		p.TotalHours,
		p.OvertimeHours,
		p.UndertimeHours,
		p.BaseSalary,
		p.OvertimePay,
		p.UndertimeDeduction,
		p.StaffHouseDeduction,
		p.TotalSalary,
		p.ClockInTime,
		p.ClockOutTime,
		p.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update payslip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotFound
	}

	return nil
}

// Release implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) Release(ctx context.Context, periodStart, periodEnd *time.Time, userIDs []string) (int, []string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET status = 'released', updated_at = NOW()
		WHERE status = 'pending'
		  AND ($1::date IS NULL OR week_start >= $1)
		  AND ($2::date IS NULL OR week_start <= $2)
		  AND (cardinality($3::uuid[]) = 0 OR user_id = ANY($3))
		RETURNING user_id
	`

	if userIDs == nil {
		userIDs = []string{}
	}

	rows, err := q.Query(ctx, query, periodStart, periodEnd, userIDs)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to release payslips: %w", err)
	}
	defer rows.Close()

	var affected []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, nil, fmt.Errorf("failed to scan released user id: %w", err)
		}
		affected = append(affected, id)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}

	return len(affected), affected, nil
}

// MarkNeedsRecalculation implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) MarkNeedsRecalculation(ctx context.Context, userID string, date time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET status = 'needs_recalculation', updated_at = NOW()
		WHERE user_id = $1
		  AND week_start <= $2 AND week_end >= $2
		  AND status IN ('pending', 'released')
	`

	tag, err := q.Exec(ctx, query, userID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to flag payslips for recalculation: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// ListNeedingRecalculation implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) ListNeedingRecalculation(ctx context.Context) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips
		WHERE status = 'needs_recalculation'
		ORDER BY week_start ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips needing recalculation: %w", err)
	}
	defer rows.Close()

	var payslips []payslip.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payslips, nil
}
