package postgresql

import (
	"context"
	"fmt"

	"github.com/workshift-ph/timeclock-backend/internal/domain/payslip"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/database"
)

type payslipLogRepositoryImpl struct {
	db *database.DB
}

func NewPayslipLogRepository(db *database.DB) payslip.LogRepository {
	return &payslipLogRepositoryImpl{db: db}
}

// Append implements payslip.LogRepository.
func (r *payslipLogRepositoryImpl) Append(ctx context.Context, log payslip.Log) (payslip.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslip_logs (admin_id, action, period_start, period_end, payslip_count, user_ids)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, admin_id, action, period_start, period_end, payslip_count, user_ids, created_at
	`

	if log.UserIDs == nil {
		log.UserIDs = []string{}
	}

	var created payslip.Log
	err := q.QueryRow(ctx, query,
		log.AdminID,
		log.Action,
		log.PeriodStart,
		log.PeriodEnd,
		log.PayslipCount,
		log.UserIDs,
	).Scan(
		&created.ID,
		&created.AdminID,
		&created.Action,
		&created.PeriodStart,
		&created.PeriodEnd,
		&created.PayslipCount,
		&created.UserIDs,
		&created.CreatedAt,
	)
	if err != nil {
		return payslip.Log{}, fmt.Errorf("failed to append payslip log: %w", err)
	}

	return created, nil
}

// List implements payslip.LogRepository.
func (r *payslipLogRepositoryImpl) List(ctx context.Context, limit int) ([]payslip.Log, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT l.id, l.admin_id, l.action, l.period_start, l.period_end,
			   l.payslip_count, l.user_ids, l.created_at, u.username
		FROM payslip_logs l
		JOIN users u ON u.id = l.admin_id
		ORDER BY l.created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslip logs: %w", err)
	}
	defer rows.Close()

	var logs []payslip.Log
	for rows.Next() {
		var l payslip.Log
		err := rows.Scan(
			&l.ID,
			&l.AdminID,
			&l.Action,
			&l.PeriodStart,
			&l.PeriodEnd,
			&l.PayslipCount,
			&l.UserIDs,
			&l.CreatedAt,
			&l.AdminUsername,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

// Delete implements payslip.LogRepository.
func (r *payslipLogRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payslip_logs WHERE id = $1`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete payslip log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrLogNotFound
	}

	return nil
}
