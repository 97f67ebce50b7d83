package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/workshift-ph/timeclock-backend/internal/domain/payslip"
)

// PayrollJobs contains payroll-related cron jobs
type PayrollJobs struct {
	payrollService payslip.PayrollService
	interval       time.Duration
}

// NewPayrollJobs creates payroll cron jobs. The interval string comes
// from configuration; a bad value falls back to 15 minutes.
func NewPayrollJobs(payrollService payslip.PayrollService, interval string) *PayrollJobs {
	d, err := time.ParseDuration(interval)
	if err != nil || d <= 0 {
		d = 15 * time.Minute
	}
	return &PayrollJobs{
		payrollService: payrollService,
		interval:       d,
	}
}

// RegisterJobs registers all payroll-related cron jobs
func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	// Sweep payslips flagged by time adjustments back to pending
	scheduler.AddJob(
		"recalculate_flagged_payslips",
		j.interval,
		j.RecalculateFlaggedPayslips,
	)
}

// RecalculateFlaggedPayslips recomputes payslips whose time entries
// changed after generation
func (j *PayrollJobs) RecalculateFlaggedPayslips(ctx context.Context) error {
	result, err := j.payrollService.Recalculate(ctx)
	if err != nil {
		return err
	}
	if result.RecalculatedCount > 0 {
		slog.Info("recalculated flagged payslips", "count", result.RecalculatedCount)
	}
	return nil
}
