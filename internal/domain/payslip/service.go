package payslip

import "context"

type PayrollService interface {
	// Generate computes and stores payslips for the selected window.
	// Admin only.
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)

	// Report returns payslips for the selected window with user details.
	// Admin only.
	Report(ctx context.Context, q ReportQuery) ([]PayslipResponse, error)

	// History returns the caller's released payslips.
	History(ctx context.Context, q HistoryQuery) ([]PayslipResponse, error)

	// Update overwrites a payslip's computed fields, recomputing the
	// total server-side. Admin only.
	Update(ctx context.Context, req UpdatePayslipRequest) (PayslipResponse, error)

	// Release transitions pending payslips to released. Admin only.
	Release(ctx context.Context, req ReleaseRequest) (ReleaseResponse, error)

	// Recalculate recomputes every payslip flagged after time
	// adjustments and returns them to pending.
	Recalculate(ctx context.Context) (RecalculateResponse, error)

	// Logs returns the recent payroll audit trail. Admin only.
	Logs(ctx context.Context) ([]LogResponse, error)

	// DeleteLog removes an audit row. Admin only.
	DeleteLog(ctx context.Context, id string) error
}
