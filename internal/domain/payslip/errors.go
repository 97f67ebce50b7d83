package payslip

import "errors"

var (
	ErrPayslipNotFound   = errors.New("payslip not found")
	ErrLogNotFound       = errors.New("payslip log not found")
	ErrInvalidTransition = errors.New("invalid payslip status transition")
	ErrSelectorRequired  = errors.New("either weekStart, startDate/endDate, or selectedDates is required")
	ErrNoEntriesInWindow = errors.New("no closed time entries in the payslip window")
)
