package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusPending  Status = "pending"
	StatusReleased Status = "released"
	// StatusNeedsRecalculation marks payslips whose underlying time
	// entries changed after generation.
	StatusNeedsRecalculation Status = "needs_recalculation"
)

// CanTransitionTo enforces the payslip lifecycle: pending→released is
// one-way; edits to covered time entries push pending or released slips
// to needs_recalculation; recalculation returns them to pending.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusReleased || next == StatusNeedsRecalculation
	case StatusReleased:
		return next == StatusNeedsRecalculation
	case StatusNeedsRecalculation:
		return next == StatusPending
	}
	return false
}

type Payslip struct {
	ID        string
	UserID    string
	WeekStart time.Time
	WeekEnd   time.Time

	TotalHours     float64
	OvertimeHours  float64
	UndertimeHours float64

	BaseSalary          decimal.Decimal
	OvertimePay         decimal.Decimal
	UndertimeDeduction  decimal.Decimal
	StaffHouseDeduction decimal.Decimal
	TotalSalary         decimal.Decimal

	ClockInTime  *time.Time
	ClockOutTime *time.Time

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	Username   *string
	Department *string
}

// Log action enum
type LogAction string

const (
	LogActionGenerated    LogAction = "generated"
	LogActionReleased     LogAction = "released"
	LogActionEdited       LogAction = "edited"
	LogActionTimeAdjusted LogAction = "time_adjusted"
)

// Log is an audit row written for each admin payroll action.
type Log struct {
	ID           string
	AdminID      string
	Action       LogAction
	PeriodStart  time.Time
	PeriodEnd    time.Time
	PayslipCount int
	UserIDs      []string
	CreatedAt    time.Time

	// Joined fields
	AdminUsername *string
}
