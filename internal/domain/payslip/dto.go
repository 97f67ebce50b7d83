package payslip

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/validator"
)

// GenerateRequest selects the generation mode: selected dates take
// precedence, then an explicit range, then a week.
type GenerateRequest struct {
	WeekStart     string   `json:"weekStart,omitempty"`
	StartDate     string   `json:"startDate,omitempty"`
	EndDate       string   `json:"endDate,omitempty"`
	SelectedDates []string `json:"selectedDates,omitempty"`
	UserIDs       []string `json:"userIds,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	hasRange := r.StartDate != "" || r.EndDate != ""
	if len(r.SelectedDates) == 0 && !hasRange && r.WeekStart == "" {
		errs = append(errs, validator.ValidationError{Field: "selector", Message: "either weekStart, startDate/endDate, or selectedDates is required"})
	}
	if hasRange && (r.StartDate == "" || r.EndDate == "") {
		errs = append(errs, validator.ValidationError{Field: "endDate", Message: "startDate and endDate must be supplied together"})
	}
	for _, field := range []struct{ name, value string }{
		{"weekStart", r.WeekStart},
		{"startDate", r.StartDate},
		{"endDate", r.EndDate},
	} {
		if field.value != "" {
			if _, ok := validator.IsValidDate(field.value); !ok {
				errs = append(errs, validator.ValidationError{Field: field.name, Message: "must be YYYY-MM-DD"})
			}
		}
	}
	for _, d := range r.SelectedDates {
		if _, ok := validator.IsValidDate(d); !ok {
			errs = append(errs, validator.ValidationError{Field: "selectedDates", Message: "dates must be YYYY-MM-DD"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReportQuery mirrors the generate selectors for report reads.
type ReportQuery struct {
	WeekStart     string
	StartDate     string
	EndDate       string
	SelectedDates []string
}

func (q *ReportQuery) Validate() error {
	hasRange := q.StartDate != "" && q.EndDate != ""
	if len(q.SelectedDates) == 0 && !hasRange && q.WeekStart == "" {
		return validator.ValidationErrors{{Field: "selector", Message: "either weekStart, startDate/endDate, or selectedDates is required"}}
	}
	return nil
}

// HistoryQuery filters an employee's own released payslips.
type HistoryQuery struct {
	WeekStart   string
	WeekEnd     string
	SpecificDay string
}

// UpdatePayslipRequest overwrites every computed field of a payslip.
// TotalSalary is intentionally absent: it is recomputed server-side.
type UpdatePayslipRequest struct {
	ID                  string
	ClockInTime         *time.Time      `json:"clock_in_time,omitempty"`
	ClockOutTime        *time.Time      `json:"clock_out_time,omitempty"`
	TotalHours          float64         `json:"total_hours"`
	OvertimeHours       float64         `json:"overtime_hours"`
	UndertimeHours      float64         `json:"undertime_hours"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	OvertimePay         decimal.Decimal `json:"overtime_pay"`
	UndertimeDeduction  decimal.Decimal `json:"undertime_deduction"`
	StaffHouseDeduction decimal.Decimal `json:"staff_house_deduction"`
}

func (r *UpdatePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "must be a valid UUID"})
	}
	if r.TotalHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "total_hours", Message: "must be non-negative"})
	}
	if r.OvertimeHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative"})
	}
	if r.UndertimeHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "undertime_hours", Message: "must be non-negative"})
	}
	for _, field := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"base_salary", r.BaseSalary},
		{"overtime_pay", r.OvertimePay},
		{"undertime_deduction", r.UndertimeDeduction},
		{"staff_house_deduction", r.StaffHouseDeduction},
	} {
		if field.value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field.name, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReleaseRequest struct {
	SelectedDates []string `json:"selectedDates,omitempty"`
	UserIDs       []string `json:"userIds,omitempty"`
}

type PayslipResponse struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"user_id"`
	Username            *string         `json:"username,omitempty"`
	Department          *string         `json:"department,omitempty"`
	WeekStart           string          `json:"week_start"`
	WeekEnd             string          `json:"week_end"`
	TotalHours          float64         `json:"total_hours"`
	OvertimeHours       float64         `json:"overtime_hours"`
	UndertimeHours      float64         `json:"undertime_hours"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	OvertimePay         decimal.Decimal `json:"overtime_pay"`
	UndertimeDeduction  decimal.Decimal `json:"undertime_deduction"`
	StaffHouseDeduction decimal.Decimal `json:"staff_house_deduction"`
	TotalSalary         decimal.Decimal `json:"total_salary"`
	ClockInTime         *time.Time      `json:"clock_in_time,omitempty"`
	ClockOutTime        *time.Time      `json:"clock_out_time,omitempty"`
	Status              string          `json:"status"`
}

func ToResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:                  p.ID,
		UserID:              p.UserID,
		Username:            p.Username,
		Department:          p.Department,
		WeekStart:           p.WeekStart.Format("2006-01-02"),
		WeekEnd:             p.WeekEnd.Format("2006-01-02"),
		TotalHours:          p.TotalHours,
		OvertimeHours:       p.OvertimeHours,
		UndertimeHours:      p.UndertimeHours,
		BaseSalary:          p.BaseSalary,
		OvertimePay:         p.OvertimePay,
		UndertimeDeduction:  p.UndertimeDeduction,
		StaffHouseDeduction: p.StaffHouseDeduction,
		TotalSalary:         p.TotalSalary,
		ClockInTime:         p.ClockInTime,
		ClockOutTime:        p.ClockOutTime,
		Status:              string(p.Status),
	}
}

type GenerateResponse struct {
	Created []PayslipResponse `json:"created"`
	// Skipped counts user-days that produced no new payslip, either
	// because one already covers the day or nothing was worked on it.
	Skipped int `json:"skipped"`
}

type ReleaseResponse struct {
	ReleasedCount int    `json:"released_count"`
	Message       string `json:"message"`
}

type RecalculateResponse struct {
	RecalculatedCount int    `json:"recalculated_count"`
	Message           string `json:"message"`
}

type LogResponse struct {
	ID            string    `json:"id"`
	AdminID       string    `json:"admin_id"`
	AdminUsername *string   `json:"admin_username,omitempty"`
	Action        string    `json:"action"`
	PeriodStart   string    `json:"period_start"`
	PeriodEnd     string    `json:"period_end"`
	PayslipCount  int       `json:"payslip_count"`
	UserIDs       []string  `json:"user_ids,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToLogResponse(l Log) LogResponse {
	return LogResponse{
		ID:            l.ID,
		AdminID:       l.AdminID,
		AdminUsername: l.AdminUsername,
		Action:        string(l.Action),
		PeriodStart:   l.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     l.PeriodEnd.Format("2006-01-02"),
		PayslipCount:  l.PayslipCount,
		UserIDs:       l.UserIDs,
		CreatedAt:     l.CreatedAt,
	}
}
