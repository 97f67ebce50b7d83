package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workshift-ph/timeclock-backend/internal/domain/timeentry"
)

// Pay rules. The shift runs 07:00 to 15:30 with a weekly base pay cap
// of 200 pesos over 8.5 paid hours per day.
const (
	ShiftStartHour   = 7
	ShiftStartMinute = 0
	ShiftEndHour     = 15
	ShiftEndMinute   = 30

	MaxDailyHours = 8.5

	staffHouseWorkDays = 5
)

var (
	// WeeklyBaseCap caps base salary regardless of hours worked.
	WeeklyBaseCap = decimal.NewFromInt(200)

	// HourlyRate is the weekly cap spread over one full shift.
	HourlyRate = WeeklyBaseCap.Div(decimal.NewFromFloat(MaxDailyHours))

	// OvertimeRate is the flat per-hour rate for approved overtime.
	OvertimeRate = decimal.NewFromInt(35)

	// StaffHouseWeeklyRate is the lodging deduction for a full week.
	StaffHouseWeeklyRate = decimal.NewFromInt(250)
)

// Options carries the per-user inputs that affect a payroll window.
type Options struct {
	// StaffHouse enables the weekly lodging deduction, prorated by
	// days with recorded work.
	StaffHouse bool

	// BreaktimeEnabled mirrors the system-wide break toggle. It is
	// carried for clients and reporting and does not change pay.
	BreaktimeEnabled bool
}

// Breakdown is the result of running the pay rules over a set of
// time entries. Money fields are rounded to two decimal places.
type Breakdown struct {
	TotalHours     float64
	OvertimeHours  float64
	UndertimeHours float64
	DaysWorked     int

	BaseSalary          decimal.Decimal
	OvertimePay         decimal.Decimal
	UndertimeDeduction  decimal.Decimal
	StaffHouseDeduction decimal.Decimal
	TotalSalary         decimal.Decimal

	FirstClockIn *time.Time
	LastClockOut *time.Time
}

// shiftStartOn returns 07:00 on the entry's calendar day, in the
// entry's location.
func shiftStartOn(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), ShiftStartHour, ShiftStartMinute, 0, 0, t.Location())
}

// shiftEndOn returns 15:30 on the entry's calendar day.
func shiftEndOn(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), ShiftEndHour, ShiftEndMinute, 0, 0, t.Location())
}

// Calculate runs the pay rules over the entries. Open sessions and
// entries whose effective worked time is not positive contribute
// nothing, including their lateness.
func Calculate(entries []timeentry.TimeEntry, opts Options) Breakdown {
	var (
		totalHours     float64
		overtimeHours  float64
		undertimeHours float64
		firstClockIn   *time.Time
		lastClockOut   *time.Time
	)
	daysWorked := map[string]struct{}{}

	for i := range entries {
		e := &entries[i]
		if e.IsOpen() {
			continue
		}

		shiftStart := shiftStartOn(e.ClockIn)

		// Arriving before 07:00 earns nothing extra; the clock
		// effectively starts at shift start.
		effectiveIn := e.ClockIn
		if effectiveIn.Before(shiftStart) {
			effectiveIn = shiftStart
		}

		worked := e.ClockOut.Sub(effectiveIn).Hours()
		if worked <= 0 {
			continue
		}

		if worked > MaxDailyHours {
			worked = MaxDailyHours
		}
		totalHours += worked
		daysWorked[e.ClockIn.Format("2006-01-02")] = struct{}{}

		if e.ClockIn.After(shiftStart) {
			undertimeHours += e.ClockIn.Sub(shiftStart).Hours()
		}

		shiftEnd := shiftEndOn(e.ClockIn)
		if e.OvertimeEligible() && e.ClockOut.After(shiftEnd) {
			overtimeHours += e.ClockOut.Sub(shiftEnd).Hours()
		}

		if firstClockIn == nil || e.ClockIn.Before(*firstClockIn) {
			in := e.ClockIn
			firstClockIn = &in
		}
		if lastClockOut == nil || e.ClockOut.After(*lastClockOut) {
			out := *e.ClockOut
			lastClockOut = &out
		}
	}

	base := HourlyRate.Mul(decimal.NewFromFloat(totalHours))
	if base.GreaterThan(WeeklyBaseCap) {
		base = WeeklyBaseCap
	}
	base = base.Round(2)

	overtimePay := OvertimeRate.Mul(decimal.NewFromFloat(overtimeHours)).Round(2)
	undertimeDeduction := HourlyRate.Mul(decimal.NewFromFloat(undertimeHours)).Round(2)

	staffHouse := decimal.Zero
	if opts.StaffHouse && len(daysWorked) > 0 {
		days := len(daysWorked)
		if days > staffHouseWorkDays {
			days = staffHouseWorkDays
		}
		staffHouse = StaffHouseWeeklyRate.
			Div(decimal.NewFromInt(staffHouseWorkDays)).
			Mul(decimal.NewFromInt(int64(days))).
			Round(2)
	}

	// Total may go negative when deductions exceed earnings.
	total := base.Add(overtimePay).Sub(undertimeDeduction).Sub(staffHouse).Round(2)

	return Breakdown{
		TotalHours:          totalHours,
		OvertimeHours:       overtimeHours,
		UndertimeHours:      undertimeHours,
		DaysWorked:          len(daysWorked),
		BaseSalary:          base,
		OvertimePay:         overtimePay,
		UndertimeDeduction:  undertimeDeduction,
		StaffHouseDeduction: staffHouse,
		TotalSalary:         total,
		FirstClockIn:        firstClockIn,
		LastClockOut:        lastClockOut,
	}
}
