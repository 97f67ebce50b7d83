package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workshift-ph/timeclock-backend/internal/domain/timeentry"
)

func at(day int, hour, min int) time.Time {
	return time.Date(2026, time.March, day, hour, min, 0, 0, time.UTC)
}

func closedEntry(day int, inHour, inMin, outHour, outMin int) timeentry.TimeEntry {
	in := at(day, inHour, inMin)
	out := at(day, outHour, outMin)
	return timeentry.TimeEntry{
		UserID:   "u1",
		ClockIn:  in,
		ClockOut: &out,
		Date:     timeentry.DateOf(in),
	}
}

func approvedOvertime(e timeentry.TimeEntry) timeentry.TimeEntry {
	approved := true
	e.OvertimeRequested = true
	e.OvertimeApproved = &approved
	return e
}

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculateEmptyAndOpenSessions(t *testing.T) {
	open := timeentry.TimeEntry{ClockIn: at(2, 7, 0)}

	for name, entries := range map[string][]timeentry.TimeEntry{
		"no entries":   nil,
		"open session": {open},
	} {
		t.Run(name, func(t *testing.T) {
			b := Calculate(entries, Options{})

			assert.Zero(t, b.TotalHours)
			assert.Zero(t, b.OvertimeHours)
			assert.Zero(t, b.UndertimeHours)
			assert.Zero(t, b.DaysWorked)
			assert.True(t, b.TotalSalary.IsZero())
			assert.Nil(t, b.FirstClockIn)
			assert.Nil(t, b.LastClockOut)
		})
	}
}

func TestCalculateEarlyArrivalEarnsNothingExtra(t *testing.T) {
	// 06:00 to 16:00 with no overtime approval. The clock starts at
	// 07:00, so 9 raw hours cap at 8.5 and the half hour past 15:30
	// pays nothing.
	b := Calculate([]timeentry.TimeEntry{closedEntry(2, 6, 0, 16, 0)}, Options{})

	assert.InDelta(t, 8.5, b.TotalHours, 1e-9)
	assert.Zero(t, b.UndertimeHours)
	assert.Zero(t, b.OvertimeHours)
	assert.True(t, b.BaseSalary.Equal(money("200")), "base = %s", b.BaseSalary)
	assert.True(t, b.TotalSalary.Equal(money("200")), "total = %s", b.TotalSalary)
}

func TestCalculateLateArrivalAccruesUndertime(t *testing.T) {
	// 08:00 to 15:00 is 7 worked hours and one hour late.
	b := Calculate([]timeentry.TimeEntry{closedEntry(2, 8, 0, 15, 0)}, Options{})

	assert.InDelta(t, 7.0, b.TotalHours, 1e-9)
	assert.InDelta(t, 1.0, b.UndertimeHours, 1e-9)
	assert.True(t, b.BaseSalary.Equal(money("164.71")), "base = %s", b.BaseSalary)
	assert.True(t, b.UndertimeDeduction.Equal(money("23.53")), "undertime = %s", b.UndertimeDeduction)
	assert.True(t, b.TotalSalary.Equal(money("141.18")), "total = %s", b.TotalSalary)
}

func TestCalculateOvertime(t *testing.T) {
	t.Run("approved overtime pays past shift end", func(t *testing.T) {
		b := Calculate([]timeentry.TimeEntry{
			approvedOvertime(closedEntry(2, 7, 0, 18, 0)),
		}, Options{})

		assert.InDelta(t, 8.5, b.TotalHours, 1e-9)
		assert.InDelta(t, 2.5, b.OvertimeHours, 1e-9)
		assert.True(t, b.OvertimePay.Equal(money("87.50")), "overtime pay = %s", b.OvertimePay)
		assert.True(t, b.TotalSalary.Equal(money("287.50")), "total = %s", b.TotalSalary)
	})

	t.Run("unapproved overtime pays nothing", func(t *testing.T) {
		e := closedEntry(2, 7, 0, 18, 0)
		e.OvertimeRequested = true

		b := Calculate([]timeentry.TimeEntry{e}, Options{})

		assert.Zero(t, b.OvertimeHours)
		assert.True(t, b.OvertimePay.IsZero())
	})

	t.Run("rejected overtime pays nothing", func(t *testing.T) {
		e := closedEntry(2, 7, 0, 18, 0)
		rejected := false
		e.OvertimeRequested = true
		e.OvertimeApproved = &rejected

		b := Calculate([]timeentry.TimeEntry{e}, Options{})

		assert.Zero(t, b.OvertimeHours)
	})

	t.Run("approval without clocking past shift end pays nothing", func(t *testing.T) {
		b := Calculate([]timeentry.TimeEntry{
			approvedOvertime(closedEntry(2, 7, 0, 15, 0)),
		}, Options{})

		assert.Zero(t, b.OvertimeHours)
	})
}

func TestCalculateSkipsNonPositiveWork(t *testing.T) {
	// Entirely before shift start: effective clock-in is 07:00 which
	// is after clock-out, so the entry contributes nothing, lateness
	// included.
	b := Calculate([]timeentry.TimeEntry{closedEntry(2, 5, 0, 6, 30)}, Options{})

	assert.Zero(t, b.TotalHours)
	assert.Zero(t, b.UndertimeHours)
	assert.Zero(t, b.DaysWorked)
	assert.True(t, b.TotalSalary.IsZero())
}

func TestCalculateStaffHouseDeduction(t *testing.T) {
	week := func(days ...int) []timeentry.TimeEntry {
		var entries []timeentry.TimeEntry
		for _, d := range days {
			entries = append(entries, closedEntry(d, 7, 0, 15, 30))
		}
		return entries
	}

	t.Run("prorated per day with work", func(t *testing.T) {
		b := Calculate(week(2, 3, 4), Options{StaffHouse: true})

		assert.Equal(t, 3, b.DaysWorked)
		assert.True(t, b.StaffHouseDeduction.Equal(money("150")), "staff house = %s", b.StaffHouseDeduction)
	})

	t.Run("capped at the weekly rate", func(t *testing.T) {
		b := Calculate(week(1, 2, 3, 4, 5, 6, 7), Options{StaffHouse: true})

		assert.Equal(t, 7, b.DaysWorked)
		assert.True(t, b.StaffHouseDeduction.Equal(money("250")), "staff house = %s", b.StaffHouseDeduction)
	})

	t.Run("no work means no deduction", func(t *testing.T) {
		b := Calculate(nil, Options{StaffHouse: true})

		assert.True(t, b.StaffHouseDeduction.IsZero())
	})

	t.Run("disabled", func(t *testing.T) {
		b := Calculate(week(2), Options{StaffHouse: false})

		assert.True(t, b.StaffHouseDeduction.IsZero())
	})
}

func TestCalculateTotalMayGoNegative(t *testing.T) {
	// One hour of work cannot cover the single-day lodging charge.
	b := Calculate([]timeentry.TimeEntry{closedEntry(2, 7, 0, 8, 0)}, Options{StaffHouse: true})

	require.True(t, b.TotalSalary.IsNegative(), "total = %s", b.TotalSalary)
	// 23.53 earned minus 50.00 lodging.
	assert.True(t, b.TotalSalary.Equal(money("-26.47")), "total = %s", b.TotalSalary)
}

func TestCalculateWeeklyBaseCap(t *testing.T) {
	// Five full shifts far exceed the cap.
	var entries []timeentry.TimeEntry
	for d := 2; d <= 6; d++ {
		entries = append(entries, closedEntry(d, 7, 0, 15, 30))
	}

	b := Calculate(entries, Options{})

	assert.InDelta(t, 42.5, b.TotalHours, 1e-9)
	assert.True(t, b.BaseSalary.Equal(money("200")), "base = %s", b.BaseSalary)
}

func TestCalculateTracksFirstInLastOut(t *testing.T) {
	entries := []timeentry.TimeEntry{
		closedEntry(3, 8, 0, 15, 0),
		closedEntry(2, 7, 30, 14, 0),
		closedEntry(4, 7, 15, 16, 0),
	}

	b := Calculate(entries, Options{})

	require.NotNil(t, b.FirstClockIn)
	require.NotNil(t, b.LastClockOut)
	assert.True(t, b.FirstClockIn.Equal(at(2, 7, 30)))
	assert.True(t, b.LastClockOut.Equal(at(4, 16, 0)))
}

func TestCalculateBreaktimeFlagDoesNotChangePay(t *testing.T) {
	entries := []timeentry.TimeEntry{closedEntry(2, 8, 0, 15, 0)}

	withBreak := Calculate(entries, Options{BreaktimeEnabled: true})
	withoutBreak := Calculate(entries, Options{BreaktimeEnabled: false})

	assert.Equal(t, withoutBreak.TotalHours, withBreak.TotalHours)
	assert.True(t, withoutBreak.TotalSalary.Equal(withBreak.TotalSalary))
}
