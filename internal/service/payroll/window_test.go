package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workshift-ph/timeclock-backend/internal/domain/payslip"
	"github.com/workshift-ph/timeclock-backend/internal/domain/timeentry"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestResolveWindowWeekStart(t *testing.T) {
	w, err := resolveWindow("2026-03-01", "", "", nil)
	require.NoError(t, err)

	assert.Equal(t, date("2026-03-01"), w.start)
	assert.Equal(t, date("2026-03-07"), w.end)
	assert.Len(t, w.dates, 7)
}

func TestResolveWindowRange(t *testing.T) {
	w, err := resolveWindow("", "2026-03-02", "2026-03-04", nil)
	require.NoError(t, err)

	assert.Equal(t, date("2026-03-02"), w.start)
	assert.Equal(t, date("2026-03-04"), w.end)
	assert.Len(t, w.dates, 3)
}

func TestResolveWindowSelectedDates(t *testing.T) {
	w, err := resolveWindow("", "", "", []string{"2026-03-05", "2026-03-01", "2026-03-03"})
	require.NoError(t, err)

	assert.Equal(t, date("2026-03-01"), w.start)
	assert.Equal(t, date("2026-03-05"), w.end)
	assert.Len(t, w.dates, 3)
}

func TestResolveWindowSelectedDatesWinOverRange(t *testing.T) {
	w, err := resolveWindow("2026-03-01", "2026-03-02", "2026-03-06", []string{"2026-03-10"})
	require.NoError(t, err)

	assert.Equal(t, date("2026-03-10"), w.start)
	assert.Equal(t, date("2026-03-10"), w.end)
}

func TestResolveWindowRangeWinsOverWeek(t *testing.T) {
	w, err := resolveWindow("2026-03-01", "2026-03-09", "2026-03-10", nil)
	require.NoError(t, err)

	assert.Equal(t, date("2026-03-09"), w.start)
	assert.Equal(t, date("2026-03-10"), w.end)
}

func TestResolveWindowErrors(t *testing.T) {
	tests := []struct {
		name          string
		weekStart     string
		startDate     string
		endDate       string
		selectedDates []string
	}{
		{name: "no selector"},
		{name: "bad week start", weekStart: "03/01/2026"},
		{name: "bad selected date", selectedDates: []string{"not-a-date"}},
		{name: "end before start", startDate: "2026-03-05", endDate: "2026-03-01"},
		{name: "start without end", startDate: "2026-03-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveWindow(tt.weekStart, tt.startDate, tt.endDate, tt.selectedDates)
			assert.ErrorIs(t, err, payslip.ErrSelectorRequired)
		})
	}
}

func TestFilterToDates(t *testing.T) {
	entries := []timeentry.TimeEntry{
		{ID: "a", Date: date("2026-03-01")},
		{ID: "b", Date: date("2026-03-02")},
		{ID: "c", Date: date("2026-03-03")},
	}

	filtered := filterToDates(entries, []time.Time{date("2026-03-01"), date("2026-03-03")})

	require.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].ID)
	assert.Equal(t, "c", filtered[1].ID)
}
