package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workshift-ph/timeclock-backend/internal/domain/timeentry"
	"github.com/workshift-ph/timeclock-backend/internal/repository/postgresql"
)

func clockTime(day string, hour, min int) time.Time {
	d := parseDate(day)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, time.UTC)
}

func insertEntry(t *testing.T, ctx context.Context, userID string, day string, inHour, outHour int) timeentry.TimeEntry {
	repo := postgresql.NewTimeEntryRepository(testDB)
	clockIn := clockTime(day, inHour, 0)

	entry := timeentry.TimeEntry{
		UserID:    userID,
		ClockIn:   clockIn,
		Date:      timeentry.DateOf(clockIn),
		WeekStart: timeentry.WeekStartOf(clockIn),
	}
	created, err := repo.Create(ctx, entry)
	require.NoError(t, err)

	if outHour > 0 {
		err = repo.SetClockOut(ctx, created.ID, clockTime(day, outHour, 0), nil)
		require.NoError(t, err)
		created, err = repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
	}
	return created
}

func TestTimeEntryRepository_GetOpenSession(t *testing.T) {
	ctx := context.Background()
	setupTestData(t)
	defer cleanupTestData(t)

	userID := createTestUser(t, ctx, "open-session")
	repo := postgresql.NewTimeEntryRepository(testDB)

	open, err := repo.GetOpenSession(ctx, userID, parseDate("2026-03-02"))
	require.NoError(t, err)
	assert.Nil(t, open)

	created := insertEntry(t, ctx, userID, "2026-03-02", 7, 0)

	open, err = repo.GetOpenSession(ctx, userID, parseDate("2026-03-02"))
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, created.ID, open.ID)

	err = repo.SetClockOut(ctx, created.ID, clockTime("2026-03-02", 15, 30), nil)
	require.NoError(t, err)

	open, err = repo.GetOpenSession(ctx, userID, parseDate("2026-03-02"))
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestTimeEntryRepository_OvertimeDecisionFlow(t *testing.T) {
	ctx := context.Background()
	setupTestData(t)
	defer cleanupTestData(t)

	userID := createTestUser(t, ctx, "overtime-flow")
	adminID := createTestAdmin(t, ctx, "overtime-admin")
	repo := postgresql.NewTimeEntryRepository(testDB)

	entry := insertEntry(t, ctx, userID, "2026-03-02", 7, 16)

	err := repo.MarkOvertimeRequested(ctx, entry.ID, "finishing deploy")
	require.NoError(t, err)

	pending, err := repo.ListPendingOvertime(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, entry.ID, pending[0].ID)
	require.NotNil(t, pending[0].Username)
	assert.Equal(t, "overtime-flow", *pending[0].Username)

	err = repo.DecideOvertime(ctx, entry.ID, true, adminID)
	require.NoError(t, err)

	pending, err = repo.ListPendingOvertime(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	decided, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, decided.OvertimeApproved)
	assert.True(t, *decided.OvertimeApproved)
	require.NotNil(t, decided.OvertimeApprovedBy)
	assert.Equal(t, adminID, *decided.OvertimeApprovedBy)

	// The first notification fetch returns the decision and marks it seen.
	unnotified, err := repo.ListUnnotifiedDecisions(ctx, userID)
	require.NoError(t, err)
	require.Len(t, unnotified, 1)

	unnotified, err = repo.ListUnnotifiedDecisions(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, unnotified)
}

func TestTimeEntryRepository_DecideOvertime_NotRequested(t *testing.T) {
	ctx := context.Background()
	setupTestData(t)
	defer cleanupTestData(t)

	userID := createTestUser(t, ctx, "not-requested")
	adminID := createTestAdmin(t, ctx, "not-requested-admin")
	repo := postgresql.NewTimeEntryRepository(testDB)

	entry := insertEntry(t, ctx, userID, "2026-03-02", 7, 16)

	err := repo.DecideOvertime(ctx, entry.ID, true, adminID)
	assert.ErrorIs(t, err, timeentry.ErrEntryNotFound)
}

func TestTimeEntryRepository_SumClosedHours(t *testing.T) {
	ctx := context.Background()
	setupTestData(t)
	defer cleanupTestData(t)

	userID := createTestUser(t, ctx, "sum-hours")
	repo := postgresql.NewTimeEntryRepository(testDB)

	insertEntry(t, ctx, userID, "2026-03-02", 7, 15)
	insertEntry(t, ctx, userID, "2026-03-03", 7, 11)
	// Open sessions are excluded from the totals.
	insertEntry(t, ctx, userID, "2026-03-04", 7, 0)

	hours, daysWorked, err := repo.SumClosedHours(ctx, userID)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, hours, 0.001)
	assert.Equal(t, 2, daysWorked)
}

func TestTimeEntryRepository_ListUserIDsWithClosedEntries(t *testing.T) {
	ctx := context.Background()
	setupTestData(t)
	defer cleanupTestData(t)

	worked := createTestUser(t, ctx, "worked")
	stillIn := createTestUser(t, ctx, "still-in")
	createTestUser(t, ctx, "idle")
	repo := postgresql.NewTimeEntryRepository(testDB)

	insertEntry(t, ctx, worked, "2026-03-02", 7, 15)
	insertEntry(t, ctx, stillIn, "2026-03-02", 7, 0)

	dates := []time.Time{parseDate("2026-03-02")}

	ids, err := repo.ListUserIDsWithClosedEntries(ctx, dates, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{worked}, ids)

	// Restricting to a subset that never worked yields nothing.
	ids, err = repo.ListUserIDsWithClosedEntries(ctx, dates, []string{stillIn})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTimeEntryRepository_DeleteForUserDate(t *testing.T) {
	ctx := context.Background()
	setupTestData(t)
	defer cleanupTestData(t)

	userID := createTestUser(t, ctx, "delete-day")
	repo := postgresql.NewTimeEntryRepository(testDB)

	insertEntry(t, ctx, userID, "2026-03-02", 7, 11)
	insertEntry(t, ctx, userID, "2026-03-02", 12, 15)
	keep := insertEntry(t, ctx, userID, "2026-03-03", 7, 15)

	err := repo.DeleteForUserDate(ctx, userID, parseDate("2026-03-02"))
	require.NoError(t, err)

	gone, err := repo.ListForUserDate(ctx, userID, parseDate("2026-03-02"))
	require.NoError(t, err)
	assert.Empty(t, gone)

	left, err := repo.ListForUserDate(ctx, userID, parseDate("2026-03-03"))
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, keep.ID, left[0].ID)
}

func TestTimeEntryRepository_Create_SecondOpenSessionRejected(t *testing.T) {
	ctx := context.Background()
	setupTestData(t)
	defer cleanupTestData(t)

	userID := createTestUser(t, ctx, "double-open")
	repo := postgresql.NewTimeEntryRepository(testDB)

	insertEntry(t, ctx, userID, "2026-03-02", 7, 0)

	clockIn := clockTime("2026-03-03", 7, 0)
	_, err := repo.Create(ctx, timeentry.TimeEntry{
		UserID:    userID,
		ClockIn:   clockIn,
		Date:      timeentry.DateOf(clockIn),
		WeekStart: timeentry.WeekStartOf(clockIn),
	})
	require.ErrorIs(t, err, timeentry.ErrAlreadyClockedIn)

	// Closing the running session frees the slot.
	open, err := repo.GetOpenSession(ctx, userID, parseDate("2026-03-02"))
	require.NoError(t, err)
	require.NotNil(t, open)
	require.NoError(t, repo.SetClockOut(ctx, open.ID, clockTime("2026-03-02", 15, 30), nil))

	created, err := repo.Create(ctx, timeentry.TimeEntry{
		UserID:    userID,
		ClockIn:   clockIn,
		Date:      timeentry.DateOf(clockIn),
		WeekStart: timeentry.WeekStartOf(clockIn),
	})
	require.NoError(t, err)
	assert.True(t, created.IsOpen())
}
