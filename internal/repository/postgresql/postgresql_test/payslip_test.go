package postgresql_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workshift-ph/timeclock-backend/internal/domain/payslip"
	"github.com/workshift-ph/timeclock-backend/internal/repository/postgresql"
)

func makePayslip(userID string, weekStart string) payslip.Payslip {
	start := parseDate(weekStart)
	return payslip.Payslip{
		UserID:              userID,
		WeekStart:           start,
		WeekEnd:             start.AddDate(0, 0, 6),
		TotalHours:          8.5,
		BaseSalary:          decimal.RequireFromString("200.00"),
		OvertimePay:         decimal.Zero,
		UndertimeDeduction:  decimal.Zero,
		StaffHouseDeduction: decimal.Zero,
		TotalSalary:         decimal.RequireFromString("200.00"),
		Status:              payslip.StatusPending,
	}
}

func TestPayslipRepository_Create_DuplicateWeekNotInserted(t *testing.T) {
	ctx := context.Background()
	setupTestData(t)
	defer cleanupTestData(t)

	userID := createTestUser(t, ctx, "payslip-dup")
	repo := postgresql.NewPayslipRepository(testDB)

	first, inserted, err := repo.Create(ctx, makePayslip(userID, "2026-03-01"))
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotEmpty(t, first.ID)

	_, inserted, err = repo.Create(ctx, makePayslip(userID, "2026-03-01"))
	require.NoError(t, err)
	assert.False(t, inserted)

	_, inserted, err = repo.Create(ctx, makePayslip(userID, "2026-03-08"))
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestPayslipRepository_Release_OnlyPending(t *testing.T) {
	ctx := context.Background()
	setupTestData(t)
	defer cleanupTestData(t)

	userID := createTestUser(t, ctx, "payslip-release")
	repo := postgresql.NewPayslipRepository(testDB)

	created, inserted, err := repo.Create(ctx, makePayslip(userID, "2026-03-01"))
	require.NoError(t, err)
	require.True(t, inserted)

	count, affected, err := repo.Release(ctx, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{userID}, affected)

	// A released payslip is not released again.
	count, _, err = repo.Release(ctx, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, payslip.StatusReleased, got.Status)
}

func TestPayslipRepository_MarkNeedsRecalculation_CoveringWeekOnly(t *testing.T) {
	ctx := context.Background()
	setupTestData(t)
	defer cleanupTestData(t)

	userID := createTestUser(t, ctx, "payslip-recalc")
	repo := postgresql.NewPayslipRepository(testDB)

	created, inserted, err := repo.Create(ctx, makePayslip(userID, "2026-03-01"))
	require.NoError(t, err)
	require.True(t, inserted)

	// A date outside the covered week flags nothing.
	count, err := repo.MarkNeedsRecalculation(ctx, userID, parseDate("2026-03-10"))
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = repo.MarkNeedsRecalculation(ctx, userID, parseDate("2026-03-03"))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	flagged, err := repo.ListNeedingRecalculation(ctx)
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.Equal(t, created.ID, flagged[0].ID)
	assert.Equal(t, payslip.StatusNeedsRecalculation, flagged[0].Status)
}

func TestPayslipRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	setupTestData(t)
	defer cleanupTestData(t)

	repo := postgresql.NewPayslipRepository(testDB)

	_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, payslip.ErrPayslipNotFound)
}

func TestPayslipRepository_ListReleasedForUser_FiltersStatus(t *testing.T) {
	ctx := context.Background()
	setupTestData(t)
	defer cleanupTestData(t)

	userID := createTestUser(t, ctx, "payslip-history")
	repo := postgresql.NewPayslipRepository(testDB)

	for i, weekStart := range []string{"2026-03-01", "2026-03-08", "2026-03-15"} {
		created, inserted, err := repo.Create(ctx, makePayslip(userID, weekStart))
		require.NoError(t, err)
		require.True(t, inserted)

		// Release all but the last one.
		if i < 2 {
			_, _, err = repo.Release(ctx, &created.WeekStart, &created.WeekEnd, []string{userID})
			require.NoError(t, err)
		}
	}

	history, err := repo.ListReleasedForUser(ctx, userID, payslip.HistoryQuery{})
	require.NoError(t, err)
	require.Len(t, history, 2)
	// Newest week first.
	assert.Equal(t, parseDate("2026-03-08"), history[0].WeekStart)
	assert.Equal(t, parseDate("2026-03-01"), history[1].WeekStart)

	history, err = repo.ListReleasedForUser(ctx, userID, payslip.HistoryQuery{SpecificDay: "2026-03-03"})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, parseDate("2026-03-01"), history[0].WeekStart)
}

func TestPayslipLogRepository_AppendAndList(t *testing.T) {
	ctx := context.Background()
	setupTestData(t)
	defer cleanupTestData(t)

	adminID := createTestAdmin(t, ctx, "payslip-log-admin")
	userID := createTestUser(t, ctx, "payslip-log-user")
	repo := postgresql.NewPayslipLogRepository(testDB)

	created, err := repo.Append(ctx, payslip.Log{
		AdminID:      adminID,
		Action:       payslip.LogActionGenerated,
		PeriodStart:  parseDate("2026-03-01"),
		PeriodEnd:    parseDate("2026-03-07"),
		PayslipCount: 1,
		UserIDs:      []string{userID},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	logs, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, payslip.LogActionGenerated, logs[0].Action)
	require.NotNil(t, logs[0].AdminUsername)
	assert.Equal(t, "payslip-log-admin", *logs[0].AdminUsername)

	err = repo.Delete(ctx, created.ID)
	assert.NoError(t, err)

	err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, payslip.ErrLogNotFound)
}

func TestPayslipLogRepository_List_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	setupTestData(t)
	defer cleanupTestData(t)

	adminID := createTestAdmin(t, ctx, "payslip-log-limit")
	repo := postgresql.NewPayslipLogRepository(testDB)

	for i := 0; i < 3; i++ {
		_, err := repo.Append(ctx, payslip.Log{
			AdminID:      adminID,
			Action:       payslip.LogActionReleased,
			PeriodStart:  parseDate("2026-03-01"),
			PeriodEnd:    parseDate("2026-03-07"),
			PayslipCount: i,
		})
		require.NoError(t, err)
	}

	logs, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 3)

	logs, err = repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func parseDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(fmt.Sprintf("bad test date %q: %v", s, err))
	}
	return d
}
