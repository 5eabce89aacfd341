package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/alexanderramin/xpledger/internal/ledger"
	"github.com/alexanderramin/xpledger/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

type countingSaver struct {
	saves int
	err   error
}

func (s *countingSaver) SaveUser(context.Context, *domain.User) error {
	s.saves++
	return s.err
}

func day(offset int) *time.Time {
	t := testDay.AddDate(0, 0, offset)
	return &t
}

func overdueTask(id string, due int) *domain.Task {
	return &domain.Task{ID: id, Title: "Task " + id, CreationDate: day(-10), DueDate: day(due)}
}

func testLedger(saver ledger.UserSaver) *ledger.Ledger {
	return ledger.New(saver, ledger.WithClock(func() time.Time { return testDay.Add(9 * time.Hour) }))
}

func TestApplyDailyPenalties_ChargesOverdueTasks(t *testing.T) {
	saver := &countingSaver{}
	u := &domain.User{
		Username: "ada",
		TotalXP:  100,
		XPTransactions: []*domain.XPTransaction{
			{ID: "seed", Amount: 100, Source: domain.SourceTaskCompletion, GameDate: day(-20)},
		},
		Tasks: []*domain.Task{
			overdueTask("late", -2),
			overdueTask("today", 0),
			overdueTask("tomorrow", 1),
			{ID: "done", IsComplete: true, CreationDate: day(-10), DueDate: day(-1)},
			{ID: "undated", CreationDate: day(-10)},
		},
	}

	res, err := ApplyDailyPenalties(context.Background(), u, scoring.DefaultConfig(), testDay, testLedger(saver))
	require.NoError(t, err)

	require.Len(t, res.Penalties, 2)
	assert.Equal(t, "late", res.Penalties[0].TaskID)
	assert.Equal(t, "today", res.Penalties[1].TaskID)
	for _, p := range res.Penalties {
		assert.GreaterOrEqual(t, p.Amount, 1)
	}
	assert.Equal(t, 1, saver.saves, "saved once for the whole day")
	assert.Equal(t, 100-res.Total(), u.TotalXP)
	assert.Equal(t, u.LedgerSum(), u.TotalXP)

	require.Len(t, u.XPTransactions, 2, "both penalties fold into one daily_lost row")
	lost := u.XPTransactions[1]
	assert.Equal(t, domain.SourceDailyLost, lost.Source)
	assert.Equal(t, -res.Total(), lost.Amount)
	assert.True(t, domain.SameDay(testDay, *lost.GameDate))
}

func TestApplyDailyPenalties_VacationSkips(t *testing.T) {
	saver := &countingSaver{}
	u := &domain.User{VacationMode: true, Tasks: []*domain.Task{overdueTask("late", -2)}}

	res, err := ApplyDailyPenalties(context.Background(), u, scoring.DefaultConfig(), testDay, testLedger(saver))
	require.NoError(t, err)
	assert.True(t, res.Vacation)
	assert.Empty(t, res.Penalties)
	assert.Empty(t, u.XPTransactions)
	assert.Zero(t, saver.saves)
}

func TestApplyDailyPenalties_NoWritesWhenNothingDue(t *testing.T) {
	saver := &countingSaver{}
	u := &domain.User{Tasks: []*domain.Task{overdueTask("future", 3)}}

	res, err := ApplyDailyPenalties(context.Background(), u, scoring.DefaultConfig(), testDay, testLedger(saver))
	require.NoError(t, err)
	assert.Empty(t, res.Penalties)
	assert.Zero(t, saver.saves)
}

func TestApplyDailyPenalties_SkipsTasksCreatedToday(t *testing.T) {
	u := &domain.User{Tasks: []*domain.Task{{ID: "fresh", CreationDate: day(0), DueDate: day(0)}}}

	res, err := ApplyDailyPenalties(context.Background(), u, scoring.DefaultConfig(), testDay, testLedger(nil))
	require.NoError(t, err)
	assert.Empty(t, res.Penalties)
}

func TestApplyDailyPenalties_ClampsToOne(t *testing.T) {
	cfg := scoring.DefaultConfig()
	cfg.BaseScore = 0
	u := &domain.User{Tasks: []*domain.Task{overdueTask("late", -1)}}

	res, err := ApplyDailyPenalties(context.Background(), u, cfg, testDay, testLedger(nil))
	require.NoError(t, err)
	require.Len(t, res.Penalties, 1)
	assert.Equal(t, 1, res.Penalties[0].Amount)
	assert.Equal(t, -1, u.TotalXP)
}

func TestApplyDailyPenalties_SaveError(t *testing.T) {
	boom := errors.New("db locked")
	u := &domain.User{Tasks: []*domain.Task{overdueTask("late", -1)}}

	_, err := ApplyDailyPenalties(context.Background(), u, scoring.DefaultConfig(), testDay, testLedger(&countingSaver{err: boom}))
	assert.ErrorIs(t, err, boom)
}
