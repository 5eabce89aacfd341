package badges

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

type countingSaver struct{ saves int }

func (s *countingSaver) SaveUser(context.Context, *domain.User) error {
	s.saves++
	return nil
}

func completed(n int, habit bool) []*domain.Task {
	out := make([]*domain.Task, n)
	for i := range out {
		out[i] = &domain.Task{IsComplete: true, IsHabit: habit}
	}
	return out
}

func TestComputeStats(t *testing.T) {
	u := &domain.User{
		TotalXP: 42,
		Tasks: append(completed(3, false),
			&domain.Task{IsHabit: true, IsComplete: true, StreakCurrent: 2, StreakBest: 9},
			&domain.Task{IsHabit: true, StreakCurrent: 4},
			&domain.Task{StreakCurrent: 50},
		),
	}

	s := ComputeStats(u)
	assert.Equal(t, Stats{TasksCompleted: 3, HabitsCompleted: 1, MaxStreak: 9, TotalXP: 42}, s)
}

func TestCheckBadges_CriteriaAreOred(t *testing.T) {
	def := Definition{ID: "either", Criteria: map[Criterion]int{CriterionTotalXP: 1000, CriterionStreak: 3}}
	u := &domain.User{TotalXP: 5, Tasks: []*domain.Task{{IsHabit: true, StreakCurrent: 3}}}

	earned := CheckBadges(u, []Definition{def}, testNow)
	require.Len(t, earned, 1)
	assert.Equal(t, "either", earned[0].ID)
	require.NotNil(t, earned[0].EarnedDate)
	assert.Equal(t, testNow, *earned[0].EarnedDate)
}

func TestCheckBadges_Idempotent(t *testing.T) {
	u := &domain.User{TotalXP: 150, Tasks: completed(1, false)}
	defs := DefaultDefinitions()

	first := CheckBadges(u, defs, testNow)
	var ids []string
	for _, b := range first {
		ids = append(ids, b.ID)
	}
	assert.ElementsMatch(t, []string{"first_task", "apprentice"}, ids)

	assert.Empty(t, CheckBadges(u, defs, testNow.Add(time.Hour)))
	assert.Len(t, u.Badges, 2, "no duplicates")
}

func TestCheckBadges_SkipsDefinitionsWithoutID(t *testing.T) {
	defs := []Definition{
		{Name: "nameless", Criteria: map[Criterion]int{CriterionTotalXP: 0}},
		{ID: "ok", Criteria: map[Criterion]int{CriterionTotalXP: 0}},
	}
	earned := CheckBadges(&domain.User{}, defs, testNow)
	require.Len(t, earned, 1)
	assert.Equal(t, "ok", earned[0].ID)
}

func TestCheckBadges_UnknownCriterionNeverMatches(t *testing.T) {
	defs := []Definition{{ID: "odd", Criteria: map[Criterion]int{"moon_phase": 0}}}
	assert.Empty(t, CheckBadges(&domain.User{TotalXP: 1 << 20}, defs, testNow))
}

func TestCheckBadges_DuplicateDefinitionAwardedOnce(t *testing.T) {
	def := Definition{ID: "dup", Criteria: map[Criterion]int{CriterionTotalXP: 0}}
	u := &domain.User{}
	assert.Len(t, CheckBadges(u, []Definition{def, def}, testNow), 1)
}

func TestEvaluator_PersistsOnlyWhenEarned(t *testing.T) {
	saver := &countingSaver{}
	ev := NewEvaluator(DefaultDefinitions(), saver, WithClock(func() time.Time { return testNow }))
	u := &domain.User{Tasks: completed(1, false)}

	earned, err := ev.Check(context.Background(), u)
	require.NoError(t, err)
	require.Len(t, earned, 1)
	assert.Equal(t, 1, saver.saves)

	earned, err = ev.Check(context.Background(), u)
	require.NoError(t, err)
	assert.Empty(t, earned)
	assert.Equal(t, 1, saver.saves)
}

func TestDefinition_Progress(t *testing.T) {
	def := Definition{ID: "p", Criteria: map[Criterion]int{CriterionTasksCompleted: 10, CriterionTotalXP: 200}}

	assert.InDelta(t, 0.5, def.Progress(Stats{TasksCompleted: 2, TotalXP: 100}), 1e-9)
	assert.InDelta(t, 1.0, def.Progress(Stats{TasksCompleted: 40}), 1e-9)
	assert.InDelta(t, 0.0, def.Progress(Stats{TotalXP: -50}), 1e-9)
	assert.InDelta(t, 0.0, Definition{}.Progress(Stats{TotalXP: 5}), 1e-9)
}
