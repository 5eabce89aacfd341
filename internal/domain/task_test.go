package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestMarkComplete_Task(t *testing.T) {
	task := &Task{ID: "t1"}
	task.MarkComplete(testNow)
	assert.True(t, task.IsComplete)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, testNow, *task.CompletedAt)
	assert.Zero(t, task.StreakCurrent, "non-habit tasks keep no streak")
}

func TestMarkComplete_HabitAdvancesStreak(t *testing.T) {
	task := &Task{ID: "h1", IsHabit: true, StreakCurrent: 4, StreakBest: 4}
	task.MarkComplete(testNow)
	assert.Equal(t, 5, task.StreakCurrent)
	assert.Equal(t, 5, task.StreakBest)
}

func TestMarkComplete_HabitKeepsBestWhenBelow(t *testing.T) {
	task := &Task{ID: "h1", IsHabit: true, StreakCurrent: 1, StreakBest: 9}
	task.MarkComplete(testNow)
	assert.Equal(t, 2, task.StreakCurrent)
	assert.Equal(t, 9, task.StreakBest)
}

func TestMarkComplete_AlreadyComplete(t *testing.T) {
	earlier := testNow.Add(-time.Hour)
	task := &Task{ID: "h1", IsHabit: true, IsComplete: true, CompletedAt: &earlier, StreakCurrent: 3}
	task.MarkComplete(testNow)
	assert.Equal(t, earlier, *task.CompletedAt, "should not overwrite existing CompletedAt")
	assert.Equal(t, 3, task.StreakCurrent)
}

func TestIsOverdue(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	laterToday := testNow.Add(5 * time.Hour)
	cases := []struct {
		name string
		due  *time.Time
		want bool
	}{
		{"no due date", nil, false},
		{"due yesterday", &yesterday, true},
		{"due later today", &laterToday, false},
	}
	for _, tc := range cases {
		task := &Task{DueDate: tc.due}
		assert.Equal(t, tc.want, task.IsOverdue(testNow), tc.name)
	}
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, 6, 16, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(a, b))
	assert.Equal(t, -1, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a.Add(-time.Hour)))
}

func TestDependsOn(t *testing.T) {
	task := &Task{Dependencies: []string{"a", "b"}}
	assert.True(t, task.DependsOn("b"))
	assert.False(t, task.DependsOn("c"))
}

func TestUser_LedgerSumAndLookups(t *testing.T) {
	u := &User{
		Tasks:          []*Task{{ID: "t1"}, {ID: "t2"}},
		XPTransactions: []*XPTransaction{{Amount: 10}, {Amount: -3}},
		Badges:         []*Badge{{ID: "first_task"}},
	}
	assert.Equal(t, 7, u.LedgerSum())
	assert.NotNil(t, u.FindTask("t2"))
	assert.Nil(t, u.FindTask("missing"))
	assert.True(t, u.HasBadge("first_task"))
	assert.False(t, u.HasBadge("achiever"))
}

func TestNextInstance(t *testing.T) {
	day := time.Date(2025, 3, 15, 18, 30, 0, 0, time.UTC)
	due := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	project := "Health"
	habit := &Task{ID: "run-1", Title: "Run", IsHabit: true, Tags: []string{"fitness"}, Project: &project, DueDate: &due}
	habit.MarkComplete(day)

	next := habit.NextInstance("run-2", day)

	assert.Equal(t, "run-2", next.ID)
	assert.False(t, next.IsComplete)
	assert.Nil(t, next.CompletedAt)
	assert.Equal(t, 1, next.StreakCurrent)
	assert.Equal(t, DayOf(day), *next.CreationDate)
	assert.Equal(t, due.AddDate(0, 0, 1), *next.DueDate)

	next.Tags[0] = "changed"
	*next.Project = "Other"
	assert.Equal(t, "fitness", habit.Tags[0], "tags are not shared")
	assert.Equal(t, "Health", *habit.Project)
}

func TestNextInstance_LateCompletionNotDueInPast(t *testing.T) {
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	habit := &Task{ID: "h", IsHabit: true, DueDate: &due}

	next := habit.NextInstance("h2", day)
	assert.Equal(t, day, *next.DueDate)
}
