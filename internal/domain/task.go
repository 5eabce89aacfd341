package domain

import (
	"slices"
	"time"
)

type Task struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	Priority   Priority   `json:"priority,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Duration   Duration   `json:"duration,omitempty"`

	IsComplete  bool       `json:"is_complete"`
	IsHabit     bool       `json:"is_habit"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Habit streaks
	StreakCurrent int `json:"streak_current,omitempty"`
	StreakBest    int `json:"streak_best,omitempty"`

	CreationDate *time.Time `json:"creation_date,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`

	Dependencies []string `json:"dependencies,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Project      *string  `json:"project,omitempty"`
}

// DependsOn reports whether id is listed among the task's dependencies.
func (t *Task) DependsOn(id string) bool {
	return slices.Contains(t.Dependencies, id)
}

// IsOverdue reports whether the task has a due date strictly before the
// calendar day of effective.
func (t *Task) IsOverdue(effective time.Time) bool {
	return t.DueDate != nil && DaysBetween(effective, *t.DueDate) < 0
}

// MarkComplete records completion and advances the habit streak. Completing
// an already complete task is a no-op.
func (t *Task) MarkComplete(now time.Time) {
	if t.IsComplete {
		return
	}
	t.IsComplete = true
	t.CompletedAt = &now
	if t.IsHabit {
		t.StreakCurrent++
		if t.StreakCurrent > t.StreakBest {
			t.StreakBest = t.StreakCurrent
		}
	}
}

// ProjectName returns the project or "" when none is set.
func (t *Task) ProjectName() string {
	if t.Project == nil {
		return ""
	}
	return *t.Project
}

// NextInstance returns the follow-up occurrence of a completed habit: same
// attributes and streak, incomplete, created on day, and due one day after
// the previous due date when there was one.
func (t *Task) NextInstance(id string, day time.Time) *Task {
	next := *t
	next.ID = id
	next.IsComplete = false
	next.CompletedAt = nil
	created := DayOf(day)
	next.CreationDate = &created
	next.StartDate = nil
	if t.DueDate != nil {
		due := DayOf(*t.DueDate).AddDate(0, 0, 1)
		if DaysBetween(created, due) < 0 {
			due = created
		}
		next.DueDate = &due
	}
	next.Dependencies = append([]string(nil), t.Dependencies...)
	next.Tags = append([]string(nil), t.Tags...)
	if t.Project != nil {
		p := *t.Project
		next.Project = &p
	}
	return &next
}
