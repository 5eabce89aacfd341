package testutil

import (
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/google/uuid"
)

// RefDay is the fixed calendar day fixtures are anchored to.
var RefDay = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

// Day returns RefDay shifted by offset days.
func Day(offset int) time.Time {
	return RefDay.AddDate(0, 0, offset)
}

// Task options
type TaskOption func(*domain.Task)

func WithTitle(title string) TaskOption {
	return func(t *domain.Task) { t.Title = title }
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) { t.Priority = p }
}

func WithDifficulty(d domain.Difficulty) TaskOption {
	return func(t *domain.Task) { t.Difficulty = d }
}

func WithDuration(d domain.Duration) TaskOption {
	return func(t *domain.Task) { t.Duration = d }
}

func WithCreated(d time.Time) TaskOption {
	return func(t *domain.Task) { t.CreationDate = &d }
}

func WithDue(d time.Time) TaskOption {
	return func(t *domain.Task) { t.DueDate = &d }
}

func WithStart(d time.Time) TaskOption {
	return func(t *domain.Task) { t.StartDate = &d }
}

func WithDependencies(ids ...string) TaskOption {
	return func(t *domain.Task) { t.Dependencies = ids }
}

func WithTags(tags ...string) TaskOption {
	return func(t *domain.Task) { t.Tags = tags }
}

func WithProject(name string) TaskOption {
	return func(t *domain.Task) { t.Project = &name }
}

func AsHabit(streak int) TaskOption {
	return func(t *domain.Task) {
		t.IsHabit = true
		t.StreakCurrent = streak
		t.StreakBest = streak
	}
}

func Completed(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.IsComplete = true
		t.CompletedAt = &at
	}
}

// NewTestTask builds a medium-priority task created ten days before RefDay.
// An empty id gets a random one.
func NewTestTask(id string, opts ...TaskOption) *domain.Task {
	if id == "" {
		id = uuid.New().String()
	}
	created := Day(-10)
	t := &domain.Task{
		ID:           id,
		Title:        "Task " + id,
		Priority:     domain.PriorityMedium,
		Difficulty:   domain.DifficultyMedium,
		Duration:     domain.DurationHour,
		CreationDate: &created,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestUser returns an empty user owning tasks.
func NewTestUser(username string, tasks ...*domain.Task) *domain.User {
	return &domain.User{Username: username, Tasks: tasks}
}
