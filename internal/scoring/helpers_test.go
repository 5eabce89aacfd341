package scoring

import (
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
)

var testDay = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func daysFrom(d int) *time.Time {
	t := testDay.AddDate(0, 0, d)
	return &t
}

// neutralConfig scores every task at exactly BaseScore unless a test turns
// a knob on.
func neutralConfig() Config {
	return Config{
		BaseScore: 10,
		ComponentWeights: map[Component]float64{
			ComponentPriority:   1,
			ComponentDifficulty: 1,
			ComponentDuration:   1,
			ComponentAge:        1,
			ComponentDueDate:    1,
			ComponentTag:        1,
			ComponentProject:    1,
			ComponentBase:       1,
		},
		PriorityMultipliers:   MultiplierTable[domain.Priority]{},
		DifficultyMultipliers: MultiplierTable[domain.Difficulty]{},
		DurationMultipliers:   MultiplierTable[domain.Duration]{},
		AgeFactor:             TimeFactor{Unit: UnitDays, MaxMultiplier: 1},
		DueDateProximity:      TimeFactor{Unit: UnitDays, MaxMultiplier: 1},
	}
}

func newTask(id string, opts ...func(*domain.Task)) *domain.Task {
	t := &domain.Task{ID: id, Title: id}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func dependsOn(ids ...string) func(*domain.Task) {
	return func(t *domain.Task) { t.Dependencies = append(t.Dependencies, ids...) }
}

func withDifficulty(d domain.Difficulty) func(*domain.Task) {
	return func(t *domain.Task) { t.Difficulty = d }
}

func dueIn(days int) func(*domain.Task) {
	return func(t *domain.Task) { t.DueDate = daysFrom(days) }
}
