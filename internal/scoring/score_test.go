package scoring

import (
	"testing"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateScore_NeutralTaskScoresBase(t *testing.T) {
	score, err := CalculateScore(newTask("a"), nil, neutralConfig(), testDay)
	require.NoError(t, err)
	assert.Equal(t, 10, score)
}

func TestCalculateScore_DifficultyDelta(t *testing.T) {
	cfg := neutralConfig()
	cfg.DifficultyMultipliers = MultiplierTable[domain.Difficulty]{domain.DifficultyHard: 2.0}

	score, err := CalculateScore(newTask("a", withDifficulty(domain.DifficultyHard)), nil, cfg, testDay)
	require.NoError(t, err)
	assert.Equal(t, 20, score)
}

func TestCalculateScore_HabitStreakBonus(t *testing.T) {
	cfg := neutralConfig()
	cfg.HabitStreakBonus = StreakBonus{Enabled: true, BonusPerStreakDay: 1.2, MaxBonus: 25}
	habit := newTask("h", func(tk *domain.Task) { tk.IsHabit = true; tk.StreakCurrent = 5 })

	b, err := Explain(habit, nil, cfg, testDay)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, b.StreakBonus, 1e-9)
	assert.InDelta(t, 16.0, b.AdditiveBase(), 1e-9)
	assert.Equal(t, 16, b.Total)
}

func TestCalculateScore_FloorIsAdditiveBase(t *testing.T) {
	cfg := neutralConfig()
	cfg.HabitStreakBonus = StreakBonus{Enabled: true, BonusPerStreakDay: 1, MaxBonus: 10}
	cfg.DueDateProximity = TimeFactor{Enabled: true, Unit: UnitDays, MultiplierPerUnit: 0.5, MaxMultiplier: 3}
	// Multipliers below neutral must not pull the score under its base.
	cfg.PriorityMultipliers = MultiplierTable[domain.Priority]{domain.PriorityLow: 0.5}

	task := newTask("a", func(tk *domain.Task) {
		tk.IsHabit = true
		tk.StreakCurrent = 3
		tk.Priority = domain.PriorityLow
		tk.StartDate = daysFrom(-2)
		tk.DueDate = daysFrom(30)
	})

	b, err := Explain(task, nil, cfg, testDay)
	require.NoError(t, err)
	for _, c := range b.Components {
		assert.Zero(t, c.Value, "component %s", c.Component)
	}
	assert.InDelta(t, 10.0+10.0+3.0, b.AdditiveBase(), 1e-9)
	assert.Equal(t, 23, b.Total)
}

func TestCalculateScore_UnknownEnumsAreNeutral(t *testing.T) {
	task := newTask("a", func(tk *domain.Task) {
		tk.Priority = "someday"
		tk.Difficulty = "unheard-of"
		tk.Duration = "forever"
	})
	score, err := CalculateScore(task, nil, neutralConfig(), testDay)
	require.NoError(t, err)
	assert.Equal(t, 10, score)
}

func TestCalculateScore_TagUsesLargestMultiplier(t *testing.T) {
	cfg := neutralConfig()
	cfg.TagMultipliers = MultiplierTable[string]{"home": 1.2, "urgent": 1.8}
	task := newTask("a", func(tk *domain.Task) { tk.Tags = []string{"home", "urgent", "misc"} })

	score, err := CalculateScore(task, nil, cfg, testDay)
	require.NoError(t, err)
	assert.Equal(t, 18, score)
}

func TestCalculateScore_ProjectMultiplier(t *testing.T) {
	cfg := neutralConfig()
	cfg.ProjectMultipliers = MultiplierTable[string]{"thesis": 1.5}
	cfg.ComponentWeights[ComponentProject] = 2
	task := newTask("a", func(tk *domain.Task) { tk.Project = domain.StrPtr("thesis") })

	score, err := CalculateScore(task, nil, cfg, testDay)
	require.NoError(t, err)
	assert.Equal(t, 20, score)
}

func TestCalculateScore_RoundsToNearest(t *testing.T) {
	cfg := neutralConfig()
	cfg.PriorityMultipliers = MultiplierTable[domain.Priority]{domain.PriorityHigh: 1.25}
	task := newTask("a", func(tk *domain.Task) { tk.Priority = domain.PriorityHigh })

	score, err := CalculateScore(task, nil, cfg, testDay)
	require.NoError(t, err)
	assert.Equal(t, 13, score, "12.5 rounds half away from zero")
}

func TestCalculateScore_IsPure(t *testing.T) {
	cfg := DefaultConfig()
	task := newTask("a", dueIn(2), func(tk *domain.Task) {
		tk.Priority = domain.PriorityHigh
		tk.Difficulty = domain.DifficultyHard
		tk.CreationDate = daysFrom(-40)
		tk.Tags = []string{"x"}
	})
	before := *task

	first, err := CalculateScore(task, nil, cfg, testDay)
	require.NoError(t, err)
	second, err := CalculateScore(task, nil, cfg, testDay)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, *task, "task must not be mutated")
	assert.Equal(t, DefaultConfig(), cfg, "config must not be mutated")
}

func TestCalculateScore_DefaultConfigWeightsEveryComponent(t *testing.T) {
	task := newTask("a", dueIn(0), func(tk *domain.Task) {
		tk.Priority = domain.PriorityCritical
		tk.Difficulty = domain.DifficultyEpic
		tk.Duration = domain.DurationDays
	})

	b, err := Explain(task, nil, DefaultConfig(), testDay)
	require.NoError(t, err)
	require.Len(t, b.Components, 7)

	byComp := map[Component]Contribution{}
	for _, c := range b.Components {
		byComp[c.Component] = c
	}
	assert.InDelta(t, 10.0, byComp[ComponentPriority].Value, 1e-9)
	assert.InDelta(t, 10.0, byComp[ComponentDifficulty].Value, 1e-9)
	assert.InDelta(t, 3.0, byComp[ComponentDuration].Value, 1e-9)
	assert.InDelta(t, 10.0, byComp[ComponentDueDate].Value, 1e-9)
	assert.Equal(t, 43, b.Total)
}
