package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeWithDefaults_Idempotent(t *testing.T) {
	partial := Config{
		BaseScore:           7,
		ComponentWeights:    map[Component]float64{ComponentPriority: 3},
		PriorityMultipliers: MultiplierTable[domain.Priority]{domain.PriorityHigh: 4},
		AgeFactor:           TimeFactor{Enabled: true, MultiplierPerUnit: 0.2},
	}

	once := MergeWithDefaults(partial)
	twice := MergeWithDefaults(once)
	assert.Equal(t, once, twice)
}

func TestMergeWithDefaults_FillsMissingKeys(t *testing.T) {
	merged := MergeWithDefaults(Config{
		ComponentWeights:    map[Component]float64{ComponentPriority: 3},
		PriorityMultipliers: MultiplierTable[domain.Priority]{domain.PriorityHigh: 4},
	})
	def := DefaultConfig()

	assert.Equal(t, 3.0, merged.ComponentWeights[ComponentPriority], "override kept")
	assert.Equal(t, def.ComponentWeights[ComponentDueDate], merged.ComponentWeights[ComponentDueDate])
	assert.Equal(t, 4.0, merged.PriorityMultipliers[domain.PriorityHigh])
	assert.Equal(t, def.PriorityMultipliers[domain.PriorityCritical], merged.PriorityMultipliers[domain.PriorityCritical])
	assert.Len(t, merged.DifficultyMultipliers, len(def.DifficultyMultipliers))
	assert.Equal(t, def.AgeFactor.Unit, merged.AgeFactor.Unit)
	assert.Equal(t, def.AgeFactor.MaxMultiplier, merged.AgeFactor.MaxMultiplier)
	assert.NotNil(t, merged.TagMultipliers)
	assert.NotNil(t, merged.PenaltyInvertWeights)
}

func TestMergeWithDefaults_DoesNotAliasInput(t *testing.T) {
	weights := map[Component]float64{ComponentPriority: 3}
	merged := MergeWithDefaults(Config{ComponentWeights: weights})
	merged.ComponentWeights[ComponentPriority] = 99
	assert.Equal(t, 3.0, weights[ComponentPriority])
	assert.Len(t, weights, 1)
}

func TestValidate_DefaultConfig(t *testing.T) {
	assert.NoError(t, Validate(DefaultConfig()))
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"multiplier below one", func(c *Config) { c.DifficultyMultipliers[domain.DifficultyEasy] = 0.9 }, "difficulty_multipliers.easy"},
		{"tag below one", func(c *Config) { c.TagMultipliers["chore"] = 0.5 }, "tag_multipliers.chore"},
		{"percentage above one", func(c *Config) { c.DependencyChain.DependentScorePercentage = 1.5 }, "dependency_chain.dependent_score_percentage"},
		{"negative percentage", func(c *Config) { c.DependencyChain.DependentScorePercentage = -0.1 }, "dependency_chain.dependent_score_percentage"},
		{"unknown unit", func(c *Config) { c.AgeFactor.Unit = "months" }, "age_factor.unit"},
		{"negative rate", func(c *Config) { c.DueDateProximity.MultiplierPerUnit = -1 }, "due_date_proximity.multiplier_per_unit"},
		{"max below one", func(c *Config) { c.DueDateProximity.MaxMultiplier = 0.5 }, "due_date_proximity.max_multiplier"},
		{"NaN base", func(c *Config) { c.BaseScore = math.NaN() }, "base_score"},
		{"negative base", func(c *Config) { c.BaseScore = -1 }, "base_score"},
		{"infinite weight", func(c *Config) { c.ComponentWeights[ComponentAge] = math.Inf(1) }, "component_weights.age"},
		{"negative streak bonus", func(c *Config) { c.HabitStreakBonus.MaxBonus = -5 }, "habit_streak_bonus"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestMultiplierTable_LookupAndCeiling(t *testing.T) {
	table := MultiplierTable[domain.Duration]{domain.DurationDay: 1.4, domain.DurationDays: 1.9}
	assert.Equal(t, 1.4, table.Lookup(domain.DurationDay))
	assert.Equal(t, 1.0, table.Lookup("fortnight"))
	assert.Equal(t, 1.9, table.Ceiling())
	assert.Equal(t, 1.0, MultiplierTable[string]{}.Ceiling())
}
