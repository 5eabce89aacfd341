package scoring

import (
	"maps"

	"github.com/alexanderramin/xpledger/internal/domain"
)

// Neutral is the multiplier that leaves a score unchanged.
const Neutral = 1.0

// Component names a weighted score contribution.
type Component string

const (
	ComponentPriority   Component = "priority"
	ComponentDifficulty Component = "difficulty"
	ComponentDuration   Component = "duration"
	ComponentAge        Component = "age"
	ComponentDueDate    Component = "due_date"
	ComponentTag        Component = "tag"
	ComponentProject    Component = "project"
	// ComponentBase weights the fixed contribution of a penalty.
	ComponentBase Component = "base"
)

type Unit string

const (
	UnitDays  Unit = "days"
	UnitWeeks Unit = "weeks"
)

// Days returns the length of one unit in calendar days.
func (u Unit) Days() int {
	if u == UnitWeeks {
		return 7
	}
	return 1
}

// MultiplierTable maps a stable enum name to its multiplier. Names absent
// from the table are neutral.
type MultiplierTable[K ~string] map[K]float64

func (t MultiplierTable[K]) Lookup(key K) float64 {
	if m, ok := t[key]; ok {
		return m
	}
	return Neutral
}

// Ceiling returns the largest multiplier in the table, never below Neutral.
func (t MultiplierTable[K]) Ceiling() float64 {
	ceiling := Neutral
	for _, m := range t {
		if m > ceiling {
			ceiling = m
		}
	}
	return ceiling
}

// TimeFactor configures a time-based multiplier.
type TimeFactor struct {
	Enabled           bool    `json:"enabled" yaml:"enabled"`
	Unit              Unit    `json:"unit" yaml:"unit"`
	MultiplierPerUnit float64 `json:"multiplier_per_unit" yaml:"multiplier_per_unit"`
	MaxMultiplier     float64 `json:"max_multiplier" yaml:"max_multiplier"`
}

func (f TimeFactor) active() bool {
	return f.Enabled && f.MultiplierPerUnit > 0
}

type DependencyChain struct {
	Enabled                  bool    `json:"enabled" yaml:"enabled"`
	DependentScorePercentage float64 `json:"dependent_score_percentage" yaml:"dependent_score_percentage"`
}

type StreakBonus struct {
	Enabled           bool    `json:"enabled" yaml:"enabled"`
	BonusPerStreakDay float64 `json:"bonus_per_streak_day" yaml:"bonus_per_streak_day"`
	MaxBonus          float64 `json:"max_bonus" yaml:"max_bonus"`
}

// Config holds every knob of the scoring and penalty rules. A Config is
// treated as immutable for the duration of one calculation.
type Config struct {
	BaseScore             float64                            `json:"base_score" yaml:"base_score"`
	ComponentWeights      map[Component]float64              `json:"component_weights" yaml:"component_weights"`
	PriorityMultipliers   MultiplierTable[domain.Priority]   `json:"priority_multipliers" yaml:"priority_multipliers"`
	DifficultyMultipliers MultiplierTable[domain.Difficulty] `json:"difficulty_multipliers" yaml:"difficulty_multipliers"`
	DurationMultipliers   MultiplierTable[domain.Duration]   `json:"duration_multipliers" yaml:"duration_multipliers"`
	AgeFactor             TimeFactor                         `json:"age_factor" yaml:"age_factor"`
	DueDateProximity      TimeFactor                         `json:"due_date_proximity" yaml:"due_date_proximity"`
	DependencyChain       DependencyChain                    `json:"dependency_chain" yaml:"dependency_chain"`
	PenaltyInvertWeights  map[Component]bool                 `json:"penalty_invert_weights" yaml:"penalty_invert_weights"`
	HabitStreakBonus      StreakBonus                        `json:"habit_streak_bonus" yaml:"habit_streak_bonus"`
	TagMultipliers        MultiplierTable[string]            `json:"tag_multipliers" yaml:"tag_multipliers"`
	ProjectMultipliers    MultiplierTable[string]            `json:"project_multipliers" yaml:"project_multipliers"`
}

// DefaultConfig returns the built-in scoring rules.
func DefaultConfig() Config {
	return Config{
		BaseScore: 10,
		ComponentWeights: map[Component]float64{
			ComponentPriority:   1.0,
			ComponentDifficulty: 1.0,
			ComponentDuration:   0.5,
			ComponentAge:        0.5,
			ComponentDueDate:    1.0,
			ComponentTag:        0.5,
			ComponentProject:    0.5,
			ComponentBase:       1.0,
		},
		PriorityMultipliers: MultiplierTable[domain.Priority]{
			domain.PriorityLow:      1.0,
			domain.PriorityMedium:   1.2,
			domain.PriorityHigh:     1.5,
			domain.PriorityCritical: 2.0,
		},
		DifficultyMultipliers: MultiplierTable[domain.Difficulty]{
			domain.DifficultyTrivial: 1.0,
			domain.DifficultyEasy:    1.1,
			domain.DifficultyMedium:  1.3,
			domain.DifficultyHard:    1.6,
			domain.DifficultyEpic:    2.0,
		},
		DurationMultipliers: MultiplierTable[domain.Duration]{
			domain.DurationMinutes: 1.0,
			domain.DurationHour:    1.1,
			domain.DurationHours:   1.2,
			domain.DurationDay:     1.4,
			domain.DurationDays:    1.6,
		},
		AgeFactor: TimeFactor{
			Enabled:           true,
			Unit:              UnitWeeks,
			MultiplierPerUnit: 0.05,
			MaxMultiplier:     1.5,
		},
		DueDateProximity: TimeFactor{
			Enabled:           true,
			Unit:              UnitDays,
			MultiplierPerUnit: 0.1,
			MaxMultiplier:     2.0,
		},
		DependencyChain: DependencyChain{
			Enabled:                  true,
			DependentScorePercentage: 0.1,
		},
		PenaltyInvertWeights: map[Component]bool{
			ComponentPriority:   false,
			ComponentDifficulty: false,
			ComponentDuration:   false,
			ComponentAge:        false,
			ComponentDueDate:    false,
			ComponentTag:        false,
			ComponentProject:    false,
			ComponentBase:       false,
		},
		HabitStreakBonus: StreakBonus{
			Enabled:           true,
			BonusPerStreakDay: 1.0,
			MaxBonus:          20,
		},
		TagMultipliers:     MultiplierTable[string]{},
		ProjectMultipliers: MultiplierTable[string]{},
	}
}

// MergeWithDefaults returns a copy of cfg in which every missing map key
// and every unset time-factor unit or ceiling is filled from DefaultConfig.
// Merging an already merged config is a no-op.
func MergeWithDefaults(cfg Config) Config {
	def := DefaultConfig()
	out := cfg

	out.ComponentWeights = mergeMap(cfg.ComponentWeights, def.ComponentWeights)
	out.PenaltyInvertWeights = mergeMap(cfg.PenaltyInvertWeights, def.PenaltyInvertWeights)
	out.PriorityMultipliers = mergeMap(cfg.PriorityMultipliers, def.PriorityMultipliers)
	out.DifficultyMultipliers = mergeMap(cfg.DifficultyMultipliers, def.DifficultyMultipliers)
	out.DurationMultipliers = mergeMap(cfg.DurationMultipliers, def.DurationMultipliers)
	out.TagMultipliers = mergeMap(cfg.TagMultipliers, def.TagMultipliers)
	out.ProjectMultipliers = mergeMap(cfg.ProjectMultipliers, def.ProjectMultipliers)

	out.AgeFactor = mergeTimeFactor(cfg.AgeFactor, def.AgeFactor)
	out.DueDateProximity = mergeTimeFactor(cfg.DueDateProximity, def.DueDateProximity)
	return out
}

func mergeMap[M ~map[K]V, K comparable, V any](m, defaults M) M {
	out := make(M, len(defaults)+len(m))
	maps.Copy(out, defaults)
	maps.Copy(out, m)
	return out
}

func mergeTimeFactor(f, def TimeFactor) TimeFactor {
	if f.Unit == "" {
		f.Unit = def.Unit
	}
	if f.MaxMultiplier == 0 {
		f.MaxMultiplier = def.MaxMultiplier
	}
	return f
}

// weight returns the configured weight of comp, 0 when absent.
func (c Config) weight(comp Component) float64 {
	return c.ComponentWeights[comp]
}

// penaltyWeight returns the weight of comp for penalties, inverted when
// PenaltyInvertWeights asks for it. Non-positive weights invert to 0.
func (c Config) penaltyWeight(comp Component) float64 {
	w := c.ComponentWeights[comp]
	if !c.PenaltyInvertWeights[comp] {
		return w
	}
	if w <= 0 {
		return 0
	}
	return 1 / w
}
