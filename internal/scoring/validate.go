package scoring

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrInvalidConfig is the sentinel wrapped by every ConfigError.
var ErrInvalidConfig = errors.New("invalid scoring config")

// ConfigError reports a malformed or out-of-range config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Validate checks the bounds that keep every calculation finite: multipliers
// at or above Neutral, percentages within [0,1], non-negative rates. It
// returns the first violation found, fields visited in a stable order.
func Validate(cfg Config) error {
	if err := checkFinite("base_score", cfg.BaseScore); err != nil {
		return err
	}
	if cfg.BaseScore < 0 {
		return &ConfigError{Field: "base_score", Reason: "must be >= 0"}
	}
	for _, comp := range sortedKeys(cfg.ComponentWeights) {
		if err := checkFinite("component_weights."+string(comp), cfg.ComponentWeights[comp]); err != nil {
			return err
		}
	}
	if err := checkTable("priority_multipliers", cfg.PriorityMultipliers); err != nil {
		return err
	}
	if err := checkTable("difficulty_multipliers", cfg.DifficultyMultipliers); err != nil {
		return err
	}
	if err := checkTable("duration_multipliers", cfg.DurationMultipliers); err != nil {
		return err
	}
	if err := checkTable("tag_multipliers", cfg.TagMultipliers); err != nil {
		return err
	}
	if err := checkTable("project_multipliers", cfg.ProjectMultipliers); err != nil {
		return err
	}
	if err := checkTimeFactor("age_factor", cfg.AgeFactor); err != nil {
		return err
	}
	if err := checkTimeFactor("due_date_proximity", cfg.DueDateProximity); err != nil {
		return err
	}

	pct := cfg.DependencyChain.DependentScorePercentage
	if math.IsNaN(pct) || pct < 0 || pct > 1 {
		return &ConfigError{Field: "dependency_chain.dependent_score_percentage", Reason: "must be within [0, 1]"}
	}

	sb := cfg.HabitStreakBonus
	if err := checkFinite("habit_streak_bonus.bonus_per_streak_day", sb.BonusPerStreakDay); err != nil {
		return err
	}
	if err := checkFinite("habit_streak_bonus.max_bonus", sb.MaxBonus); err != nil {
		return err
	}
	if sb.BonusPerStreakDay < 0 || sb.MaxBonus < 0 {
		return &ConfigError{Field: "habit_streak_bonus", Reason: "bonus values must be >= 0"}
	}
	return nil
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ConfigError{Field: field, Reason: "must be a finite number"}
	}
	return nil
}

func checkTable[K ~string](field string, t MultiplierTable[K]) error {
	for _, key := range sortedKeys(t) {
		m := t[key]
		name := field + "." + string(key)
		if err := checkFinite(name, m); err != nil {
			return err
		}
		if m < Neutral {
			return &ConfigError{Field: name, Reason: fmt.Sprintf("multiplier %.2f is below 1.0", m)}
		}
	}
	return nil
}

func checkTimeFactor(field string, f TimeFactor) error {
	if f.Unit != UnitDays && f.Unit != UnitWeeks {
		return &ConfigError{Field: field + ".unit", Reason: fmt.Sprintf("unknown unit %q (want days or weeks)", f.Unit)}
	}
	if err := checkFinite(field+".multiplier_per_unit", f.MultiplierPerUnit); err != nil {
		return err
	}
	if f.MultiplierPerUnit < 0 {
		return &ConfigError{Field: field + ".multiplier_per_unit", Reason: "must be >= 0"}
	}
	if err := checkFinite(field+".max_multiplier", f.MaxMultiplier); err != nil {
		return err
	}
	if f.MaxMultiplier < Neutral {
		return &ConfigError{Field: field + ".max_multiplier", Reason: "must be >= 1.0"}
	}
	return nil
}

func sortedKeys[M ~map[K]V, K ~string, V any](m M) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
