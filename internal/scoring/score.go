package scoring

import (
	"math"
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
)

// Breakdown itemises how a task's score was assembled.
type Breakdown struct {
	TaskID          string
	BaseScore       float64
	StartDateBonus  float64
	StreakBonus     float64
	Components      []Contribution
	DependencyBonus float64
	Total           int
}

// AdditiveBase is the part of the score that no multiplier touches.
func (b Breakdown) AdditiveBase() float64 {
	return b.BaseScore + b.StartDateBonus + b.StreakBonus
}

// CalculateScore returns the integer score of task on the effective day.
// When all is nil the dependency bonus is skipped. The only error is a
// *CycleError from the dependency walk.
func CalculateScore(task *domain.Task, all TaskIndex, cfg Config, effective time.Time) (int, error) {
	b, err := Explain(task, all, cfg, effective)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

// Explain is CalculateScore with the full breakdown.
func Explain(task *domain.Task, all TaskIndex, cfg Config, effective time.Time) (Breakdown, error) {
	return explain(task, all, MergeWithDefaults(cfg), effective, nil)
}

func explain(task *domain.Task, all TaskIndex, cfg Config, effective time.Time, path *pathSet) (Breakdown, error) {
	base := cfg.BaseScore
	b := Breakdown{
		TaskID:         task.ID,
		BaseScore:      base,
		StartDateBonus: StartDateAgingBonus(task, cfg.DueDateProximity, base, effective),
		StreakBonus:    StreakBonusFor(task, cfg.HabitStreakBonus),
	}

	for _, cv := range componentMultipliers(task, cfg, effective) {
		b.Components = append(b.Components,
			weighted(cv.comp, cv.multiplier, Delta(cv.multiplier), cfg.weight(cv.comp), base))
	}

	if all != nil {
		bonus, err := dependencyBonus(task, all, cfg, effective, path)
		if err != nil {
			return Breakdown{}, err
		}
		b.DependencyBonus = bonus
	}

	b.Total = int(math.Round(b.AdditiveBase() + Sum(b.Components) + b.DependencyBonus))
	return b, nil
}
