package scoring

import (
	"math"
	"slices"
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
)

// Contribution is one weighted component of a score or penalty.
type Contribution struct {
	Component  Component
	Multiplier float64
	Delta      float64
	Weight     float64
	Value      float64
}

// Delta converts a multiplier to its distance above neutral. Multipliers
// below neutral contribute nothing.
func Delta(multiplier float64) float64 {
	return math.Max(0, multiplier-Neutral)
}

// InvertedDelta measures how far multiplier sits below ceiling, scaled to
// [0,1]. The lowest table entry yields 1 and the ceiling yields 0.
func InvertedDelta(multiplier, ceiling float64) float64 {
	if ceiling <= Neutral {
		return 0
	}
	return math.Max(0, (ceiling-multiplier)/(ceiling-Neutral))
}

func weighted(comp Component, multiplier, delta, weight, base float64) Contribution {
	return Contribution{
		Component:  comp,
		Multiplier: multiplier,
		Delta:      delta,
		Weight:     weight,
		Value:      base * weight * delta,
	}
}

// Sum adds the values of all contributions.
func Sum(parts []Contribution) float64 {
	var total float64
	for _, p := range parts {
		total += p.Value
	}
	return total
}

type componentValue struct {
	comp       Component
	multiplier float64
}

// componentMultipliers evaluates every multiplicative component for task.
func componentMultipliers(task *domain.Task, cfg Config, effective time.Time) []componentValue {
	return []componentValue{
		{ComponentPriority, cfg.PriorityMultipliers.Lookup(task.Priority)},
		{ComponentDifficulty, cfg.DifficultyMultipliers.Lookup(task.Difficulty)},
		{ComponentDuration, cfg.DurationMultipliers.Lookup(task.Duration)},
		{ComponentAge, AgeMultiplier(task.CreationDate, cfg.AgeFactor, effective)},
		{ComponentDueDate, DueDateMultiplier(task.DueDate, cfg.DueDateProximity, effective)},
		{ComponentTag, TagMultiplier(task.Tags, cfg.TagMultipliers)},
		{ComponentProject, cfg.ProjectMultipliers.Lookup(task.ProjectName())},
	}
}

// TagMultiplier returns the largest multiplier among tags, neutral when no
// tag is configured.
func TagMultiplier(tags []string, table MultiplierTable[string]) float64 {
	if len(tags) == 0 {
		return Neutral
	}
	ms := make([]float64, 0, len(tags))
	for _, tag := range tags {
		ms = append(ms, table.Lookup(tag))
	}
	return math.Max(Neutral, slices.Max(ms))
}
