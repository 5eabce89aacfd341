package scoring

import (
	"math"
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
)

// PenaltyBreakdown itemises a penalty.
type PenaltyBreakdown struct {
	TaskID     string
	Base       float64
	Components []Contribution
	Total      float64
}

// CalculatePenaltyScore returns the XP a task loses on the effective day.
// Complete tasks, tasks without a due date and tasks not yet due cost
// nothing. The result is never negative.
func CalculatePenaltyScore(task *domain.Task, cfg Config, effective time.Time) float64 {
	return ExplainPenalty(task, cfg, effective).Total
}

// ExplainPenalty mirrors Explain for penalties. Each component weight may
// be inverted through PenaltyInvertWeights, and difficulty and duration use
// an inverted delta so that easy, short tasks cost more when left undone.
func ExplainPenalty(task *domain.Task, cfg Config, effective time.Time) PenaltyBreakdown {
	pb := PenaltyBreakdown{TaskID: task.ID}
	if task.IsComplete || task.DueDate == nil || domain.DaysBetween(effective, *task.DueDate) > 0 {
		return pb
	}
	cfg = MergeWithDefaults(cfg)
	base := cfg.BaseScore
	pb.Base = base * cfg.penaltyWeight(ComponentBase)

	for _, cv := range componentMultipliers(task, cfg, effective) {
		var delta float64
		switch cv.comp {
		case ComponentDifficulty:
			delta = InvertedDelta(cv.multiplier, cfg.DifficultyMultipliers.Ceiling())
		case ComponentDuration:
			delta = InvertedDelta(cv.multiplier, cfg.DurationMultipliers.Ceiling())
		default:
			delta = Delta(cv.multiplier)
		}
		pb.Components = append(pb.Components,
			weighted(cv.comp, cv.multiplier, delta, cfg.penaltyWeight(cv.comp), base))
	}

	pb.Total = math.Max(0, pb.Base+Sum(pb.Components))
	return pb
}
