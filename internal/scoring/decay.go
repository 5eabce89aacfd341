package scoring

import (
	"math"
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
)

// AgeMultiplier grows linearly with the number of whole units since
// creation and is clamped to [1, MaxMultiplier].
func AgeMultiplier(created *time.Time, f TimeFactor, effective time.Time) float64 {
	if created == nil || !f.active() {
		return Neutral
	}
	ageDays := max(0, domain.DaysBetween(*created, effective))
	units := ageDays / f.Unit.Days()
	m := Neutral + float64(units)*f.MultiplierPerUnit
	return clamp(m, Neutral, f.MaxMultiplier)
}

// DueDateMultiplier is a V-shaped urgency curve. It stays neutral while the
// due date is more than maxUnits away, rises as the date approaches, peaks
// on the due date, and for overdue tasks grows again with the overdue
// distance until it is clamped at MaxMultiplier.
func DueDateMultiplier(due *time.Time, f TimeFactor, effective time.Time) float64 {
	if due == nil || !f.active() || f.MaxMultiplier <= Neutral {
		return Neutral
	}
	headroom := f.MaxMultiplier - Neutral
	daysUntil := domain.DaysBetween(effective, *due)
	unitsUntil := float64(daysUntil) / float64(f.Unit.Days())
	maxUnits := headroom / f.MultiplierPerUnit

	if unitsUntil > maxUnits {
		return Neutral
	}

	var proximity float64
	if daysUntil < 0 {
		proximity = math.Min(math.Abs(unitsUntil), maxUnits)
	} else {
		proximity = math.Max(0, maxUnits-unitsUntil)
	}
	return Neutral + math.Min(headroom, proximity*f.MultiplierPerUnit)
}

// StartDateAgingBonus is an additive bonus for tasks whose start date has
// passed. It reuses the due-date knob and is capped at
// baseScore × (MaxMultiplier − 1). Overdue tasks get nothing here since the
// due-date component already rewards them.
func StartDateAgingBonus(task *domain.Task, f TimeFactor, baseScore float64, effective time.Time) float64 {
	if task.StartDate == nil || !f.active() {
		return 0
	}
	daysPast := domain.DaysBetween(*task.StartDate, effective)
	if daysPast < 0 || task.IsOverdue(effective) {
		return 0
	}
	bonus := float64(daysPast) * f.MultiplierPerUnit * baseScore
	limit := math.Max(0, baseScore*(f.MaxMultiplier-Neutral))
	return math.Min(bonus, limit)
}

// StreakBonusFor returns the habit streak bonus, capped at MaxBonus.
func StreakBonusFor(task *domain.Task, b StreakBonus) float64 {
	if !task.IsHabit || !b.Enabled {
		return 0
	}
	return math.Min(float64(task.StreakCurrent)*b.BonusPerStreakDay, b.MaxBonus)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
