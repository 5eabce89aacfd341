package scheduler

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/alexanderramin/xpledger/internal/ledger"
	"github.com/alexanderramin/xpledger/internal/scoring"
)

// Penalty is the XP one task cost on one day.
type Penalty struct {
	TaskID string
	Title  string
	Amount int
}

// DayResult summarises one simulated day of penalties.
type DayResult struct {
	Date      time.Time
	Vacation  bool
	Penalties []Penalty
}

// Total returns the XP lost on the day.
func (r DayResult) Total() int {
	total := 0
	for _, p := range r.Penalties {
		total += p.Amount
	}
	return total
}

// ApplyDailyPenalties charges every incomplete, overdue task for the
// effective day. Nothing happens in vacation mode. Each penalty is at least
// 1 XP. Movements are posted with persistence deferred and the user is
// saved once, only if something was charged.
func ApplyDailyPenalties(ctx context.Context, u *domain.User, cfg scoring.Config, effective time.Time, l *ledger.Ledger) (DayResult, error) {
	day := domain.DayOf(effective)
	result := DayResult{Date: day}
	if u.VacationMode {
		result.Vacation = true
		return result, nil
	}

	for _, t := range u.Tasks {
		if !penalisable(t, day) {
			continue
		}
		amount := max(1, int(math.Round(scoring.CalculatePenaltyScore(t, cfg, day))))
		taskID := t.ID
		_, err := l.Add(ctx, u, ledger.Movement{
			Amount:      -amount,
			Source:      domain.SourcePenalty,
			TaskID:      &taskID,
			Description: "Overdue: " + domain.CoalesceStr(t.Title, t.ID),
			GameDate:    day,
			Defer:       true,
		})
		if err != nil {
			return result, fmt.Errorf("posting penalty for task %s: %w", t.ID, err)
		}
		result.Penalties = append(result.Penalties, Penalty{TaskID: t.ID, Title: t.Title, Amount: amount})
	}

	if len(result.Penalties) == 0 {
		return result, nil
	}
	if err := l.Save(ctx, u); err != nil {
		return result, fmt.Errorf("saving penalties for %s: %w", day.Format(domain.DateLayout), err)
	}
	return result, nil
}

// penalisable reports whether t is incomplete, was created before day, and
// is due on or before day. Tasks without a creation date qualify.
func penalisable(t *domain.Task, day time.Time) bool {
	if t.IsComplete || t.DueDate == nil {
		return false
	}
	if t.CreationDate != nil && domain.DaysBetween(*t.CreationDate, day) <= 0 {
		return false
	}
	return domain.DaysBetween(day, *t.DueDate) <= 0
}
