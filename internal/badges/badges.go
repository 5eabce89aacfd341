package badges

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/alexanderramin/xpledger/internal/ledger"
)

// Criterion names an aggregate user statistic a badge can require.
type Criterion string

const (
	CriterionTasksCompleted  Criterion = "tasks_completed"
	CriterionHabitsCompleted Criterion = "habits_completed"
	CriterionStreak          Criterion = "streak"
	CriterionTotalXP         Criterion = "total_xp"
)

// Definition describes a badge and the thresholds that earn it. Meeting
// any one threshold is enough.
type Definition struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Glyph       string            `json:"glyph" yaml:"glyph"`
	Criteria    map[Criterion]int `json:"criteria" yaml:"criteria"`
}

// Stats are the cumulative figures badge criteria are checked against.
type Stats struct {
	TasksCompleted  int
	HabitsCompleted int
	MaxStreak       int
	TotalXP         int
}

// ComputeStats derives Stats from the user's tasks and XP total.
func ComputeStats(u *domain.User) Stats {
	s := Stats{TotalXP: u.TotalXP}
	for _, t := range u.Tasks {
		if t.IsHabit {
			s.MaxStreak = max(s.MaxStreak, t.StreakCurrent, t.StreakBest)
		}
		if !t.IsComplete {
			continue
		}
		if t.IsHabit {
			s.HabitsCompleted++
		} else {
			s.TasksCompleted++
		}
	}
	return s
}

func (s Stats) value(c Criterion) (int, bool) {
	switch c {
	case CriterionTasksCompleted:
		return s.TasksCompleted, true
	case CriterionHabitsCompleted:
		return s.HabitsCompleted, true
	case CriterionStreak:
		return s.MaxStreak, true
	case CriterionTotalXP:
		return s.TotalXP, true
	default:
		return 0, false
	}
}

// Satisfied reports whether any criterion of d is met by s. Unknown
// criteria never match.
func (d Definition) Satisfied(s Stats) bool {
	for c, threshold := range d.Criteria {
		if v, ok := s.value(c); ok && v >= threshold {
			return true
		}
	}
	return false
}

// Progress returns how close s is to earning d, in [0, 1], taking the
// criterion nearest to completion.
func (d Definition) Progress(s Stats) float64 {
	best := 0.0
	for c, threshold := range d.Criteria {
		v, ok := s.value(c)
		if !ok {
			continue
		}
		if threshold <= 0 {
			return 1
		}
		best = max(best, min(1, float64(v)/float64(threshold)))
	}
	return best
}

// CheckBadges awards every definition the user now satisfies and has not
// yet earned, appending them to u.Badges. Definitions without an id are
// skipped. Calling it again with unchanged stats returns nothing.
func CheckBadges(u *domain.User, defs []Definition, now time.Time) []*domain.Badge {
	stats := ComputeStats(u)
	var earned []*domain.Badge
	for _, d := range defs {
		if d.ID == "" || u.HasBadge(d.ID) || !d.Satisfied(stats) {
			continue
		}
		at := now
		b := &domain.Badge{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Glyph:       d.Glyph,
			EarnedDate:  &at,
		}
		u.Badges = append(u.Badges, b)
		earned = append(earned, b)
	}
	return earned
}

// Evaluator runs CheckBadges and persists once when anything was earned.
type Evaluator struct {
	defs  []Definition
	saver ledger.UserSaver
	now   func() time.Time
}

type Option func(*Evaluator)

func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

func NewEvaluator(defs []Definition, saver ledger.UserSaver, opts ...Option) *Evaluator {
	e := &Evaluator{
		defs:  defs,
		saver: saver,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) Definitions() []Definition {
	return e.defs
}

func (e *Evaluator) Check(ctx context.Context, u *domain.User) ([]*domain.Badge, error) {
	earned := CheckBadges(u, e.defs, e.now())
	if len(earned) == 0 || e.saver == nil {
		return earned, nil
	}
	if err := e.saver.SaveUser(ctx, u); err != nil {
		return earned, fmt.Errorf("saving badges for %s: %w", u.Username, err)
	}
	return earned, nil
}
