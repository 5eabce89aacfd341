package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/alexanderramin/xpledger/internal/scoring"
)

// RankedTask is an incomplete task with its score for the day.
type RankedTask struct {
	Task      *domain.Task
	Breakdown scoring.Breakdown
}

func (r RankedTask) Score() int {
	return r.Breakdown.Total
}

// RankTasks scores every incomplete task of tasks against the full task
// set and returns them in CanonicalSort order.
func RankTasks(tasks []*domain.Task, cfg scoring.Config, effective time.Time) ([]RankedTask, error) {
	all := scoring.NewTaskIndex(tasks)
	var ranked []RankedTask
	for _, t := range tasks {
		if t.IsComplete {
			continue
		}
		b, err := scoring.Explain(t, all, cfg, effective)
		if err != nil {
			return nil, fmt.Errorf("scoring task %s: %w", t.ID, err)
		}
		ranked = append(ranked, RankedTask{Task: t, Breakdown: b})
	}
	CanonicalSort(ranked)
	return ranked, nil
}

// CanonicalSort sorts ranked tasks by the deterministic canonical rules:
// 1. Score: higher first
// 2. Due date: earliest first (nil last)
// 3. Task ID: lexical ascending
func CanonicalSort(ranked []RankedTask) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		// 1. Score (higher first)
		if a.Score() != b.Score() {
			return a.Score() > b.Score()
		}

		// 2. Due date (earliest first, nil last)
		dueDateA, dueDateB := a.Task.DueDate, b.Task.DueDate
		if (dueDateA == nil) != (dueDateB == nil) {
			return dueDateA != nil // non-nil before nil
		}
		if dueDateA != nil && dueDateB != nil && !dueDateA.Equal(*dueDateB) {
			return dueDateA.Before(*dueDateB)
		}

		// 3. Task ID (lexical)
		return a.Task.ID < b.Task.ID
	})
}
