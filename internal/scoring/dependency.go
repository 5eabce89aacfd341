package scoring

import (
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
)

// TaskIndex maps task id to task for dependency lookups.
type TaskIndex map[string]*domain.Task

func NewTaskIndex(tasks []*domain.Task) TaskIndex {
	idx := make(TaskIndex, len(tasks))
	for _, t := range tasks {
		idx[t.ID] = t
	}
	return idx
}

// Dependents returns the incomplete tasks that list id as a dependency,
// ordered by id.
func (idx TaskIndex) Dependents(id string) []*domain.Task {
	var out []*domain.Task
	for _, t := range idx {
		if !t.IsComplete && t.DependsOn(id) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b *domain.Task) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// pathSet is an immutable list of the task ids on the current walk. Each
// branch extends its parent's path, so siblings never see each other's
// visits and a task reached twice through different branches (a diamond)
// is not mistaken for a cycle.
type pathSet struct {
	id     string
	parent *pathSet
}

func (p *pathSet) contains(id string) bool {
	for n := p; n != nil; n = n.parent {
		if n.id == id {
			return true
		}
	}
	return false
}

func (p *pathSet) with(id string) *pathSet {
	return &pathSet{id: id, parent: p}
}

// ids returns the path from root to tip.
func (p *pathSet) ids() []string {
	var out []string
	for n := p; n != nil; n = n.parent {
		out = append(out, n.id)
	}
	slices.Reverse(out)
	return out
}

// DependencyChainBonus lets task borrow a share of the scores of the
// incomplete tasks that depend on it. The walk recurses through the full
// score of every dependent and fails with a *CycleError when a task is
// reached again on its own path.
//
// Cost is exponential in the depth of diamond-shaped graphs since shared
// descendants are re-scored per branch. Memoising by node would hide
// cycles that only appear on some paths, so none is done.
func DependencyChainBonus(task *domain.Task, all TaskIndex, cfg Config, effective time.Time) (float64, error) {
	return dependencyBonus(task, all, MergeWithDefaults(cfg), effective, nil)
}

func dependencyBonus(task *domain.Task, all TaskIndex, cfg Config, effective time.Time, path *pathSet) (float64, error) {
	if !cfg.DependencyChain.Enabled {
		return 0, nil
	}
	if path.contains(task.ID) {
		return 0, &CycleError{TaskID: task.ID, Path: append(path.ids(), task.ID)}
	}
	branch := path.with(task.ID)

	dependents := all.Dependents(task.ID)
	if len(dependents) == 0 {
		return 0, nil
	}

	var sum float64
	for _, d := range dependents {
		b, err := explain(d, all, cfg, effective, branch)
		if err != nil {
			return 0, err
		}
		sum += float64(b.Total)
	}
	return sum * cfg.DependencyChain.DependentScorePercentage, nil
}
