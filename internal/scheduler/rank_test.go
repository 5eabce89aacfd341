package scheduler

import (
	"testing"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/alexanderramin/xpledger/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankTasks_OrdersByScoreThenDueThenID(t *testing.T) {
	tasks := []*domain.Task{
		{ID: "b-plain"},
		{ID: "a-plain"},
		{ID: "critical", Priority: domain.PriorityCritical},
		{ID: "done", IsComplete: true, Priority: domain.PriorityCritical},
	}

	ranked, err := RankTasks(tasks, scoring.DefaultConfig(), testDay)
	require.NoError(t, err)

	var ids []string
	for _, r := range ranked {
		ids = append(ids, r.Task.ID)
	}
	assert.Equal(t, []string{"critical", "a-plain", "b-plain"}, ids)
	assert.Greater(t, ranked[0].Score(), ranked[1].Score())
}

func TestCanonicalSort_DueDateTiebreak(t *testing.T) {
	ranked := []RankedTask{
		{Task: &domain.Task{ID: "none"}, Breakdown: scoring.Breakdown{Total: 10}},
		{Task: &domain.Task{ID: "later", DueDate: day(5)}, Breakdown: scoring.Breakdown{Total: 10}},
		{Task: &domain.Task{ID: "sooner", DueDate: day(2)}, Breakdown: scoring.Breakdown{Total: 10}},
	}

	CanonicalSort(ranked)

	assert.Equal(t, "sooner", ranked[0].Task.ID)
	assert.Equal(t, "later", ranked[1].Task.ID)
	assert.Equal(t, "none", ranked[2].Task.ID, "tasks without a due date sort last")
}

func TestRankTasks_PropagatesCycle(t *testing.T) {
	tasks := []*domain.Task{
		{ID: "a", Dependencies: []string{"b"}},
		{ID: "b", Dependencies: []string{"a"}},
	}
	_, err := RankTasks(tasks, scoring.DefaultConfig(), testDay)
	assert.ErrorIs(t, err, scoring.ErrCircularDependency)
}
