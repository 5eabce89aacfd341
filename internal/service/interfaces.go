package service

import (
	"context"
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/alexanderramin/xpledger/internal/scheduler"
	"github.com/alexanderramin/xpledger/internal/scoring"
)

type UserService interface {
	// Get loads a user, returning an empty one for unknown names.
	Get(ctx context.Context, username string) (*domain.User, error)
	AddTask(ctx context.Context, username string, t *domain.Task) error
	SetVacation(ctx context.Context, username string, on bool) error
}

type ScoreService interface {
	Rank(ctx context.Context, username string, date time.Time) ([]scheduler.RankedTask, error)
	Explain(ctx context.Context, username, taskID string, date time.Time) (*TaskExplanation, error)
}

type ProgressService interface {
	CompleteTask(ctx context.Context, username, taskID string, date time.Time) (*CompletionResult, error)
	AdvanceTo(ctx context.Context, username string, date time.Time) (*AdvanceResult, error)
	Withdraw(ctx context.Context, username string, points int) (bool, error)
	CheckBadges(ctx context.Context, username string) ([]*domain.Badge, error)
}

// TaskExplanation pairs a task's score with what it would cost if overdue.
type TaskExplanation struct {
	Task    *domain.Task
	Score   scoring.Breakdown
	Penalty scoring.PenaltyBreakdown
}

// CompletionResult describes what completing a task earned.
type CompletionResult struct {
	Task *domain.Task
	XP   int
	// Next is the follow-up instance created when a habit is completed.
	Next   *domain.Task
	Badges []*domain.Badge
}

// AdvanceResult lists the days processed by AdvanceTo.
type AdvanceResult struct {
	Days []scheduler.DayResult
}

func (r *AdvanceResult) XPLost() int {
	total := 0
	for _, d := range r.Days {
		total += d.Total()
	}
	return total
}
