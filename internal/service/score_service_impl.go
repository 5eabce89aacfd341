package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/xpledger/internal/repository"
	"github.com/alexanderramin/xpledger/internal/scheduler"
	"github.com/alexanderramin/xpledger/internal/scoring"
)

type scoreService struct {
	store    repository.UserStore
	cfg      scoring.Config
	observer UseCaseObserver
}

func NewScoreService(store repository.UserStore, cfg scoring.Config, observers ...UseCaseObserver) ScoreService {
	return &scoreService{
		store:    store,
		cfg:      scoring.MergeWithDefaults(cfg),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scoreService) Rank(ctx context.Context, username string, date time.Time) (ranked []scheduler.RankedTask, err error) {
	fields := map[string]any{"user": username}
	defer observe(ctx, s.observer, "rank", time.Now(), fields, &err)

	u, err := loadOrNew(ctx, s.store, username)
	if err != nil {
		return nil, err
	}
	ranked, err = scheduler.RankTasks(u.Tasks, s.cfg, date)
	if err != nil {
		return nil, err
	}
	fields["tasks"] = len(ranked)
	return ranked, nil
}

func (s *scoreService) Explain(ctx context.Context, username, taskID string, date time.Time) (*TaskExplanation, error) {
	u, err := loadOrNew(ctx, s.store, username)
	if err != nil {
		return nil, err
	}
	t := u.FindTask(taskID)
	if t == nil {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrTaskNotFound)
	}
	b, err := scoring.Explain(t, scoring.NewTaskIndex(u.Tasks), s.cfg, date)
	if err != nil {
		return nil, err
	}
	return &TaskExplanation{
		Task:    t,
		Score:   b,
		Penalty: scoring.ExplainPenalty(t, s.cfg, date),
	}, nil
}
