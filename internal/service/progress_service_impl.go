package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/xpledger/internal/badges"
	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/alexanderramin/xpledger/internal/ledger"
	"github.com/alexanderramin/xpledger/internal/repository"
	"github.com/alexanderramin/xpledger/internal/scheduler"
	"github.com/alexanderramin/xpledger/internal/scoring"
	"github.com/google/uuid"
)

type progressService struct {
	store    repository.UserStore
	cfg      scoring.Config
	ledger   *ledger.Ledger
	badges   *badges.Evaluator
	now      func() time.Time
	newID    func() string
	observer UseCaseObserver
}

type ProgressOption func(*progressService)

// WithClock fixes the wall clock used for ledger timestamps and badge dates.
func WithClock(now func() time.Time) ProgressOption {
	return func(s *progressService) { s.now = now }
}

// WithIDGenerator sets how ledger rows and habit instances get their ids.
func WithIDGenerator(newID func() string) ProgressOption {
	return func(s *progressService) { s.newID = newID }
}

func WithObserver(o UseCaseObserver) ProgressOption {
	return func(s *progressService) {
		if o != nil {
			s.observer = o
		}
	}
}

func NewProgressService(store repository.UserStore, cfg scoring.Config, defs []badges.Definition, opts ...ProgressOption) ProgressService {
	s := &progressService{
		store:    store,
		cfg:      scoring.MergeWithDefaults(cfg),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.New().String() },
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ledger = ledger.New(store, ledger.WithClock(s.now), ledger.WithIDGenerator(s.newID))
	s.badges = badges.NewEvaluator(defs, store, badges.WithClock(s.now))
	return s
}

func (s *progressService) load(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.store.LoadUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", username, err)
	}
	return u, nil
}

// CompleteTask awards the task's score for date, marks it complete and,
// for habits, queues the next instance. Badges are re-evaluated and the
// user is saved once.
func (s *progressService) CompleteTask(ctx context.Context, username, taskID string, date time.Time) (res *CompletionResult, err error) {
	fields := map[string]any{"user": username, "task": taskID}
	defer observe(ctx, s.observer, "complete-task", s.now(), fields, &err)

	u, err := s.load(ctx, username)
	if err != nil {
		return nil, err
	}
	t := u.FindTask(taskID)
	if t == nil {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrTaskNotFound)
	}
	if t.IsComplete {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrTaskCompleted)
	}

	xp, err := scoring.CalculateScore(t, scoring.NewTaskIndex(u.Tasks), s.cfg, date)
	if err != nil {
		return nil, err
	}
	t.MarkComplete(s.now())
	res = &CompletionResult{Task: t, XP: xp}

	if t.IsHabit {
		res.Next = t.NextInstance(s.newID(), date)
		u.Tasks = append(u.Tasks, res.Next)
	}

	id := t.ID
	_, err = s.ledger.Add(ctx, u, ledger.Movement{
		Amount:      xp,
		Source:      domain.SourceTaskCompletion,
		TaskID:      &id,
		Description: domain.CoalesceStr(t.Title, t.ID),
		GameDate:    date,
		Defer:       true,
	})
	if err != nil {
		return nil, err
	}
	res.Badges = badges.CheckBadges(u, s.badges.Definitions(), s.now())
	fields["xp"] = xp
	fields["badges"] = len(res.Badges)

	if err := s.ledger.Save(ctx, u); err != nil {
		return nil, err
	}
	return res, nil
}

// AdvanceTo runs the daily penalty pass for every day after the user's
// last processed day up to and including date. A user never processed
// before starts at date. Overdue habits lose their current streak.
func (s *progressService) AdvanceTo(ctx context.Context, username string, date time.Time) (res *AdvanceResult, err error) {
	fields := map[string]any{"user": username}
	defer observe(ctx, s.observer, "advance", s.now(), fields, &err)

	u, err := s.load(ctx, username)
	if err != nil {
		return nil, err
	}

	target := domain.DayOf(date)
	day := target
	if u.LastProcessedDate != nil {
		day = domain.DayOf(*u.LastProcessedDate).AddDate(0, 0, 1)
	}

	res = &AdvanceResult{}
	for ; !day.After(target); day = day.AddDate(0, 0, 1) {
		// The penalty save for a day also records it as processed, so a
		// retry after a failed later day does not charge it again.
		processed := day
		u.LastProcessedDate = &processed
		dr, err := scheduler.ApplyDailyPenalties(ctx, u, s.cfg, day, s.ledger)
		if err != nil {
			return nil, err
		}
		for _, p := range dr.Penalties {
			if t := u.FindTask(p.TaskID); t != nil && t.IsHabit {
				t.StreakCurrent = 0
			}
		}
		res.Days = append(res.Days, dr)
	}
	fields["days"] = len(res.Days)
	fields["xp_lost"] = res.XPLost()
	if len(res.Days) == 0 {
		return res, nil
	}

	// Persists penalty-free days and streak resets.
	if err := s.store.SaveUser(ctx, u); err != nil {
		return nil, fmt.Errorf("recording last processed day: %w", err)
	}
	return res, nil
}

func (s *progressService) Withdraw(ctx context.Context, username string, points int) (ok bool, err error) {
	defer observe(ctx, s.observer, "withdraw", s.now(), map[string]any{"user": username, "points": points}, &err)

	u, err := s.load(ctx, username)
	if err != nil {
		return false, err
	}
	return s.ledger.Withdraw(ctx, u, points)
}

func (s *progressService) CheckBadges(ctx context.Context, username string) ([]*domain.Badge, error) {
	u, err := s.load(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.badges.Check(ctx, u)
}
