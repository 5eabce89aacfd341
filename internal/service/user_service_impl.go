package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/alexanderramin/xpledger/internal/repository"
	"github.com/google/uuid"
)

type userService struct {
	store    repository.UserStore
	now      func() time.Time
	observer UseCaseObserver
}

func NewUserService(store repository.UserStore, observers ...UseCaseObserver) UserService {
	return &userService{
		store:    store,
		now:      func() time.Time { return time.Now().UTC() },
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *userService) Get(ctx context.Context, username string) (*domain.User, error) {
	return loadOrNew(ctx, s.store, username)
}

func (s *userService) AddTask(ctx context.Context, username string, t *domain.Task) (err error) {
	fields := map[string]any{"user": username}
	defer observe(ctx, s.observer, "add-task", s.now(), fields, &err)

	u, err := loadOrNew(ctx, s.store, username)
	if err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	fields["task"] = t.ID
	if err = validateNewTask(u, t); err != nil {
		return err
	}
	if t.CreationDate == nil {
		now := s.now()
		t.CreationDate = &now
	}
	u.Tasks = append(u.Tasks, t)
	return s.store.SaveUser(ctx, u)
}

func validateNewTask(u *domain.User, t *domain.Task) error {
	if u.FindTask(t.ID) != nil {
		return fmt.Errorf("task %s: %w", t.ID, ErrTaskExists)
	}
	if t.Title == "" {
		return fmt.Errorf("task %s has no title: %w", t.ID, ErrInvalidTask)
	}
	if t.Priority != "" && !domain.ValidPriorities[t.Priority] {
		return fmt.Errorf("unknown priority %q: %w", t.Priority, ErrInvalidTask)
	}
	if t.Difficulty != "" && !domain.ValidDifficulties[t.Difficulty] {
		return fmt.Errorf("unknown difficulty %q: %w", t.Difficulty, ErrInvalidTask)
	}
	if t.Duration != "" && !domain.ValidDurations[t.Duration] {
		return fmt.Errorf("unknown duration %q: %w", t.Duration, ErrInvalidTask)
	}
	for _, dep := range t.Dependencies {
		if dep == t.ID || u.FindTask(dep) == nil {
			return fmt.Errorf("dependency %s of task %s: %w", dep, t.ID, ErrTaskNotFound)
		}
	}
	return nil
}

func (s *userService) SetVacation(ctx context.Context, username string, on bool) (err error) {
	defer observe(ctx, s.observer, "set-vacation", s.now(), map[string]any{"user": username, "on": on}, &err)

	u, err := loadOrNew(ctx, s.store, username)
	if err != nil {
		return err
	}
	u.VacationMode = on
	return s.store.SaveUser(ctx, u)
}
