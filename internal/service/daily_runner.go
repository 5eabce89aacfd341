package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/xpledger/internal/repository"
	"github.com/robfig/cron/v3"
)

// DailyRunner advances every stored user to the current day on a cron
// schedule.
type DailyRunner struct {
	cron     *cron.Cron
	store    repository.UserStore
	progress ProgressService
	logger   *slog.Logger
	now      func() time.Time
}

func NewDailyRunner(store repository.UserStore, progress ProgressService, logger *slog.Logger) *DailyRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &DailyRunner{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		store:    store,
		progress: progress,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Schedule registers the daily run at an HH:MM UTC time.
func (r *DailyRunner) Schedule(at string) (cron.EntryID, error) {
	spec, err := buildDailySpec(at)
	if err != nil {
		return 0, err
	}
	return r.cron.AddFunc(spec, func() {
		if err := r.RunOnce(context.Background()); err != nil {
			r.logger.Error("daily run failed", "error", err)
		}
	})
}

// RunOnce advances every user to today. A failure for one user does not
// stop the others; the first error is returned.
func (r *DailyRunner) RunOnce(ctx context.Context) error {
	users, err := r.store.ListUsers(ctx)
	if err != nil {
		return err
	}
	today := r.now()
	var firstErr error
	for _, name := range users {
		res, err := r.progress.AdvanceTo(ctx, name, today)
		if err != nil {
			r.logger.Error("advance failed", "user", name, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("advancing %s: %w", name, err)
			}
			continue
		}
		r.logger.Info("advanced", "user", name, "days", len(res.Days), "xp_lost", res.XPLost())
	}
	return firstErr
}

// Run starts the scheduler and blocks until ctx is cancelled.
func (r *DailyRunner) Run(ctx context.Context) {
	r.cron.Start()
	<-ctx.Done()
	stopped := r.cron.Stop()
	<-stopped.Done()
}

func buildDailySpec(at string) (string, error) {
	parts := strings.Split(at, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", at)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", at)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", at)
	}
	// minute hour dom month dow
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
