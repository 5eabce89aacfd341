package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/google/uuid"
)

// ErrInvalidAmount indicates a caller passed a non-positive withdrawal.
var ErrInvalidAmount = errors.New("amount must be positive")

// UserSaver persists a user aggregate. Backends in the repository package
// satisfy it.
type UserSaver interface {
	SaveUser(ctx context.Context, u *domain.User) error
}

// Movement is one XP gain or loss to post.
type Movement struct {
	Amount      int
	Source      domain.XPSource
	TaskID      *string
	Description string
	// GameDate is the simulated day the movement belongs to. Zero means
	// the current day.
	GameDate time.Time
	// Defer skips persistence so a caller can save once after a batch.
	Defer bool
}

// Ledger posts movements onto a user and saves the result.
type Ledger struct {
	saver UserSaver
	now   func() time.Time
	newID func() string
}

type Option func(*Ledger)

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

// New returns a Ledger that saves through saver. A nil saver never persists.
func New(saver UserSaver, opts ...Option) *Ledger {
	l := &Ledger{
		saver: saver,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add posts m and saves unless m.Defer is set. It returns the row that was
// created or updated, nil for a zero amount.
func (l *Ledger) Add(ctx context.Context, u *domain.User, m Movement) (*domain.XPTransaction, error) {
	tx := l.post(u, m)
	if tx == nil || m.Defer {
		return tx, nil
	}
	if err := l.Save(ctx, u); err != nil {
		return tx, err
	}
	return tx, nil
}

// Withdraw spends points from the user's total. It reports false without
// touching the user when the balance is too small.
func (l *Ledger) Withdraw(ctx context.Context, u *domain.User, points int) (bool, error) {
	if points <= 0 {
		return false, fmt.Errorf("withdrawing %d XP: %w", points, ErrInvalidAmount)
	}
	if points > u.TotalXP {
		return false, nil
	}

	now := l.now()
	day := domain.DayOf(now)
	u.XPTransactions = append(u.XPTransactions, &domain.XPTransaction{
		ID:          l.newID(),
		Amount:      -points,
		Source:      domain.SourceWithdrawal,
		Timestamp:   now,
		Description: fmt.Sprintf("Withdrew %d XP", points),
		GameDate:    &day,
		EntryCount:  1,
	})
	u.TotalXP -= points

	if err := l.Save(ctx, u); err != nil {
		return true, err
	}
	return true, nil
}

// Save persists u through the ledger's saver, if any. Callers that posted
// deferred movements use it to write the batch once.
func (l *Ledger) Save(ctx context.Context, u *domain.User) error {
	if l.saver == nil {
		return nil
	}
	if err := l.saver.SaveUser(ctx, u); err != nil {
		return fmt.Errorf("saving ledger for %s: %w", u.Username, err)
	}
	return nil
}

// post folds m into the user's running total and ledger. Movements of the
// same sign on the same game day share one daily_earned or daily_lost row.
func (l *Ledger) post(u *domain.User, m Movement) *domain.XPTransaction {
	if m.Amount == 0 {
		return nil
	}
	now := l.now()
	day := domain.DayOf(now)
	if !m.GameDate.IsZero() {
		day = domain.DayOf(m.GameDate)
	}

	u.TotalXP += m.Amount

	source := domain.SourceDailyLost
	if m.Amount > 0 {
		source = domain.SourceDailyEarned
	}

	if row := findDailyRow(u, source, day); row != nil {
		row.Amount += m.Amount
		row.EntryCount++
		row.Timestamp = now
		if row.TaskID != nil && (m.TaskID == nil || *row.TaskID != *m.TaskID) {
			row.TaskID = nil
		}
		row.Description = describeDaily(row, m)
		return row
	}

	row := &domain.XPTransaction{
		ID:         l.newID(),
		Amount:     m.Amount,
		Source:     source,
		Timestamp:  now,
		TaskID:     m.TaskID,
		GameDate:   &day,
		EntryCount: 1,
	}
	row.Description = describeDaily(row, m)
	u.XPTransactions = append(u.XPTransactions, row)
	return row
}

func findDailyRow(u *domain.User, source domain.XPSource, day time.Time) *domain.XPTransaction {
	for _, tx := range u.XPTransactions {
		if tx.Source == source && tx.GameDate != nil && domain.SameDay(*tx.GameDate, day) {
			return tx
		}
	}
	return nil
}

func describeDaily(row *domain.XPTransaction, latest Movement) string {
	verb, amount := "earned", row.Amount
	if row.Amount < 0 {
		verb, amount = "lost", -row.Amount
	}
	entries := "entry"
	if row.EntryCount != 1 {
		entries = "entries"
	}
	desc := fmt.Sprintf("Daily XP %s on %s: %d across %d %s",
		verb, row.GameDate.Format(domain.DateLayout), amount, row.EntryCount, entries)
	if latest.Description != "" {
		desc += fmt.Sprintf(" (latest %s: %s)", latest.Source, latest.Description)
	}
	return desc
}
