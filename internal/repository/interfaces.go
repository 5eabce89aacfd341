package repository

import (
	"context"

	"github.com/alexanderramin/xpledger/internal/domain"
)

// UserStore persists whole user aggregates: tasks, ledger and badges
// travel together.
type UserStore interface {
	// LoadUser returns ErrNotFound (wrapped) for unknown usernames.
	LoadUser(ctx context.Context, username string) (*domain.User, error)
	// SaveUser replaces everything stored for u.Username.
	SaveUser(ctx context.Context, u *domain.User) error
	ListUsers(ctx context.Context) ([]string, error)
}
