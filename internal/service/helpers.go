package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/alexanderramin/xpledger/internal/repository"
)

// loadOrNew returns the stored user, or a fresh one when none exists yet.
func loadOrNew(ctx context.Context, store repository.UserStore, username string) (*domain.User, error) {
	u, err := store.LoadUser(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.User{Username: username}, nil
	}
	return u, err
}
