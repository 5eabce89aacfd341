package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/xpledger/internal/db"
)

// FailingUoW runs transactions through a real SQLUnitOfWork but makes the
// Nth write inside each transaction fail with Err. Writes are counted from
// 1; reads are never counted.
type FailingUoW struct {
	inner  *db.SQLUnitOfWork
	FailOn int
	Err    error
}

// NewFailingUoW returns a FailingUoW over database.
func NewFailingUoW(database *sql.DB, failOn int, err error) *FailingUoW {
	return &FailingUoW{inner: db.NewSQLUnitOfWork(database), FailOn: failOn, Err: err}
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingWrites{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type failingWrites struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.writes++
	if f.writes == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
