package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx, so stores can run the same
// queries inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
	_ DBTX = boundDBTX{}
)

// Bind returns conn with every query rebound for d. SQLite needs no
// rewriting, so conn is returned as is.
func Bind(conn DBTX, d Dialect) DBTX {
	if d == SQLite {
		return conn
	}
	if b, ok := conn.(boundDBTX); ok && b.dialect == d {
		return b
	}
	return boundDBTX{conn: conn, dialect: d}
}

type boundDBTX struct {
	conn    DBTX
	dialect Dialect
}

func (b boundDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return b.conn.ExecContext(ctx, b.dialect.Rebind(query), args...)
}

func (b boundDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return b.conn.QueryContext(ctx, b.dialect.Rebind(query), args...)
}

func (b boundDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return b.conn.QueryRowContext(ctx, b.dialect.Rebind(query), args...)
}
