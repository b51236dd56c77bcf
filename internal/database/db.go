package database

import (
	"context"
	"database/sql"
)

// DB is the read-only surface the candidate loader needs.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
}

// ReadWriter is used by the import tooling only. The server never writes.
type ReadWriter interface {
	DB

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Begin(ctx context.Context) (Tx, error)

	SQLDB() *sql.DB
}

type Tx interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
