package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager exposes pgx transaction control to repositories whose
// writes must land atomically, such as a contribution and its goal aggregate.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits the transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls the transaction back. Rolling back after a commit is a
	// no-op, which makes it safe to defer.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
