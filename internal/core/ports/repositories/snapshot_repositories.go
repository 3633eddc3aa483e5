package repositories

import (
	"context"
	"time"

	"github.com/finsight/backend/internal/core/domain"
)

// SnapshotReader defines read operations for monthly snapshot data
type SnapshotReader interface {
	// FindSnapshot retrieves the snapshot for a user and month, if one exists.
	FindSnapshot(ctx context.Context, userID string, month time.Time) (*domain.MonthlySnapshot, error)

	// ListSnapshotsByUser retrieves snapshots for a user between from and to
	// inclusive, ordered by month ascending.
	ListSnapshotsByUser(ctx context.Context, userID string, from, to time.Time) ([]domain.MonthlySnapshot, error)

	// FindLatestSnapshotBefore retrieves the most recent snapshot strictly
	// before the given month, used to compute month-over-month changes.
	FindLatestSnapshotBefore(ctx context.Context, userID string, month time.Time) (*domain.MonthlySnapshot, error)
}

// SnapshotWriter defines write operations for monthly snapshot data
type SnapshotWriter interface {
	// UpsertSnapshot persists a snapshot, fully replacing any existing row for
	// the same user and month.
	UpsertSnapshot(ctx context.Context, snapshot domain.MonthlySnapshot) error
}

// SnapshotRepositoryFacade combines all snapshot-related repository interfaces
// This is a facade for clients that need access to all operations
type SnapshotRepositoryFacade interface {
	SnapshotReader
	SnapshotWriter
}
