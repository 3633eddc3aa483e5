package repositories

import (
	"context"
	"time"

	"github.com/finsight/backend/internal/core/domain"
)

// StreamReader defines read operations for cash flow stream data
type StreamReader interface {
	// FindStreamByID retrieves a specific stream by its unique identifier.
	FindStreamByID(ctx context.Context, streamID string) (*domain.CashFlowStream, error)

	// ListStreamsByUser retrieves a paginated list of streams for a user using token-based pagination.
	// It returns the streams, a token for the next page, and an error.
	ListStreamsByUser(ctx context.Context, userID string, limit int, nextToken *string, includeInactive bool) ([]domain.CashFlowStream, *string, error)

	// FindActiveStreamsInWindow retrieves every active stream for a user whose
	// activity window overlaps the period up to asOf. Used by balance and
	// snapshot computation, so it is not paginated.
	FindActiveStreamsInWindow(ctx context.Context, userID string, asOf time.Time) ([]domain.CashFlowStream, error)
}

// StreamWriter defines write operations for cash flow stream data
type StreamWriter interface {
	// SaveStream persists a new stream.
	SaveStream(ctx context.Context, stream domain.CashFlowStream) error

	// UpdateStream updates an existing stream's details.
	UpdateStream(ctx context.Context, stream domain.CashFlowStream) error

	// DeactivateStream marks a stream inactive without deleting its history.
	DeactivateStream(ctx context.Context, streamID string, updatedByUserID string, updatedAt time.Time) error
}

// StreamRepositoryFacade combines all stream-related repository interfaces
// This is a facade for clients that need access to all operations
type StreamRepositoryFacade interface {
	StreamReader
	StreamWriter
}
