package services

import (
	"context"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/finsight/backend/internal/dto"
)

// StreamReaderSvc defines read operations for cash flow stream data
type StreamReaderSvc interface {
	// GetStreamByID retrieves a specific stream by its unique identifier.
	GetStreamByID(ctx context.Context, streamID string, userID string) (*domain.CashFlowStream, error)

	// ListStreams retrieves a paginated list of streams for the user.
	ListStreams(ctx context.Context, userID string, limit int, nextToken *string, includeInactive bool) ([]domain.CashFlowStream, *string, error)
}

// StreamWriterSvc defines write operations for cash flow stream data
type StreamWriterSvc interface {
	// CreateStream persists a new stream.
	CreateStream(ctx context.Context, req dto.CreateStreamRequest, userID string) (*domain.CashFlowStream, error)

	// UpdateStream updates an existing stream's details.
	UpdateStream(ctx context.Context, streamID string, req dto.UpdateStreamRequest, userID string) (*domain.CashFlowStream, error)

	// DeactivateStream marks a stream inactive, leaving accrued history intact.
	DeactivateStream(ctx context.Context, streamID string, userID string) error
}

// StreamSvcFacade combines all stream-related service interfaces
// This is a facade for clients that need access to all operations
type StreamSvcFacade interface {
	StreamReaderSvc
	StreamWriterSvc
}
