package services

import (
	"context"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/finsight/backend/internal/dto"
)

// EntryReaderSvc defines read operations for one-time entry data
type EntryReaderSvc interface {
	// GetEntryByID retrieves a specific one-time entry by its unique identifier.
	GetEntryByID(ctx context.Context, entryID string, userID string) (*domain.OneTimeEntry, error)

	// ListEntries retrieves a paginated list of entries for the user.
	ListEntries(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.OneTimeEntry, *string, error)
}

// EntryWriterSvc defines write operations for one-time entry data
type EntryWriterSvc interface {
	// CreateEntry persists a new one-time entry. Entries are immutable once
	// created; the only other write is deletion.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.OneTimeEntry, error)

	// DeleteEntry removes an entry permanently.
	DeleteEntry(ctx context.Context, entryID string, userID string) error
}

// EntrySvcFacade combines all entry-related service interfaces
// This is a facade for clients that need access to all operations
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
