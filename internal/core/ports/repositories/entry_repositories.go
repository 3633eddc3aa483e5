package repositories

import (
	"context"
	"time"

	"github.com/finsight/backend/internal/core/domain"
)

// EntryReader defines read operations for one-time entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific one-time entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.OneTimeEntry, error)

	// ListEntriesByUser retrieves a paginated list of entries for a user using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntriesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.OneTimeEntry, *string, error)

	// FindEntriesUpTo retrieves all entries for a user dated on or before asOf.
	// Used by balance and snapshot computation, so it is not paginated.
	FindEntriesUpTo(ctx context.Context, userID string, asOf time.Time) ([]domain.OneTimeEntry, error)
}

// EntryWriter defines write operations for one-time entry data
type EntryWriter interface {
	// SaveEntry persists a new one-time entry. Entries are immutable, so there
	// is no update operation.
	SaveEntry(ctx context.Context, entry domain.OneTimeEntry) error

	// DeleteEntry removes an entry permanently.
	DeleteEntry(ctx context.Context, entryID string) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces
// This is a facade for clients that need access to all operations
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
