package dto

import (
	"time"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest defines the data needed to record a one-time entry.
type CreateEntryRequest struct {
	Kind     domain.FlowKind `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Amount   decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Date     time.Time       `json:"date" binding:"required"`
	Category string          `json:"category" binding:"max=50"`
}

// EntryResponse defines the data returned for a one-time entry.
// Mirrors domain.OneTimeEntry.
type EntryResponse struct {
	EntryID       string          `json:"entryID"`
	Kind          domain.FlowKind `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Category      string          `json:"category,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps the list of entries with the pagination token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.OneTimeEntry to EntryResponse DTO
func ToEntryResponse(e *domain.OneTimeEntry) EntryResponse {
	return EntryResponse{
		EntryID:       e.EntryID,
		Kind:          e.Kind,
		Amount:        e.Amount,
		Date:          e.Date,
		Category:      e.Category,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
		LastUpdatedAt: e.LastUpdatedAt,
		LastUpdatedBy: e.LastUpdatedBy,
	}
}

// ToListEntriesResponse converts a slice of domain.OneTimeEntry to ListEntriesResponse
func ToListEntriesResponse(entries []domain.OneTimeEntry, nextToken *string) ListEntriesResponse {
	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToEntryResponse(&e)
	}
	return ListEntriesResponse{Entries: res, NextToken: nextToken}
}
