package dto

import (
	"time"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateStreamRequest defines the data needed to create a recurring cash flow stream.
type CreateStreamRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=100"`
	Kind        domain.FlowKind  `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Amount      decimal.Decimal  `json:"amount" binding:"required,dgt0"`
	Frequency   domain.Frequency `json:"frequency" binding:"required,oneof=WEEKLY MONTHLY YEARLY"`
	ActiveFrom  time.Time        `json:"activeFrom" binding:"required"`
	ActiveUntil *time.Time       `json:"activeUntil"` // Optional, open-ended when omitted
}

// UpdateStreamRequest defines the data allowed for updating a stream.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateStreamRequest struct {
	Name        *string          `json:"name"`
	Amount      *decimal.Decimal `json:"amount"`
	ActiveUntil *time.Time       `json:"activeUntil"`
}

// StreamResponse defines the data returned for a cash flow stream.
// Mirrors domain.CashFlowStream.
type StreamResponse struct {
	StreamID      string           `json:"streamID"`
	Name          string           `json:"name"`
	Kind          domain.FlowKind  `json:"kind"`
	Amount        decimal.Decimal  `json:"amount"`
	Frequency     domain.Frequency `json:"frequency"`
	ActiveFrom    time.Time        `json:"activeFrom"`
	ActiveUntil   *time.Time       `json:"activeUntil,omitempty"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	CreatedBy     string           `json:"createdBy"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy string           `json:"lastUpdatedBy"`
}

// ListStreamsParams defines query parameters for listing streams.
type ListStreamsParams struct {
	Limit           int     `form:"limit,default=20"`
	NextToken       *string `form:"nextToken"`
	IncludeInactive bool    `form:"includeInactive,default=false"`
}

// ListStreamsResponse wraps the list of streams with the pagination token.
type ListStreamsResponse struct {
	Streams   []StreamResponse `json:"streams"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ToStreamResponse converts a domain.CashFlowStream to StreamResponse DTO
func ToStreamResponse(s *domain.CashFlowStream) StreamResponse {
	return StreamResponse{
		StreamID:      s.StreamID,
		Name:          s.Name,
		Kind:          s.Kind,
		Amount:        s.Amount,
		Frequency:     s.Frequency,
		ActiveFrom:    s.ActiveFrom,
		ActiveUntil:   s.ActiveUntil,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		CreatedBy:     s.CreatedBy,
		LastUpdatedAt: s.LastUpdatedAt,
		LastUpdatedBy: s.LastUpdatedBy,
	}
}

// ToListStreamsResponse converts a slice of domain.CashFlowStream to ListStreamsResponse
func ToListStreamsResponse(streams []domain.CashFlowStream, nextToken *string) ListStreamsResponse {
	res := make([]StreamResponse, len(streams))
	for i, s := range streams {
		res[i] = ToStreamResponse(&s)
	}
	return ListStreamsResponse{Streams: res, NextToken: nextToken}
}
