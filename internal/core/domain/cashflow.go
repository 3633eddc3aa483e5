package domain

import (
	"fmt"
	"time"

	"github.com/finsight/backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// FlowKind distinguishes money coming in from money going out.
type FlowKind string

const (
	FlowIncome  FlowKind = "INCOME"
	FlowExpense FlowKind = "EXPENSE"
)

// Frequency defines how often a recurring cash flow repeats.
type Frequency string

const (
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyYearly  Frequency = "YEARLY"
	// FrequencyOneTime exists only for rejecting misfiled input; one-off
	// amounts belong in OneTimeEntry, never in a stream.
	FrequencyOneTime Frequency = "ONE_TIME"
)

// CashFlowStream represents a recurring, time-bounded cash flow such as a
// salary or a rent payment. Streams are never physically deleted while
// referenced by history; ending one sets ActiveUntil (soft end).
type CashFlowStream struct {
	StreamID    string          `json:"streamID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`   // FK -> users.user_id
	Name        string          `json:"name"`
	Kind        FlowKind        `json:"kind"`
	Amount      decimal.Decimal `json:"amount"` // Per-occurrence amount as entered
	Frequency   Frequency       `json:"frequency"`
	ActiveFrom  time.Time       `json:"activeFrom"`
	ActiveUntil *time.Time      `json:"activeUntil,omitempty"` // Nil means still running
	IsActive    bool            `json:"isActive"`
	AuditFields
}

// Validate checks the stream's internal invariants. A violation means the
// record is corrupt upstream and must never be silently coerced.
func (s CashFlowStream) Validate() error {
	if s.Kind != FlowIncome && s.Kind != FlowExpense {
		return fmt.Errorf("%w: stream %s has unknown kind %q", apperrors.ErrValidation, s.StreamID, s.Kind)
	}
	switch s.Frequency {
	case FrequencyWeekly, FrequencyMonthly, FrequencyYearly, FrequencyOneTime:
	default:
		return fmt.Errorf("%w: stream %s has unknown frequency %q", apperrors.ErrValidation, s.StreamID, s.Frequency)
	}
	if s.Amount.IsNegative() {
		return fmt.Errorf("%w: stream %s has negative amount %s", apperrors.ErrValidation, s.StreamID, s.Amount)
	}
	if s.ActiveUntil != nil && s.ActiveUntil.Before(s.ActiveFrom) {
		return fmt.Errorf("%w: stream %s ends (%s) before it starts (%s)",
			apperrors.ErrValidation, s.StreamID,
			s.ActiveUntil.Format("2006-01-02"), s.ActiveFrom.Format("2006-01-02"))
	}
	return nil
}
