package domain

import (
	"fmt"
	"time"

	"github.com/finsight/backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// OneTimeEntry represents a single non-recurring cash movement (a bonus, a
// car repair). Entries are immutable once created; deleting one removes it
// entirely, there is no soft state.
type OneTimeEntry struct {
	EntryID  string          `json:"entryID"` // Primary Key (UUID)
	UserID   string          `json:"userID"`  // FK -> users.user_id
	Kind     FlowKind        `json:"kind"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
	Category string          `json:"category"`
	AuditFields
}

// Validate checks the entry's internal invariants.
func (e OneTimeEntry) Validate() error {
	if e.Kind != FlowIncome && e.Kind != FlowExpense {
		return fmt.Errorf("%w: entry %s has unknown kind %q", apperrors.ErrValidation, e.EntryID, e.Kind)
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("%w: entry %s has negative amount %s", apperrors.ErrValidation, e.EntryID, e.Amount)
	}
	return nil
}
