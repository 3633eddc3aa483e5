package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OneTimeEntry represents a single dated income or expense row.
type OneTimeEntry struct {
	EntryID  string          `db:"entry_id"`
	UserID   string          `db:"user_id"`
	Kind     FlowKind        `db:"kind"`
	Amount   decimal.Decimal `db:"amount"`
	Date     time.Time       `db:"entry_date"`
	Category string          `db:"category"`
	AuditFields
}
