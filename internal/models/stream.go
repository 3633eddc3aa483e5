package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlowKind distinguishes money coming in from money going out.
type FlowKind string

const (
	Income  FlowKind = "INCOME"
	Expense FlowKind = "EXPENSE"
)

// Frequency defines how often a recurring stream accrues.
type Frequency string

const (
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
	Yearly  Frequency = "YEARLY"
	OneTime Frequency = "ONE_TIME"
)

// CashFlowStream represents a recurring income or expense stream row.
type CashFlowStream struct {
	StreamID    string          `db:"stream_id"`
	UserID      string          `db:"user_id"`
	Name        string          `db:"name"`
	Kind        FlowKind        `db:"kind"`
	Amount      decimal.Decimal `db:"amount"`
	Frequency   Frequency       `db:"frequency"`
	ActiveFrom  time.Time       `db:"active_from"`
	ActiveUntil *time.Time      `db:"active_until"` // Nullable, open-ended when NULL
	IsActive    bool            `db:"is_active"`
	AuditFields
}
