package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySnapshot captures one user's derived financial metrics for a single
// calendar month. Exactly one row exists per (userID, month); regenerating a
// month replaces the row wholesale, it never merges or duplicates.
type MonthlySnapshot struct {
	UserID        string          `json:"userID"`
	Month         time.Time       `json:"month"` // First of the month, UTC
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalSavings  decimal.Decimal `json:"totalSavings"`
	BurnRate      float64         `json:"burnRate"`    // Expenses as % of income
	SavingsRate   float64         `json:"savingsRate"` // Savings as % of income
	HealthScore   float64         `json:"healthScore"` // Composite in [0,100]

	// Month-over-month deltas. Nil when no prior snapshot exists or the
	// prior value was zero; never Inf or NaN.
	IncomeChangePercent   *float64 `json:"incomeChangePercent,omitempty"`
	ExpensesChangePercent *float64 `json:"expensesChangePercent,omitempty"`
	SavingsChangePercent  *float64 `json:"savingsChangePercent,omitempty"`

	AuditFields
}
