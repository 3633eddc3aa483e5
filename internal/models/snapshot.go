package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySnapshot represents the persisted health metrics for one user month.
// The primary key is (user_id, month); recomputing a month replaces the row.
type MonthlySnapshot struct {
	UserID        string          `db:"user_id"`
	Month         time.Time       `db:"month"`
	TotalIncome   decimal.Decimal `db:"total_income"`
	TotalExpenses decimal.Decimal `db:"total_expenses"`
	TotalSavings  decimal.Decimal `db:"total_savings"`
	BurnRate      float64         `db:"burn_rate"`
	SavingsRate   float64         `db:"savings_rate"`
	HealthScore   float64         `db:"health_score"`

	IncomeChangePercent   *float64 `db:"income_change_percent"`
	ExpensesChangePercent *float64 `db:"expenses_change_percent"`
	SavingsChangePercent  *float64 `db:"savings_change_percent"`

	AuditFields
}
