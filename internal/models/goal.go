package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal represents a financial goal row. Asset forecasting parameters are
// nullable columns, present only for asset-backed goals.
type Goal struct {
	GoalID        string          `db:"goal_id"`
	UserID        string          `db:"user_id"`
	Name          string          `db:"name"`
	TargetAmount  decimal.Decimal `db:"target_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount"`
	TargetDate    time.Time       `db:"target_date"`
	IsCompleted   bool            `db:"is_completed"`

	AssetInitialPrice     *decimal.Decimal `db:"asset_initial_price"`
	AssetAnnualRate       *float64         `db:"asset_annual_rate"`
	AssetDownPaymentRatio *float64         `db:"asset_down_payment_ratio"`

	AuditFields
}

// GoalContribution represents one month's contribution toward a goal.
type GoalContribution struct {
	ContributionID string          `db:"contribution_id"`
	GoalID         string          `db:"goal_id"`
	Amount         decimal.Decimal `db:"amount"`
	Month          time.Time       `db:"month"`
	Notes          string          `db:"notes"`
	AuditFields
}
