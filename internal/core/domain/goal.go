package domain

import (
	"fmt"
	"time"

	"github.com/finsight/backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// reconcileEpsilon is the tolerance allowed between a goal's stored aggregate
// and the sum of its contributions before the mismatch counts as corruption.
var reconcileEpsilon = decimal.NewFromFloat(0.01)

// AssetParams holds the price-forecast parameters for goals that target the
// purchase of a specific asset (a car, a house deposit).
type AssetParams struct {
	InitialPrice decimal.Decimal `json:"initialPrice"`
	// AnnualRate is the expected yearly rate of price change, applied as
	// (1+rate)^years. A positive rate raises the projected price.
	AnnualRate       float64 `json:"annualRate"`
	DownPaymentRatio float64 `json:"downPaymentRatio"`
}

// Goal represents a savings target. CurrentAmount is a materialized aggregate
// of the goal's contribution log; the log is the source of truth and the two
// are only ever written together in one transaction.
type Goal struct {
	GoalID        string          `json:"goalID"` // Primary Key (UUID)
	UserID        string          `json:"userID"` // FK -> users.user_id
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    time.Time       `json:"targetDate"`
	IsCompleted   bool            `json:"isCompleted"`
	AssetParams   *AssetParams    `json:"assetParams,omitempty"`
	AuditFields
}

// Validate checks the goal's internal invariants.
func (g Goal) Validate() error {
	if g.TargetAmount.IsNegative() {
		return fmt.Errorf("%w: goal %s has negative target amount %s", apperrors.ErrValidation, g.GoalID, g.TargetAmount)
	}
	if g.AssetParams != nil {
		if g.AssetParams.InitialPrice.IsNegative() {
			return fmt.Errorf("%w: goal %s has negative initial asset price", apperrors.ErrValidation, g.GoalID)
		}
		if g.AssetParams.DownPaymentRatio < 0 || g.AssetParams.DownPaymentRatio > 1 {
			return fmt.Errorf("%w: goal %s down payment ratio %.4f outside [0,1]",
				apperrors.ErrValidation, g.GoalID, g.AssetParams.DownPaymentRatio)
		}
	}
	return nil
}

// Reconcile verifies that the stored aggregate matches the contribution sum.
// A mismatch beyond the rounding epsilon indicates a torn write upstream.
func (g Goal) Reconcile(contributionSum decimal.Decimal) error {
	if g.CurrentAmount.Sub(contributionSum).Abs().GreaterThan(reconcileEpsilon) {
		return fmt.Errorf("%w: goal %s aggregate %s does not match contribution sum %s",
			apperrors.ErrValidation, g.GoalID, g.CurrentAmount, contributionSum)
	}
	return nil
}

// Completed reports whether the goal has reached its target.
func (g Goal) Completed() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// GoalContribution is one append-only deposit toward a goal, recorded against
// a calendar month.
type GoalContribution struct {
	ContributionID string          `json:"contributionID"` // Primary Key (UUID)
	GoalID         string          `json:"goalID"`         // FK -> goals.goal_id
	Amount         decimal.Decimal `json:"amount"`
	Month          time.Time       `json:"month"` // Normalized to the first of the month, UTC
	Notes          string          `json:"notes,omitempty"`
	AuditFields
}

// Validate checks the contribution's internal invariants.
func (c GoalContribution) Validate() error {
	if !c.Amount.IsPositive() {
		return fmt.Errorf("%w: contribution %s amount %s must be positive",
			apperrors.ErrValidation, c.ContributionID, c.Amount)
	}
	return nil
}
