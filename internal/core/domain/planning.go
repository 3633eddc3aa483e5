package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// The types in this file are transient: computed on demand by the planning
// engine and never persisted as historical records.

// ProjectionPoint is one month of a linear forward projection.
type ProjectionPoint struct {
	MonthIndex        int             `json:"monthIndex"` // 1-based offset from the projection start
	Month             time.Time       `json:"month"`      // First of the projected month, UTC
	ProjectedBalance  decimal.Decimal `json:"projectedBalance"`
	ProjectedIncome   decimal.Decimal `json:"projectedIncome"`
	ProjectedExpenses decimal.Decimal `json:"projectedExpenses"`
	ConfidenceLevel   float64         `json:"confidenceLevel"` // Non-increasing with the horizon
}

// Scenario is one candidate savings-rate strategy for reaching a target.
type Scenario struct {
	SavingsRate      float64         `json:"savingsRate"` // Fraction of monthly income, e.g. 0.10
	MonthlyAmount    decimal.Decimal `json:"monthlyAmount"`
	TimelineMonths   int             `json:"timelineMonths"`
	Feasible         bool            `json:"feasible"`
	RemainingSurplus decimal.Decimal `json:"remainingSurplus"`
}

// AssetForecast is the projected cost of an asset purchase at the end of a
// horizon, with the savings effort required to afford it.
type AssetForecast struct {
	ProjectedPrice         decimal.Decimal  `json:"projectedPrice"`
	RequiredDownPayment    *decimal.Decimal `json:"requiredDownPayment,omitempty"`
	MonthlyRequiredSavings *decimal.Decimal `json:"monthlyRequiredSavings,omitempty"`
	AffordabilityScore     float64          `json:"affordabilityScore"` // [0,100]
}

// ConsistencyRating classifies how evenly a contribution series is spread.
type ConsistencyRating string

const (
	ConsistencyExcellent ConsistencyRating = "excellent"
	ConsistencyGood      ConsistencyRating = "good"
	ConsistencyFair      ConsistencyRating = "fair"
	ConsistencyPoor      ConsistencyRating = "poor"
)

// TrendDirection classifies the recent direction of a contribution series.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
	TrendVolatile   TrendDirection = "volatile"
)

// ContributionAnalysis summarizes a goal's contribution history: how much,
// how evenly, which way it is heading, and whether the goal is on track.
type ContributionAnalysis struct {
	AverageMonthly decimal.Decimal `json:"averageMonthly"`
	// Variance holds the population standard deviation of the contribution
	// amounts (the historical field name predates the std-dev switch).
	Variance                float64           `json:"variance"`
	ConsistencyScore        float64           `json:"consistencyScore"` // [0,100]
	Consistency             ConsistencyRating `json:"consistency"`
	Trend                   TrendDirection    `json:"trend"`
	IsOnTrack               bool              `json:"isOnTrack"`
	ProjectedCompletionDate *time.Time        `json:"projectedCompletionDate,omitempty"`
}
