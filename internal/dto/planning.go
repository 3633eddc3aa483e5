package dto

import (
	"time"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceParams defines query parameters for the balance endpoint.
type BalanceParams struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02"` // Defaults to now
}

// BalanceResponse defines the data returned for a balance query.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
	AsOf    time.Time       `json:"asOf"`
}

// SnapshotResponse defines the data returned for a monthly snapshot.
// Mirrors domain.MonthlySnapshot.
type SnapshotResponse struct {
	Month                 time.Time       `json:"month"`
	TotalIncome           decimal.Decimal `json:"totalIncome"`
	TotalExpenses         decimal.Decimal `json:"totalExpenses"`
	TotalSavings          decimal.Decimal `json:"totalSavings"`
	BurnRate              float64         `json:"burnRate"`
	SavingsRate           float64         `json:"savingsRate"`
	HealthScore           float64         `json:"healthScore"`
	IncomeChangePercent   *float64        `json:"incomeChangePercent,omitempty"`
	ExpensesChangePercent *float64        `json:"expensesChangePercent,omitempty"`
	SavingsChangePercent  *float64        `json:"savingsChangePercent,omitempty"`
}

// ListSnapshotsParams defines query parameters for listing snapshots.
type ListSnapshotsParams struct {
	From time.Time `form:"from" time_format:"2006-01" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01" binding:"required"`
}

// ListSnapshotsResponse wraps the list of snapshots.
type ListSnapshotsResponse struct {
	Snapshots []SnapshotResponse `json:"snapshots"`
}

// ComputeSnapshotRequest defines the body for recomputing a month's snapshot.
type ComputeSnapshotRequest struct {
	Month time.Time `json:"month" binding:"required"`
}

// ProjectionParams defines query parameters for the projection endpoint.
type ProjectionParams struct {
	HorizonMonths int `form:"horizonMonths,default=12" binding:"gte=1,lte=120"`
}

// ProjectionPointResponse defines one month of a forward projection.
type ProjectionPointResponse struct {
	MonthIndex        int             `json:"monthIndex"`
	Month             time.Time       `json:"month"`
	ProjectedBalance  decimal.Decimal `json:"projectedBalance"`
	ProjectedIncome   decimal.Decimal `json:"projectedIncome"`
	ProjectedExpenses decimal.Decimal `json:"projectedExpenses"`
	ConfidenceLevel   float64         `json:"confidenceLevel"`
}

// ProjectionResponse wraps a forward projection.
type ProjectionResponse struct {
	Points []ProjectionPointResponse `json:"points"`
}

// ScenarioRequest defines the inputs for savings scenario generation.
type ScenarioRequest struct {
	DesiredTimelineMonths int       `json:"desiredTimelineMonths" binding:"required,gte=1,lte=600"`
	CandidateRates        []float64 `json:"candidateRates" binding:"omitempty,dive,gt=0,lte=1"`
}

// ScenarioResponse defines one evaluated savings rate scenario.
type ScenarioResponse struct {
	SavingsRate      float64         `json:"savingsRate"`
	MonthlyAmount    decimal.Decimal `json:"monthlyAmount"`
	TimelineMonths   int             `json:"timelineMonths"`
	Feasible         bool            `json:"feasible"`
	RemainingSurplus decimal.Decimal `json:"remainingSurplus"`
}

// ScenarioSetResponse wraps the evaluated scenarios and the recommendation.
type ScenarioSetResponse struct {
	Scenarios   []ScenarioResponse `json:"scenarios"`
	Recommended *ScenarioResponse  `json:"recommended,omitempty"`
}

// ForecastParams defines query parameters for the asset forecast endpoint.
type ForecastParams struct {
	HorizonMonths int `form:"horizonMonths,default=12" binding:"gte=0,lte=600"`
}

// AssetForecastResponse defines the data returned for an asset forecast.
// Mirrors domain.AssetForecast.
type AssetForecastResponse struct {
	ProjectedPrice         decimal.Decimal  `json:"projectedPrice"`
	RequiredDownPayment    *decimal.Decimal `json:"requiredDownPayment,omitempty"`
	MonthlyRequiredSavings *decimal.Decimal `json:"monthlyRequiredSavings,omitempty"`
	AffordabilityScore     float64          `json:"affordabilityScore"`
}

// ContributionAnalysisResponse defines the data returned for a contribution analysis.
// Mirrors domain.ContributionAnalysis.
type ContributionAnalysisResponse struct {
	AverageMonthly          decimal.Decimal          `json:"averageMonthly"`
	Variance                float64                  `json:"variance"`
	ConsistencyScore        float64                  `json:"consistencyScore"`
	Consistency             domain.ConsistencyRating `json:"consistency"`
	Trend                   domain.TrendDirection    `json:"trend"`
	IsOnTrack               bool                     `json:"isOnTrack"`
	ProjectedCompletionDate *time.Time               `json:"projectedCompletionDate,omitempty"`
}

// ToSnapshotResponse converts a domain.MonthlySnapshot to SnapshotResponse DTO
func ToSnapshotResponse(s *domain.MonthlySnapshot) SnapshotResponse {
	return SnapshotResponse{
		Month:                 s.Month,
		TotalIncome:           s.TotalIncome,
		TotalExpenses:         s.TotalExpenses,
		TotalSavings:          s.TotalSavings,
		BurnRate:              s.BurnRate,
		SavingsRate:           s.SavingsRate,
		HealthScore:           s.HealthScore,
		IncomeChangePercent:   s.IncomeChangePercent,
		ExpensesChangePercent: s.ExpensesChangePercent,
		SavingsChangePercent:  s.SavingsChangePercent,
	}
}

// ToListSnapshotsResponse converts a slice of domain.MonthlySnapshot to ListSnapshotsResponse
func ToListSnapshotsResponse(snapshots []domain.MonthlySnapshot) ListSnapshotsResponse {
	res := make([]SnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		res[i] = ToSnapshotResponse(&s)
	}
	return ListSnapshotsResponse{Snapshots: res}
}

// ToProjectionResponse converts a slice of domain.ProjectionPoint to ProjectionResponse
func ToProjectionResponse(points []domain.ProjectionPoint) ProjectionResponse {
	res := make([]ProjectionPointResponse, len(points))
	for i, p := range points {
		res[i] = ProjectionPointResponse{
			MonthIndex:        p.MonthIndex,
			Month:             p.Month,
			ProjectedBalance:  p.ProjectedBalance,
			ProjectedIncome:   p.ProjectedIncome,
			ProjectedExpenses: p.ProjectedExpenses,
			ConfidenceLevel:   p.ConfidenceLevel,
		}
	}
	return ProjectionResponse{Points: res}
}

// ToScenarioResponse converts a domain.Scenario to ScenarioResponse DTO
func ToScenarioResponse(s *domain.Scenario) ScenarioResponse {
	return ScenarioResponse{
		SavingsRate:      s.SavingsRate,
		MonthlyAmount:    s.MonthlyAmount,
		TimelineMonths:   s.TimelineMonths,
		Feasible:         s.Feasible,
		RemainingSurplus: s.RemainingSurplus,
	}
}

// ToScenarioSetResponse converts scenarios and an optional recommendation to ScenarioSetResponse
func ToScenarioSetResponse(scenarios []domain.Scenario, recommended *domain.Scenario) ScenarioSetResponse {
	res := make([]ScenarioResponse, len(scenarios))
	for i, s := range scenarios {
		res[i] = ToScenarioResponse(&s)
	}
	out := ScenarioSetResponse{Scenarios: res}
	if recommended != nil {
		r := ToScenarioResponse(recommended)
		out.Recommended = &r
	}
	return out
}

// ToAssetForecastResponse converts a domain.AssetForecast to AssetForecastResponse DTO
func ToAssetForecastResponse(f *domain.AssetForecast) AssetForecastResponse {
	return AssetForecastResponse{
		ProjectedPrice:         f.ProjectedPrice,
		RequiredDownPayment:    f.RequiredDownPayment,
		MonthlyRequiredSavings: f.MonthlyRequiredSavings,
		AffordabilityScore:     f.AffordabilityScore,
	}
}

// ToContributionAnalysisResponse converts a domain.ContributionAnalysis to its DTO
func ToContributionAnalysisResponse(a *domain.ContributionAnalysis) ContributionAnalysisResponse {
	return ContributionAnalysisResponse{
		AverageMonthly:          a.AverageMonthly,
		Variance:                a.Variance,
		ConsistencyScore:        a.ConsistencyScore,
		Consistency:             a.Consistency,
		Trend:                   a.Trend,
		IsOnTrack:               a.IsOnTrack,
		ProjectedCompletionDate: a.ProjectedCompletionDate,
	}
}
