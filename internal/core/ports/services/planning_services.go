package services

import (
	"context"
	"time"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/finsight/backend/internal/dto"
	"github.com/shopspring/decimal"
)

// BalanceSvc defines balance reconstruction operations
type BalanceSvc interface {
	// GetBalance reconstructs the user's cash position as of the given time
	// from streams, one-time entries and goal contributions.
	GetBalance(ctx context.Context, userID string, asOf time.Time) (decimal.Decimal, error)
}

// SnapshotSvc defines monthly snapshot operations
type SnapshotSvc interface {
	// ComputeSnapshot computes and persists the snapshot for a month,
	// replacing any previously stored row for that month.
	ComputeSnapshot(ctx context.Context, userID string, month time.Time) (*domain.MonthlySnapshot, error)

	// GetSnapshots retrieves stored snapshots for a month range.
	GetSnapshots(ctx context.Context, userID string, from, to time.Time) ([]domain.MonthlySnapshot, error)
}

// ProjectionSvc defines forward projection operations
type ProjectionSvc interface {
	// ProjectBalance projects the user's balance forward by horizonMonths
	// whole months from now.
	ProjectBalance(ctx context.Context, userID string, horizonMonths int) ([]domain.ProjectionPoint, error)
}

// ScenarioSvc defines savings scenario operations
type ScenarioSvc interface {
	// GenerateScenarios evaluates candidate savings rates against a goal and
	// recommends the one closest to the desired timeline.
	GenerateScenarios(ctx context.Context, goalID string, req dto.ScenarioRequest, userID string) (*dto.ScenarioSetResponse, error)
}

// ForecastSvc defines asset price forecasting operations
type ForecastSvc interface {
	// ForecastGoalAsset forecasts the price of the asset attached to a goal
	// and the savings required to afford its down payment.
	ForecastGoalAsset(ctx context.Context, goalID string, horizonMonths int, userID string) (*domain.AssetForecast, error)
}

// AnalysisSvc defines contribution analysis operations
type AnalysisSvc interface {
	// AnalyzeGoalContributions rates the consistency and trend of a goal's
	// contribution history and projects its completion date.
	AnalyzeGoalContributions(ctx context.Context, goalID string, userID string) (*domain.ContributionAnalysis, error)
}

// PlanningSvcFacade combines all planning-related service interfaces
// This is a facade for clients that need access to all operations
type PlanningSvcFacade interface {
	BalanceSvc
	SnapshotSvc
	ProjectionSvc
	ScenarioSvc
	ForecastSvc
	AnalysisSvc
}
