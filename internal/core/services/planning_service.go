package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finsight/backend/internal/apperrors"
	"github.com/finsight/backend/internal/core/domain"
	"github.com/finsight/backend/internal/core/planning"
	portsrepo "github.com/finsight/backend/internal/core/ports/repositories"
	portssvc "github.com/finsight/backend/internal/core/ports/services"
	"github.com/finsight/backend/internal/dto"
	"github.com/shopspring/decimal"
)

// planningService implements the PlanningSvcFacade interface. It loads state
// through the repositories and delegates every computation to the planning
// package, which stays free of I/O.
type planningService struct {
	BaseService
	streamRepo   portsrepo.StreamReader
	entryRepo    portsrepo.EntryReader
	goalRepo     portsrepo.GoalRepositoryFacade
	snapshotRepo portsrepo.SnapshotRepositoryFacade

	confidence     planning.ConfidenceParams
	candidateRates []float64
	scorer         planning.HealthScorer
	cache          *planning.ProjectionCache
}

// PlanningServiceOption is a functional option for configuring the planning service
type PlanningServiceOption func(*planningService)

// WithConfidenceParams overrides the projection confidence decay parameters
func WithConfidenceParams(p planning.ConfidenceParams) PlanningServiceOption {
	return func(s *planningService) {
		s.confidence = p
	}
}

// WithCandidateRates overrides the default savings rates evaluated by scenarios
func WithCandidateRates(rates []float64) PlanningServiceOption {
	return func(s *planningService) {
		s.candidateRates = rates
	}
}

// WithHealthScorer overrides the health score weighting strategy
func WithHealthScorer(scorer planning.HealthScorer) PlanningServiceOption {
	return func(s *planningService) {
		s.scorer = scorer
	}
}

// WithProjectionCache enables caching of projection results
func WithProjectionCache(cache *planning.ProjectionCache) PlanningServiceOption {
	return func(s *planningService) {
		s.cache = cache
	}
}

// NewPlanningService creates a new planning service with the provided options
func NewPlanningService(
	streamRepo portsrepo.StreamReader,
	entryRepo portsrepo.EntryReader,
	goalRepo portsrepo.GoalRepositoryFacade,
	snapshotRepo portsrepo.SnapshotRepositoryFacade,
	options ...PlanningServiceOption,
) portssvc.PlanningSvcFacade {
	svc := &planningService{
		streamRepo:   streamRepo,
		entryRepo:    entryRepo,
		goalRepo:     goalRepo,
		snapshotRepo: snapshotRepo,
		confidence:   planning.DefaultConfidenceParams(),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure planningService implements the PlanningSvcFacade interface
var _ portssvc.PlanningSvcFacade = (*planningService)(nil)

func (s *planningService) GetBalance(ctx context.Context, userID string, asOf time.Time) (decimal.Decimal, error) {
	streams, err := s.streamRepo.FindActiveStreamsInWindow(ctx, userID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load streams for balance", slog.String("user_id", userID))
		return decimal.Zero, fmt.Errorf("failed to load streams: %w", err)
	}
	entries, err := s.entryRepo.FindEntriesUpTo(ctx, userID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries for balance", slog.String("user_id", userID))
		return decimal.Zero, fmt.Errorf("failed to load entries: %w", err)
	}
	contributions, err := s.goalRepo.FindContributionsByUserUpTo(ctx, userID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load contributions for balance", slog.String("user_id", userID))
		return decimal.Zero, fmt.Errorf("failed to load contributions: %w", err)
	}

	balance, err := planning.ComputeBalance(decimal.Zero, streams, entries, contributions, asOf)
	if err != nil {
		s.LogError(ctx, err, "Balance computation failed", slog.String("user_id", userID))
		return decimal.Zero, err
	}
	return balance, nil
}

// ComputeSnapshot derives and stores the health metrics for a month. The
// operation is idempotent: recomputing a month fully replaces the stored row.
func (s *planningService) ComputeSnapshot(ctx context.Context, userID string, month time.Time) (*domain.MonthlySnapshot, error) {
	monthStart := planning.MonthStart(month)

	flows, err := s.monthFlows(ctx, userID, monthStart)
	if err != nil {
		return nil, err
	}

	goals, err := s.goalRepo.FindGoalsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load goals for snapshot", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}

	previous, err := s.snapshotRepo.FindLatestSnapshotBefore(ctx, userID, monthStart)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to load previous snapshot", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load previous snapshot: %w", err)
	}

	metrics := planning.ComputeMonthlyMetrics(planning.MetricsInput{
		TotalIncome:   flows.Income,
		TotalExpenses: flows.Expenses,
		Goals:         goals,
		Previous:      previous,
	}, s.scorer)

	now := time.Now()
	snapshot := domain.MonthlySnapshot{
		UserID:                userID,
		Month:                 monthStart,
		TotalIncome:           metrics.TotalIncome,
		TotalExpenses:         metrics.TotalExpenses,
		TotalSavings:          metrics.TotalSavings,
		BurnRate:              metrics.BurnRate,
		SavingsRate:           metrics.SavingsRate,
		HealthScore:           metrics.HealthScore,
		IncomeChangePercent:   metrics.IncomeChangePercent,
		ExpensesChangePercent: metrics.ExpensesChangePercent,
		SavingsChangePercent:  metrics.SavingsChangePercent,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.snapshotRepo.UpsertSnapshot(ctx, snapshot); err != nil {
		s.LogError(ctx, err, "Failed to upsert snapshot",
			slog.String("user_id", userID),
			slog.Time("month", monthStart))
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}

	s.LogInfo(ctx, "Snapshot computed",
		slog.String("user_id", userID),
		slog.Time("month", monthStart),
		slog.Float64("health_score", snapshot.HealthScore))
	return &snapshot, nil
}

func (s *planningService) GetSnapshots(ctx context.Context, userID string, from, to time.Time) ([]domain.MonthlySnapshot, error) {
	snapshots, err := s.snapshotRepo.ListSnapshotsByUser(ctx, userID, planning.MonthStart(from), planning.MonthStart(to))
	if err != nil {
		s.LogError(ctx, err, "Failed to list snapshots", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

// projectionCacheKey carries every input that determines a projection result.
type projectionCacheKey struct {
	UserID   string
	Balance  string
	Income   string
	Expenses string
	Horizon  int
	Params   planning.ConfidenceParams
}

func (s *planningService) ProjectBalance(ctx context.Context, userID string, horizonMonths int) ([]domain.ProjectionPoint, error) {
	if horizonMonths <= 0 {
		return nil, fmt.Errorf("%w: projection horizon %d months must be positive",
			apperrors.ErrValidation, horizonMonths)
	}

	now := time.Now()
	balance, err := s.GetBalance(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	flows, err := s.monthFlows(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	var key uint64
	cacheable := false
	if s.cache != nil {
		key, err = planning.CacheKey(projectionCacheKey{
			UserID:   userID,
			Balance:  balance.String(),
			Income:   flows.Income.String(),
			Expenses: flows.Expenses.String(),
			Horizon:  horizonMonths,
			Params:   s.confidence,
		})
		if err == nil {
			cacheable = true
			if points, ok := s.cache.Get(key, now); ok {
				s.LogDebug(ctx, "Projection served from cache", slog.String("user_id", userID))
				return points, nil
			}
		}
	}

	points := planning.ProjectForward(now, balance, flows.Income, flows.Expenses, horizonMonths, s.confidence)

	if cacheable {
		s.cache.Put(key, points, now)
	}
	return points, nil
}

func (s *planningService) GenerateScenarios(ctx context.Context, goalID string, req dto.ScenarioRequest, userID string) (*dto.ScenarioSetResponse, error) {
	goal, err := s.ownedGoal(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	flows, err := s.monthFlows(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}

	rates := req.CandidateRates
	if len(rates) == 0 {
		rates = s.candidateRates
	}

	set := planning.GenerateScenarios(planning.ScenarioInput{
		MonthlyIncome:         flows.Income,
		MonthlySurplus:        flows.Net(),
		TargetAmount:          goal.TargetAmount,
		CurrentSaved:          goal.CurrentAmount,
		CandidateRates:        rates,
		DesiredTimelineMonths: req.DesiredTimelineMonths,
	})

	resp := dto.ToScenarioSetResponse(set.Scenarios, set.Recommended)
	return &resp, nil
}

func (s *planningService) ForecastGoalAsset(ctx context.Context, goalID string, horizonMonths int, userID string) (*domain.AssetForecast, error) {
	goal, err := s.ownedGoal(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	if goal.AssetParams == nil {
		return nil, fmt.Errorf("%w: goal %s has no asset parameters", apperrors.ErrValidation, goalID)
	}

	now := time.Now()
	flows, err := s.monthFlows(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	ratio := goal.AssetParams.DownPaymentRatio
	in := planning.AssetForecastInput{
		InitialPrice:    goal.AssetParams.InitialPrice,
		AnnualRate:      goal.AssetParams.AnnualRate,
		HorizonMonths:   horizonMonths,
		CurrentAmount:   goal.CurrentAmount,
		MonthsRemaining: planning.MonthsBetween(now, goal.TargetDate),
		MonthlySurplus:  flows.Net(),
	}
	if ratio > 0 {
		in.DownPaymentRatio = &ratio
	}

	forecast, err := planning.ForecastAsset(in)
	if err != nil {
		s.LogError(ctx, err, "Asset forecast failed", slog.String("goal_id", goalID))
		return nil, err
	}
	return &forecast, nil
}

func (s *planningService) AnalyzeGoalContributions(ctx context.Context, goalID string, userID string) (*domain.ContributionAnalysis, error) {
	goal, err := s.ownedGoal(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.goalRepo.FindContributionsByGoalID(ctx, goalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load contribution history", slog.String("goal_id", goalID))
		return nil, fmt.Errorf("failed to load contribution history: %w", err)
	}

	analysis, err := planning.AnalyzeContributions(history, *goal, time.Now())
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

// monthFlows loads a month's streams and entries and totals their flows.
func (s *planningService) monthFlows(ctx context.Context, userID string, m time.Time) (planning.MonthFlows, error) {
	monthEnd := planning.MonthEnd(m)
	streams, err := s.streamRepo.FindActiveStreamsInWindow(ctx, userID, monthEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to load streams for month flows", slog.String("user_id", userID))
		return planning.MonthFlows{}, fmt.Errorf("failed to load streams: %w", err)
	}
	entries, err := s.entryRepo.FindEntriesUpTo(ctx, userID, monthEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries for month flows", slog.String("user_id", userID))
		return planning.MonthFlows{}, fmt.Errorf("failed to load entries: %w", err)
	}
	return planning.ComputeMonthFlows(streams, entries, m)
}

func (s *planningService) ownedGoal(ctx context.Context, goalID string, userID string) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwner(ctx, goal.UserID, userID); err != nil {
		return nil, err
	}
	return goal, nil
}
