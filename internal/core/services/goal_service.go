package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/finsight/backend/internal/core/planning"
	portsrepo "github.com/finsight/backend/internal/core/ports/repositories"
	portssvc "github.com/finsight/backend/internal/core/ports/services"
	"github.com/finsight/backend/internal/dto"
	"github.com/google/uuid"
)

// goalService implements the GoalSvcFacade interface
type goalService struct {
	BaseService
	goalRepo portsrepo.GoalRepositoryWithTx
}

// NewGoalService creates a new goal service
func NewGoalService(repo portsrepo.GoalRepositoryWithTx) portssvc.GoalSvcFacade {
	return &goalService{goalRepo: repo}
}

// Ensure goalService implements the GoalSvcFacade interface
var _ portssvc.GoalSvcFacade = (*goalService)(nil)

func (s *goalService) CreateGoal(ctx context.Context, req dto.CreateGoalRequest, userID string) (*domain.Goal, error) {
	now := time.Now()

	goal := domain.Goal{
		GoalID:       uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		TargetDate:   req.TargetDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.AssetParams != nil {
		goal.AssetParams = &domain.AssetParams{
			InitialPrice:     req.AssetParams.InitialPrice,
			AnnualRate:       req.AssetParams.AnnualRate,
			DownPaymentRatio: req.AssetParams.DownPaymentRatio,
		}
	}

	if err := goal.Validate(); err != nil {
		s.LogDebug(ctx, "Goal validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		s.LogError(ctx, err, "Failed to save goal", slog.String("goal_id", goal.GoalID))
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	s.LogInfo(ctx, "Goal created", slog.String("goal_id", goal.GoalID))
	return &goal, nil
}

func (s *goalService) GetGoalByID(ctx context.Context, goalID string, userID string) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwner(ctx, goal.UserID, userID); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) ListGoals(ctx context.Context, userID string, limit int, nextToken *string, includeCompleted bool) ([]domain.Goal, *string, error) {
	goals, next, err := s.goalRepo.ListGoalsByUser(ctx, userID, limit, nextToken, includeCompleted)
	if err != nil {
		s.LogError(ctx, err, "Failed to list goals", slog.String("user_id", userID))
		return nil, nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, next, nil
}

func (s *goalService) ListContributions(ctx context.Context, goalID string, userID string) ([]domain.GoalContribution, error) {
	if _, err := s.GetGoalByID(ctx, goalID, userID); err != nil {
		return nil, err
	}
	contributions, err := s.goalRepo.FindContributionsByGoalID(ctx, goalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list contributions", slog.String("goal_id", goalID))
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}
	return contributions, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, goalID string, req dto.UpdateGoalRequest, userID string) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwner(ctx, goal.UserID, userID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.TargetAmount != nil {
		goal.TargetAmount = *req.TargetAmount
		// A raised target can reopen a completed goal.
		goal.IsCompleted = goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount)
	}
	if req.TargetDate != nil {
		goal.TargetDate = *req.TargetDate
	}
	if req.AssetParams != nil {
		goal.AssetParams = &domain.AssetParams{
			InitialPrice:     req.AssetParams.InitialPrice,
			AnnualRate:       req.AssetParams.AnnualRate,
			DownPaymentRatio: req.AssetParams.DownPaymentRatio,
		}
	}
	goal.LastUpdatedAt = time.Now()
	goal.LastUpdatedBy = userID

	if err := goal.Validate(); err != nil {
		return nil, err
	}

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		s.LogError(ctx, err, "Failed to update goal", slog.String("goal_id", goalID))
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, goalID string, userID string) error {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeOwner(ctx, goal.UserID, userID); err != nil {
		return err
	}

	if err := s.goalRepo.DeleteGoal(ctx, goalID); err != nil {
		s.LogError(ctx, err, "Failed to delete goal", slog.String("goal_id", goalID))
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	s.LogInfo(ctx, "Goal deleted", slog.String("goal_id", goalID))
	return nil
}

// AddContribution records a contribution and advances the goal's current
// amount in the same database transaction. The contribution log is the source
// of truth; the stored current amount is an aggregate kept in lockstep with it.
func (s *goalService) AddContribution(ctx context.Context, goalID string, req dto.AddContributionRequest, userID string) (*domain.GoalContribution, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwner(ctx, goal.UserID, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	contribution := domain.GoalContribution{
		ContributionID: uuid.NewString(),
		GoalID:         goalID,
		Amount:         req.Amount,
		Month:          planning.MonthStart(req.Month),
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := contribution.Validate(); err != nil {
		s.LogDebug(ctx, "Contribution validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	newCurrentAmount, completed, err := s.goalRepo.SaveContribution(ctx, contribution, userID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to save contribution",
			slog.String("goal_id", goalID),
			slog.String("contribution_id", contribution.ContributionID))
		return nil, fmt.Errorf("failed to add contribution: %w", err)
	}

	s.LogInfo(ctx, "Contribution added",
		slog.String("goal_id", goalID),
		slog.String("contribution_id", contribution.ContributionID),
		slog.Bool("goal_completed", completed))

	goal.CurrentAmount = newCurrentAmount
	goal.IsCompleted = completed
	s.reconcileAggregate(ctx, *goal)

	return &contribution, nil
}

// reconcileAggregate cross-checks the stored aggregate against the
// contribution log and logs when they drift apart. Drift indicates a write
// that bypassed AddContribution.
func (s *goalService) reconcileAggregate(ctx context.Context, goal domain.Goal) {
	sum, err := s.goalRepo.SumContributionsByGoalID(ctx, goal.GoalID)
	if err != nil {
		s.LogDebug(ctx, "Skipping aggregate reconciliation", slog.String("error", err.Error()))
		return
	}
	if err := goal.Reconcile(sum); err != nil {
		s.LogError(ctx, err, "Goal current amount does not match contribution log",
			slog.String("stored", goal.CurrentAmount.String()),
			slog.String("log_sum", sum.String()))
	}
}
