package services

import (
	"context"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/finsight/backend/internal/dto"
)

// GoalReaderSvc defines read operations for goal data
type GoalReaderSvc interface {
	// GetGoalByID retrieves a specific goal by its unique identifier.
	GetGoalByID(ctx context.Context, goalID string, userID string) (*domain.Goal, error)

	// ListGoals retrieves a paginated list of goals for the user.
	ListGoals(ctx context.Context, userID string, limit int, nextToken *string, includeCompleted bool) ([]domain.Goal, *string, error)

	// ListContributions retrieves the full contribution history of a goal
	// ordered by month ascending.
	ListContributions(ctx context.Context, goalID string, userID string) ([]domain.GoalContribution, error)
}

// GoalWriterSvc defines write operations for goal data
type GoalWriterSvc interface {
	// CreateGoal persists a new goal.
	CreateGoal(ctx context.Context, req dto.CreateGoalRequest, userID string) (*domain.Goal, error)

	// UpdateGoal updates an existing goal's details.
	UpdateGoal(ctx context.Context, goalID string, req dto.UpdateGoalRequest, userID string) (*domain.Goal, error)

	// DeleteGoal removes a goal and its contribution history.
	DeleteGoal(ctx context.Context, goalID string, userID string) error

	// AddContribution records a contribution against a goal, advancing the
	// goal's current amount and completing it when the target is reached.
	AddContribution(ctx context.Context, goalID string, req dto.AddContributionRequest, userID string) (*domain.GoalContribution, error)
}

// GoalSvcFacade combines all goal-related service interfaces
// This is a facade for clients that need access to all operations
type GoalSvcFacade interface {
	GoalReaderSvc
	GoalWriterSvc
}
