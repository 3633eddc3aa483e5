package repositories

import (
	"context"
	"time"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GoalReader defines read operations for goal data
type GoalReader interface {
	// FindGoalByID retrieves a specific goal by its unique identifier.
	FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error)

	// ListGoalsByUser retrieves a paginated list of goals for a user using token-based pagination.
	// It returns the goals, a token for the next page, and an error.
	ListGoalsByUser(ctx context.Context, userID string, limit int, nextToken *string, includeCompleted bool) ([]domain.Goal, *string, error)

	// FindGoalsByUser retrieves every goal for a user. Used by metric and
	// balance computation, so it is not paginated.
	FindGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error)
}

// GoalWriter defines write operations for goal data
type GoalWriter interface {
	// SaveGoal persists a new goal.
	SaveGoal(ctx context.Context, goal domain.Goal) error

	// UpdateGoal updates an existing goal's details.
	UpdateGoal(ctx context.Context, goal domain.Goal) error

	// DeleteGoal removes a goal and its contribution history permanently.
	DeleteGoal(ctx context.Context, goalID string) error
}

// ContributionReader defines read operations for goal contribution data
type ContributionReader interface {
	// FindContributionsByGoalID retrieves the full contribution history of a
	// goal ordered by month ascending.
	FindContributionsByGoalID(ctx context.Context, goalID string) ([]domain.GoalContribution, error)

	// FindContributionsByUserUpTo retrieves all contributions across a user's
	// goals with a month on or before asOf. Used by balance computation.
	FindContributionsByUserUpTo(ctx context.Context, userID string, asOf time.Time) ([]domain.GoalContribution, error)

	// SumContributionsByGoalID returns the total contributed to a goal.
	SumContributionsByGoalID(ctx context.Context, goalID string) (decimal.Decimal, error)
}

// ContributionWriter defines write operations for goal contribution data
type ContributionWriter interface {
	// SaveContribution persists a contribution and increments the goal's current
	// amount within a single database transaction. The increment is applied
	// relative to the row's committed value, not to a caller-supplied total, so
	// concurrent contributions cannot overwrite each other. It returns the
	// updated current amount and completion flag as derived inside the
	// transaction.
	SaveContribution(ctx context.Context, contribution domain.GoalContribution, updatedByUserID string, updatedAt time.Time) (newCurrentAmount decimal.Decimal, completed bool, err error)
}

// GoalRepositoryFacade combines all goal-related repository interfaces
// This is a facade for clients that need access to all operations
type GoalRepositoryFacade interface {
	GoalReader
	GoalWriter
	ContributionReader
	ContributionWriter
}

// GoalRepositoryWithTx extends GoalRepositoryFacade with transaction capabilities
type GoalRepositoryWithTx interface {
	GoalRepositoryFacade
	TransactionManager
}
