package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/finsight/backend/internal/apperrors"
	"github.com/finsight/backend/internal/core/domain"
	portsrepo "github.com/finsight/backend/internal/core/ports/repositories"
	"github.com/finsight/backend/internal/models"
	"github.com/finsight/backend/internal/utils/mapping"
	"github.com/finsight/backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxGoalRepository struct {
	BaseRepository
}

func newPgxGoalRepository(pool *pgxpool.Pool) portsrepo.GoalRepositoryWithTx {
	return &PgxGoalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxGoalRepository implements portsrepo.GoalRepositoryWithTx
var _ portsrepo.GoalRepositoryWithTx = (*PgxGoalRepository)(nil)

const goalColumns = `goal_id, user_id, name, target_amount, current_amount, target_date, is_completed,
	asset_initial_price, asset_annual_rate, asset_down_payment_ratio,
	created_at, created_by, last_updated_at, last_updated_by`

const contributionColumns = `contribution_id, goal_id, amount, month, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanGoal(row pgx.Row) (models.Goal, error) {
	var m models.Goal
	err := row.Scan(
		&m.GoalID,
		&m.UserID,
		&m.Name,
		&m.TargetAmount,
		&m.CurrentAmount,
		&m.TargetDate,
		&m.IsCompleted,
		&m.AssetInitialPrice,
		&m.AssetAnnualRate,
		&m.AssetDownPaymentRatio,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanContribution(row pgx.Row) (models.GoalContribution, error) {
	var m models.GoalContribution
	err := row.Scan(
		&m.ContributionID,
		&m.GoalID,
		&m.Amount,
		&m.Month,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	query := `
		INSERT INTO goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.GoalID,
		m.UserID,
		m.Name,
		m.TargetAmount,
		m.CurrentAmount,
		m.TargetDate,
		m.IsCompleted,
		m.AssetInitialPrice,
		m.AssetAnnualRate,
		m.AssetDownPaymentRatio,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert goal "+m.GoalID, err)
	}
	return nil
}

func (r *PgxGoalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE goal_id = $1;`
	m, err := scanGoal(r.Pool.QueryRow(ctx, query, goalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find goal by ID "+goalID, err)
	}
	d := mapping.ToDomainGoal(m)
	return &d, nil
}

func (r *PgxGoalRepository) ListGoalsByUser(ctx context.Context, userID string, limit int, nextToken *string, includeCompleted bool) ([]domain.Goal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	filterClause := `WHERE user_id = $1`
	if !includeCompleted {
		filterClause += ` AND is_completed = FALSE`
	}

	args := []interface{}{userID}
	query := `SELECT ` + goalColumns + ` FROM goals ` + filterClause

	if nextToken != nil && *nextToken != "" {
		lastTargetDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (target_date, created_at) > ($2, $3)`
		args = append(args, lastTargetDate, lastCreatedAt)
	}

	// Nearest deadline first.
	query += ` ORDER BY target_date ASC, created_at ASC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query goals for user "+userID, err)
	}
	defer rows.Close()

	ms := make([]models.Goal, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanGoal(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan goal row", scanErr)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed reading goal rows", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.TargetDate, last.CreatedAt)
		next = &token
	}

	return mapping.ToDomainGoalSlice(ms), next, nil
}

func (r *PgxGoalRepository) FindGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY target_date, goal_id;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query goals for user "+userID, err)
	}
	defer rows.Close()

	ms := []models.Goal{}
	for rows.Next() {
		m, scanErr := scanGoal(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan goal row", scanErr)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading goal rows", err)
	}

	return mapping.ToDomainGoalSlice(ms), nil
}

func (r *PgxGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	query := `
		UPDATE goals SET
			name = $2,
			target_amount = $3,
			target_date = $4,
			is_completed = $5,
			asset_initial_price = $6,
			asset_annual_rate = $7,
			asset_down_payment_ratio = $8,
			last_updated_at = $9,
			last_updated_by = $10
		WHERE goal_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.GoalID,
		m.Name,
		m.TargetAmount,
		m.TargetDate,
		m.IsCompleted,
		m.AssetInitialPrice,
		m.AssetAnnualRate,
		m.AssetDownPaymentRatio,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update goal "+m.GoalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteGoal removes the goal and, via ON DELETE CASCADE, its contributions.
func (r *PgxGoalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	query := `DELETE FROM goals WHERE goal_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, goalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete goal "+goalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxGoalRepository) FindContributionsByGoalID(ctx context.Context, goalID string) ([]domain.GoalContribution, error) {
	query := `
		SELECT ` + contributionColumns + `
		FROM goal_contributions
		WHERE goal_id = $1
		ORDER BY month, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, goalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query contributions for goal "+goalID, err)
	}
	defer rows.Close()

	ms := []models.GoalContribution{}
	for rows.Next() {
		m, scanErr := scanContribution(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan contribution row", scanErr)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading contribution rows", err)
	}

	return mapping.ToDomainContributionSlice(ms), nil
}

func (r *PgxGoalRepository) FindContributionsByUserUpTo(ctx context.Context, userID string, asOf time.Time) ([]domain.GoalContribution, error) {
	query := `
		SELECT c.contribution_id, c.goal_id, c.amount, c.month, c.notes,
			c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM goal_contributions c
		JOIN goals g ON g.goal_id = c.goal_id
		WHERE g.user_id = $1 AND c.month <= $2
		ORDER BY c.month, c.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query contributions for user "+userID, err)
	}
	defer rows.Close()

	ms := []models.GoalContribution{}
	for rows.Next() {
		m, scanErr := scanContribution(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan contribution row", scanErr)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading contribution rows", err)
	}

	return mapping.ToDomainContributionSlice(ms), nil
}

func (r *PgxGoalRepository) SumContributionsByGoalID(ctx context.Context, goalID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM goal_contributions WHERE goal_id = $1;`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, goalID).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum contributions for goal "+goalID, err)
	}
	return sum, nil
}

// SaveContribution inserts the contribution row and increments the goal's
// current amount in one transaction. The increment and the completion flag are
// computed by the database against the committed row, so two concurrent
// contributions both land in the aggregate instead of the later write
// clobbering the earlier one.
func (r *PgxGoalRepository) SaveContribution(ctx context.Context, contribution domain.GoalContribution, updatedByUserID string, updatedAt time.Time) (decimal.Decimal, bool, error) {
	m := mapping.ToModelContribution(contribution)

	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, false, err
	}
	defer r.Rollback(ctx, tx)

	insertQuery := `
		INSERT INTO goal_contributions (` + contributionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.ContributionID,
		m.GoalID,
		m.Amount,
		m.Month,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return decimal.Zero, false, apperrors.NewAppError(500, "failed to insert contribution for goal "+m.GoalID, err)
	}

	updateQuery := `
		UPDATE goals SET
			current_amount = current_amount + $2,
			is_completed = current_amount + $2 >= target_amount,
			last_updated_at = $3,
			last_updated_by = $4
		WHERE goal_id = $1
		RETURNING current_amount, is_completed;
	`
	var newCurrentAmount decimal.Decimal
	var completed bool
	err = tx.QueryRow(ctx, updateQuery, m.GoalID, m.Amount, updatedAt, updatedByUserID).Scan(&newCurrentAmount, &completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, apperrors.ErrNotFound
		}
		return decimal.Zero, false, apperrors.NewAppError(500, "failed to update goal "+m.GoalID+" from contribution", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, false, err
	}
	return newCurrentAmount, completed, nil
}
