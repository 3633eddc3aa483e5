package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/finsight/backend/internal/apperrors"
	"github.com/finsight/backend/internal/core/domain"
	portsrepo "github.com/finsight/backend/internal/core/ports/repositories"
	"github.com/finsight/backend/internal/models"
	"github.com/finsight/backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSnapshotRepository struct {
	BaseRepository
}

func newPgxSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepositoryFacade {
	return &PgxSnapshotRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSnapshotRepository implements portsrepo.SnapshotRepositoryFacade
var _ portsrepo.SnapshotRepositoryFacade = (*PgxSnapshotRepository)(nil)

const snapshotColumns = `user_id, month, total_income, total_expenses, total_savings,
	burn_rate, savings_rate, health_score,
	income_change_percent, expenses_change_percent, savings_change_percent,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSnapshot(row pgx.Row) (models.MonthlySnapshot, error) {
	var m models.MonthlySnapshot
	err := row.Scan(
		&m.UserID,
		&m.Month,
		&m.TotalIncome,
		&m.TotalExpenses,
		&m.TotalSavings,
		&m.BurnRate,
		&m.SavingsRate,
		&m.HealthScore,
		&m.IncomeChangePercent,
		&m.ExpensesChangePercent,
		&m.SavingsChangePercent,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// UpsertSnapshot fully replaces the row for (user_id, month) so recomputing a
// month is idempotent.
func (r *PgxSnapshotRepository) UpsertSnapshot(ctx context.Context, snapshot domain.MonthlySnapshot) error {
	m := mapping.ToModelSnapshot(snapshot)
	query := `
		INSERT INTO monthly_snapshots (` + snapshotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id, month) DO UPDATE SET
			total_income = EXCLUDED.total_income,
			total_expenses = EXCLUDED.total_expenses,
			total_savings = EXCLUDED.total_savings,
			burn_rate = EXCLUDED.burn_rate,
			savings_rate = EXCLUDED.savings_rate,
			health_score = EXCLUDED.health_score,
			income_change_percent = EXCLUDED.income_change_percent,
			expenses_change_percent = EXCLUDED.expenses_change_percent,
			savings_change_percent = EXCLUDED.savings_change_percent,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Month,
		m.TotalIncome,
		m.TotalExpenses,
		m.TotalSavings,
		m.BurnRate,
		m.SavingsRate,
		m.HealthScore,
		m.IncomeChangePercent,
		m.ExpensesChangePercent,
		m.SavingsChangePercent,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert snapshot for user "+m.UserID, err)
	}
	return nil
}

func (r *PgxSnapshotRepository) FindSnapshot(ctx context.Context, userID string, month time.Time) (*domain.MonthlySnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM monthly_snapshots WHERE user_id = $1 AND month = $2;`
	m, err := scanSnapshot(r.Pool.QueryRow(ctx, query, userID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find snapshot for user "+userID, err)
	}
	d := mapping.ToDomainSnapshot(m)
	return &d, nil
}

func (r *PgxSnapshotRepository) ListSnapshotsByUser(ctx context.Context, userID string, from, to time.Time) ([]domain.MonthlySnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM monthly_snapshots
		WHERE user_id = $1 AND month >= $2 AND month <= $3
		ORDER BY month;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query snapshots for user "+userID, err)
	}
	defer rows.Close()

	ms := []models.MonthlySnapshot{}
	for rows.Next() {
		m, scanErr := scanSnapshot(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan snapshot row", scanErr)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading snapshot rows", err)
	}

	return mapping.ToDomainSnapshotSlice(ms), nil
}

func (r *PgxSnapshotRepository) FindLatestSnapshotBefore(ctx context.Context, userID string, month time.Time) (*domain.MonthlySnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM monthly_snapshots
		WHERE user_id = $1 AND month < $2
		ORDER BY month DESC
		LIMIT 1;
	`
	m, err := scanSnapshot(r.Pool.QueryRow(ctx, query, userID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest snapshot for user "+userID, err)
	}
	d := mapping.ToDomainSnapshot(m)
	return &d, nil
}
