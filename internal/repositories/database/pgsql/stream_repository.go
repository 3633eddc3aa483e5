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
)

type PgxStreamRepository struct {
	BaseRepository
}

func newPgxStreamRepository(pool *pgxpool.Pool) portsrepo.StreamRepositoryFacade {
	return &PgxStreamRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxStreamRepository implements portsrepo.StreamRepositoryFacade
var _ portsrepo.StreamRepositoryFacade = (*PgxStreamRepository)(nil)

const streamColumns = `stream_id, user_id, name, kind, amount, frequency, active_from, active_until, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanStream(row pgx.Row) (models.CashFlowStream, error) {
	var m models.CashFlowStream
	err := row.Scan(
		&m.StreamID,
		&m.UserID,
		&m.Name,
		&m.Kind,
		&m.Amount,
		&m.Frequency,
		&m.ActiveFrom,
		&m.ActiveUntil,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxStreamRepository) SaveStream(ctx context.Context, stream domain.CashFlowStream) error {
	m := mapping.ToModelStream(stream)
	query := `
		INSERT INTO cash_flow_streams (` + streamColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.StreamID,
		m.UserID,
		m.Name,
		m.Kind,
		m.Amount,
		m.Frequency,
		m.ActiveFrom,
		m.ActiveUntil,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert stream "+m.StreamID, err)
	}
	return nil
}

func (r *PgxStreamRepository) FindStreamByID(ctx context.Context, streamID string) (*domain.CashFlowStream, error) {
	query := `SELECT ` + streamColumns + ` FROM cash_flow_streams WHERE stream_id = $1;`
	m, err := scanStream(r.Pool.QueryRow(ctx, query, streamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find stream by ID "+streamID, err)
	}
	d := mapping.ToDomainStream(m)
	return &d, nil
}

func (r *PgxStreamRepository) ListStreamsByUser(ctx context.Context, userID string, limit int, nextToken *string, includeInactive bool) ([]domain.CashFlowStream, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	filterClause := `WHERE user_id = $1`
	if !includeInactive {
		filterClause += ` AND is_active = TRUE`
	}
	// Stable ordering: newest first, stream_id as tie-breaker.
	orderByClause := `ORDER BY created_at DESC, stream_id DESC`

	args := []interface{}{userID}
	query := `SELECT ` + streamColumns + ` FROM cash_flow_streams ` + filterClause

	if nextToken != nil && *nextToken != "" {
		fields, decodeErr := pagination.DecodeMultiFieldToken(*nextToken)
		if decodeErr != nil || len(fields) != 2 {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		lastCreatedAt, parseErr := time.Parse(time.RFC3339Nano, fields[0])
		if parseErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", parseErr)
		}
		query += ` AND (created_at, stream_id) < ($2, $3)`
		args = append(args, lastCreatedAt, fields[1])
	}

	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query streams for user "+userID, err)
	}
	defer rows.Close()

	ms := make([]models.CashFlowStream, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanStream(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan stream row", scanErr)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed reading stream rows", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.StreamID)
		next = &token
	}

	return mapping.ToDomainStreamSlice(ms), next, nil
}

func (r *PgxStreamRepository) FindActiveStreamsInWindow(ctx context.Context, userID string, asOf time.Time) ([]domain.CashFlowStream, error) {
	query := `
		SELECT ` + streamColumns + `
		FROM cash_flow_streams
		WHERE user_id = $1 AND is_active = TRUE AND active_from <= $2
		ORDER BY active_from, stream_id;
	`
	rows, err := r.Pool.Query(ctx, query, userID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query active streams for user "+userID, err)
	}
	defer rows.Close()

	ms := []models.CashFlowStream{}
	for rows.Next() {
		m, scanErr := scanStream(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan stream row", scanErr)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading stream rows", err)
	}

	return mapping.ToDomainStreamSlice(ms), nil
}

func (r *PgxStreamRepository) UpdateStream(ctx context.Context, stream domain.CashFlowStream) error {
	m := mapping.ToModelStream(stream)
	query := `
		UPDATE cash_flow_streams SET
			name = $2,
			amount = $3,
			active_until = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE stream_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.StreamID,
		m.Name,
		m.Amount,
		m.ActiveUntil,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update stream "+m.StreamID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxStreamRepository) DeactivateStream(ctx context.Context, streamID string, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE cash_flow_streams SET
			is_active = FALSE,
			last_updated_at = $2,
			last_updated_by = $3
		WHERE stream_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, streamID, updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate stream "+streamID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
