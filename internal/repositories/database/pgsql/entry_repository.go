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

type PgxEntryRepository struct {
	BaseRepository
}

func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, user_id, kind, amount, entry_date, category,
	created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.OneTimeEntry, error) {
	var m models.OneTimeEntry
	err := row.Scan(
		&m.EntryID,
		&m.UserID,
		&m.Kind,
		&m.Amount,
		&m.Date,
		&m.Category,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.OneTimeEntry) error {
	m := mapping.ToModelEntry(entry)
	query := `
		INSERT INTO one_time_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.UserID,
		m.Kind,
		m.Amount,
		m.Date,
		m.Category,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert entry "+m.EntryID, err)
	}
	return nil
}

func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.OneTimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM one_time_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}
	d := mapping.ToDomainEntry(m)
	return &d, nil
}

func (r *PgxEntryRepository) ListEntriesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.OneTimeEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	args := []interface{}{userID}
	query := `SELECT ` + entryColumns + ` FROM one_time_entries WHERE user_id = $1`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}

	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for user "+userID, err)
	}
	defer rows.Close()

	ms := make([]models.OneTimeEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row", scanErr)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed reading entry rows", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		next = &token
	}

	return mapping.ToDomainEntrySlice(ms), next, nil
}

func (r *PgxEntryRepository) FindEntriesUpTo(ctx context.Context, userID string, asOf time.Time) ([]domain.OneTimeEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM one_time_entries
		WHERE user_id = $1 AND entry_date <= $2
		ORDER BY entry_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for user "+userID, err)
	}
	defer rows.Close()

	ms := []models.OneTimeEntry{}
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", scanErr)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading entry rows", err)
	}

	return mapping.ToDomainEntrySlice(ms), nil
}

func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	query := `DELETE FROM one_time_entries WHERE entry_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
