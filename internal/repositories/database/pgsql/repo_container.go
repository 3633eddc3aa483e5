package pgsql

import (
	portsrepo "github.com/finsight/backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		StreamRepo:   newPgxStreamRepository(dbPool),
		EntryRepo:    newPgxEntryRepository(dbPool),
		GoalRepo:     newPgxGoalRepository(dbPool),
		SnapshotRepo: newPgxSnapshotRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
	}
}
