package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	StreamRepo   StreamRepositoryFacade
	EntryRepo    EntryRepositoryFacade
	GoalRepo     GoalRepositoryWithTx
	SnapshotRepo SnapshotRepositoryFacade
	UserRepo     UserRepositoryFacade
}
