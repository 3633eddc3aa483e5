package services

import (
	"github.com/finsight/backend/internal/core/planning"
	portsrepo "github.com/finsight/backend/internal/core/ports/repositories"
	portssvc "github.com/finsight/backend/internal/core/ports/services"
	"github.com/finsight/backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Stream = NewStreamService(repos.StreamRepo)
	container.Entry = NewEntryService(repos.EntryRepo)
	container.Goal = NewGoalService(repos.GoalRepo)
	container.User = NewUserService(repos.UserRepo)

	planningOpts := []PlanningServiceOption{
		WithConfidenceParams(planning.ConfidenceParams{
			Initial:       cfg.ProjectionConfidenceInitial,
			DecayPerMonth: cfg.ProjectionConfidenceDecay,
			Floor:         cfg.ProjectionConfidenceFloor,
		}),
	}
	if len(cfg.ScenarioCandidateRates) > 0 {
		planningOpts = append(planningOpts, WithCandidateRates(cfg.ScenarioCandidateRates))
	}
	if cfg.ProjectionCacheTTL > 0 {
		planningOpts = append(planningOpts,
			WithProjectionCache(planning.NewProjectionCache(cfg.ProjectionCacheTTL, cfg.ProjectionCacheSize)))
	}
	container.Planning = NewPlanningService(
		repos.StreamRepo,
		repos.EntryRepo,
		repos.GoalRepo,
		repos.SnapshotRepo,
		planningOpts...,
	)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
