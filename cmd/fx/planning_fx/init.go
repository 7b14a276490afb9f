package planning_fx

import (
	"go.uber.org/fx"

	"datenight/internal/config"
	"datenight/internal/services"
)

var Module = fx.Provide(providePlanningService)

func providePlanningService(
	venueService services.VenueServiceInterface,
	knowledgeService services.KnowledgeServiceInterface,
	cfg config.PlannerConfig,
) services.PlanningServiceInterface {
	return services.NewPlanningService(venueService, knowledgeService, cfg)
}
