package evaluation_fx

import (
	"go.uber.org/fx"

	"datenight/internal/config"
	"datenight/internal/services"
)

var Module = fx.Provide(provideEvaluationService)

func provideEvaluationService(
	venueService services.VenueServiceInterface,
	knowledgeService services.KnowledgeServiceInterface,
	cfg config.PlannerConfig,
) services.EvaluationServiceInterface {
	return services.NewEvaluationService(venueService, knowledgeService, cfg)
}
