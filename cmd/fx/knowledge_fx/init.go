package knowledge_fx

import (
	"go.uber.org/fx"

	"datenight/internal/services"
	mem "datenight/pkg/memcache"
)

var Module = fx.Provide(provideKnowledgeService)

func provideKnowledgeService(venueService services.VenueServiceInterface, store mem.KnowledgeStore) services.KnowledgeServiceInterface {
	return services.NewKnowledgeService(venueService, store)
}
