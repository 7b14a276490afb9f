package memcache_fx

import (
	"go.uber.org/fx"

	"datenight/internal/config"
	mem "datenight/pkg/memcache"
)

var Module = fx.Provide(provideKnowledgeStore)

func provideKnowledgeStore(cfg *config.Config) mem.KnowledgeStore {
	return mem.NewKnowledgeStore(cfg.Knowledge.CacheTTL)
}
