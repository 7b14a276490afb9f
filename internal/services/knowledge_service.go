package services

import (
	"context"
	"strings"

	"golang.org/x/sync/singleflight"

	"datenight/internal/logging"
	"datenight/internal/metrics"
	"datenight/internal/models/response_models"
	"datenight/internal/planner/knowledge"
	"datenight/internal/planner/model"
	mem "datenight/pkg/memcache"
)

type KnowledgeServiceInterface interface {
	// ForCatalog returns the knowledge base learned from venues, building it at most once
	// per catalog fingerprint while cached.
	ForCatalog(ctx context.Context, venues []model.Venue) (*knowledge.KnowledgeBase, bool)
	Summary(ctx context.Context, city string) (response_models.Knowledge, error)
	Rebuild(ctx context.Context, city string) (response_models.Knowledge, error)
}

type KnowledgeService struct {
	venueService VenueServiceInterface
	store        mem.KnowledgeStore
	builds       singleflight.Group
}

func NewKnowledgeService(venueService VenueServiceInterface, store mem.KnowledgeStore) KnowledgeServiceInterface {
	return &KnowledgeService{venueService: venueService, store: store}
}

func (s *KnowledgeService) ForCatalog(ctx context.Context, venues []model.Venue) (*knowledge.KnowledgeBase, bool) {
	fp := knowledge.Fingerprint(venues)
	if kb, ok := s.store.Get(fp); ok {
		metrics.KnowledgeCacheHits.Inc()
		return kb, true
	}
	metrics.KnowledgeCacheMisses.Inc()

	v, _, _ := s.builds.Do(fp, func() (interface{}, error) {
		if kb, ok := s.store.Get(fp); ok {
			return kb, nil
		}
		kb := knowledge.Build(venues)
		metrics.KnowledgeBuilds.Inc()
		s.store.Set(fp, kb)
		logging.Ctx(ctx).Info().
			Str("fingerprint", fp).
			Int("venues", len(venues)).
			Int("vibes", len(kb.Vibes())).
			Msg("knowledge base built")
		return kb, nil
	})
	return v.(*knowledge.KnowledgeBase), false
}

func (s *KnowledgeService) Summary(ctx context.Context, city string) (response_models.Knowledge, error) {
	venues, err := s.venueService.LoadCatalog(ctx, city)
	if err != nil {
		return response_models.Knowledge{}, err
	}
	kb, cached := s.ForCatalog(ctx, venues)
	return response_models.Knowledge{City: normalizeCity(city), Summary: kb.Summary(), Cached: cached}, nil
}

func (s *KnowledgeService) Rebuild(ctx context.Context, city string) (response_models.Knowledge, error) {
	venues, err := s.venueService.LoadCatalog(ctx, city)
	if err != nil {
		return response_models.Knowledge{}, err
	}
	s.store.Delete(knowledge.Fingerprint(venues))
	kb, _ := s.ForCatalog(ctx, venues)
	return response_models.Knowledge{City: normalizeCity(city), Summary: kb.Summary()}, nil
}

func normalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
