package mem

import (
	"time"

	"github.com/patrickmn/go-cache"

	"datenight/internal/planner/knowledge"
)

// KnowledgeStore caches knowledge bases under a caller chosen key (a city, a catalog
// fingerprint).
type KnowledgeStore interface {
	Get(key string) (*knowledge.KnowledgeBase, bool)
	Set(key string, kb *knowledge.KnowledgeBase)
	Delete(key string)
	Len() int
}

type knowledgeCache struct {
	c *cache.Cache
}

// NewKnowledgeStore expires entries after ttl and sweeps them every 2*ttl.
func NewKnowledgeStore(ttl time.Duration) KnowledgeStore {
	return &knowledgeCache{c: cache.New(ttl, 2*ttl)}
}

func (s *knowledgeCache) Get(key string) (*knowledge.KnowledgeBase, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false
	}
	kb, ok := v.(*knowledge.KnowledgeBase)
	return kb, ok
}

func (s *knowledgeCache) Set(key string, kb *knowledge.KnowledgeBase) {
	s.c.SetDefault(key, kb)
}

func (s *knowledgeCache) Delete(key string) {
	s.c.Delete(key)
}

func (s *knowledgeCache) Len() int {
	return s.c.ItemCount()
}
