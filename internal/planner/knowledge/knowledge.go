// Package knowledge holds the immutable snapshot of everything learned from a venue
// catalog: vibe vocabularies, type/vibe associations, related type terms, the rating
// prior and the price tiers.
//
// A KnowledgeBase is built once per catalog load and shared read-only by every scorer.
// It is never patched; when the catalog changes a new one is built.
package knowledge

import (
	"sort"
	"strings"
)

// RatingPrior parameterises Bayesian rating shrinkage and the hidden gem test.
type RatingPrior struct {
	Mean          float64 `json:"mean"`
	Std           float64 `json:"std"`
	MinReviews    int     `json:"min_reviews"`
	MedianReviews int     `json:"median_reviews"`
}

// BudgetTiers are price boundaries learned from the catalog's cost distribution.
type BudgetTiers struct {
	Min  float64 `json:"min"`
	Low  float64 `json:"low"`  // 33rd percentile
	High float64 `json:"high"` // 67th percentile
	Max  float64 `json:"max"`
}

// Tier maps a price to 1 (budget), 2 (moderate) or 3 (expensive).
func (t BudgetTiers) Tier(price float64) int {
	switch {
	case price <= t.Low:
		return 1
	case price <= t.High:
		return 2
	default:
		return 3
	}
}

// Snapshot is the plain data behind a KnowledgeBase.
type Snapshot struct {
	VibeKeywords map[string][]string
	TypeVibes    map[string][]string
	RelatedTerms map[string][]string
	Rating       RatingPrior
	Budget       BudgetTiers
	Fingerprint  string
	VenueCount   int
}

type KnowledgeBase struct {
	snap Snapshot
}

// New wraps a snapshot as is. Maps are copied so later edits to s do not leak in.
func New(s Snapshot) *KnowledgeBase {
	return &KnowledgeBase{snap: Snapshot{
		VibeKeywords: copyTable(s.VibeKeywords),
		TypeVibes:    copyTable(s.TypeVibes),
		RelatedTerms: copyTable(s.RelatedTerms),
		Rating:       s.Rating,
		Budget:       s.Budget,
		Fingerprint:  s.Fingerprint,
		VenueCount:   s.VenueCount,
	}}
}

// Default returns the seed tables with fallback priors, for an empty catalog.
func Default() *KnowledgeBase {
	return New(Snapshot{
		VibeKeywords: seedVibeKeywords,
		TypeVibes:    seedTypeVibes,
		RelatedTerms: seedRelatedTerms,
		Rating: RatingPrior{
			Mean:          defaultRatingMean,
			Std:           defaultRatingStd,
			MinReviews:    defaultMinReviews,
			MedianReviews: defaultMedianReviews,
		},
		Budget: BudgetTiers{Min: 0, Low: defaultTierLow, High: defaultTierHigh, Max: defaultTierMax},
	})
}

func (kb *KnowledgeBase) Rating() RatingPrior { return kb.snap.Rating }

func (kb *KnowledgeBase) Budget() BudgetTiers { return kb.snap.Budget }

func (kb *KnowledgeBase) Fingerprint() string { return kb.snap.Fingerprint }

func (kb *KnowledgeBase) VenueCount() int { return kb.snap.VenueCount }

// RelatedTerms returns expansions for a lower-cased term.
func (kb *KnowledgeBase) RelatedTerms(term string) []string {
	return cloneStrings(kb.snap.RelatedTerms[strings.ToLower(strings.TrimSpace(term))])
}

// VibeKeywords returns the vocabulary that signals vibe in free text.
func (kb *KnowledgeBase) VibeKeywords(vibe string) []string {
	return cloneStrings(kb.snap.VibeKeywords[strings.ToLower(vibe)])
}

// Vibes lists every vibe the snapshot has keywords for, sorted.
func (kb *KnowledgeBase) Vibes() []string {
	out := make([]string, 0, len(kb.snap.VibeKeywords))
	for v := range kb.snap.VibeKeywords {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// TypeVibes returns vibes common for a venue type. An exact key wins; otherwise
// keys contained in the type (or containing it) are merged, e.g. sports_bar -> bar.
func (kb *KnowledgeBase) TypeVibes(venueType string) []string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(venueType)), " ", "_")
	if key == "" {
		return nil
	}
	if vibes, ok := kb.snap.TypeVibes[key]; ok {
		return cloneStrings(vibes)
	}
	keys := make([]string, 0, len(kb.snap.TypeVibes))
	for k := range kb.snap.TypeVibes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seen := map[string]struct{}{}
	var out []string
	for _, k := range keys {
		if !strings.Contains(key, k) && !strings.Contains(k, key) {
			continue
		}
		for _, v := range kb.snap.TypeVibes[k] {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	return out
}

// Summary is a serialisable overview of the snapshot.
type Summary struct {
	Fingerprint      string      `json:"fingerprint"`
	VenueCount       int         `json:"venue_count"`
	Rating           RatingPrior `json:"rating"`
	Budget           BudgetTiers `json:"budget"`
	VibeCount        int         `json:"vibe_count"`
	TypeVibeCount    int         `json:"type_vibe_count"`
	RelatedTermCount int         `json:"related_term_count"`
}

func (kb *KnowledgeBase) Summary() Summary {
	return Summary{
		Fingerprint:      kb.snap.Fingerprint,
		VenueCount:       kb.snap.VenueCount,
		Rating:           kb.snap.Rating,
		Budget:           kb.snap.Budget,
		VibeCount:        len(kb.snap.VibeKeywords),
		TypeVibeCount:    len(kb.snap.TypeVibes),
		RelatedTermCount: len(kb.snap.RelatedTerms),
	}
}

func copyTable(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = cloneStrings(v)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
