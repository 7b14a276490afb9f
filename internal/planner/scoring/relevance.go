package scoring

import (
	"strings"

	"datenight/internal/planner/knowledge"
	"datenight/internal/planner/model"
)

const (
	typeMatchWeight    = 2.0
	vibeMatchWeight    = 0.5
	keywordMatchWeight = 0.2
	minKeywordLen      = 4
)

// Index precomputes the searchable text of each venue once, so a batch of relevance
// scores does not rebuild strings per call.
type Index struct {
	venues    []model.Venue
	typeTexts []string
	fullTexts []string
	byID      map[string]int
}

func NewIndex(venues []model.Venue) *Index {
	idx := &Index{
		venues:    venues,
		typeTexts: make([]string, len(venues)),
		fullTexts: make([]string, len(venues)),
		byID:      make(map[string]int, len(venues)),
	}
	for i := range venues {
		v := &venues[i]
		idx.typeTexts[i] = typeText(v)
		idx.fullTexts[i] = strings.ToLower(strings.Join([]string{
			v.Name, v.PrimaryType, strings.Join(v.Types, " "),
			v.Description, v.Review, strings.Join(v.Vibes, " "),
		}, " "))
		idx.byID[v.ID] = i
	}
	return idx
}

func (idx *Index) Len() int { return len(idx.venues) }

func (idx *Index) Venue(i int) *model.Venue { return &idx.venues[i] }

// Position returns the index of a venue id.
func (idx *Index) Position(id string) (int, bool) {
	i, ok := idx.byID[id]
	return i, ok
}

// Text returns the full lower-cased searchable text of venue i.
func (idx *Index) Text(i int) string { return idx.fullTexts[i] }

// Match tests targets against venue i using the cached type text.
func (idx *Index) Match(kb *knowledge.KnowledgeBase, targets []string, i int) Match {
	best := Match{}
	for _, t := range targets {
		if m := matchText(kb, t, &idx.venues[i], idx.typeTexts[i]); m.Score > best.Score {
			best = m
		}
	}
	return best
}

// Relevance scores venue i: +2 per matched type, +0.5 per shared vibe, +0.2 per query
// keyword found in the venue text.
func (idx *Index) Relevance(kb *knowledge.KnowledgeBase, i int, vibes, types, keywords []string) float64 {
	v := &idx.venues[i]
	score := 0.0
	for _, t := range types {
		if matchText(kb, t, v, idx.typeTexts[i]).Matched() {
			score += typeMatchWeight
		}
	}
	for _, vb := range vibes {
		if v.HasVibe(vb) {
			score += vibeMatchWeight
		}
	}
	for _, kw := range keywords {
		if strings.Contains(idx.fullTexts[i], kw) {
			score += keywordMatchWeight
		}
	}
	return score
}

// RelevanceAll scores every venue in the index.
func (idx *Index) RelevanceAll(kb *knowledge.KnowledgeBase, vibes, types []string, query string) []float64 {
	keywords := QueryKeywords(query)
	out := make([]float64, len(idx.venues))
	for i := range idx.venues {
		out[i] = idx.Relevance(kb, i, vibes, types, keywords)
	}
	return out
}

// QueryKeywords lower-cases a free text query and keeps words longer than three letters.
func QueryKeywords(query string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		w = strings.Trim(w, ".,!?;:()[]\"'")
		if len(w) >= minKeywordLen {
			out = append(out, w)
		}
	}
	return out
}
