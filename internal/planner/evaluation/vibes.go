package evaluation

import (
	"math/rand/v2"
	"sort"
	"strings"

	"datenight/internal/planner/knowledge"
	"datenight/internal/planner/model"
	"datenight/internal/planner/scoring"
)

type VibeCount struct {
	Vibe    string `json:"vibe"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

// VibeAccuracy compares inferred vibes with the labels stored on venues.
type VibeAccuracy struct {
	Correct  int         `json:"correct"`
	Total    int         `json:"total"`
	Accuracy float64     `json:"accuracy"` // percent
	ByVibe   []VibeCount `json:"by_vibe"`
}

// MeasureVibeAccuracy samples up to n labelled venues with a description and counts how
// often InferVibes recovers the first stored label.
func MeasureVibeAccuracy(kb *knowledge.KnowledgeBase, rng *rand.Rand, venues []model.Venue, n int) VibeAccuracy {
	var labelled []model.Venue
	for _, v := range venues {
		if len(v.Vibes) > 0 && strings.TrimSpace(v.Description) != "" {
			labelled = append(labelled, v)
		}
	}
	if len(labelled) > n {
		sample := make([]model.Venue, 0, n)
		for _, i := range rng.Perm(len(labelled))[:n] {
			sample = append(sample, labelled[i])
		}
		labelled = sample
	}

	acc := VibeAccuracy{Total: len(labelled)}
	byVibe := map[string]*VibeCount{}
	for i := range labelled {
		v := &labelled[i]
		stored := strings.ToLower(strings.TrimSpace(v.Vibes[0]))
		count, ok := byVibe[stored]
		if !ok {
			count = &VibeCount{Vibe: stored}
			byVibe[stored] = count
		}
		count.Total++

		inferred := scoring.InferVibes(kb, v.Description+" "+v.Review, v.PrimaryType)
		for _, got := range inferred {
			if got == stored {
				count.Correct++
				acc.Correct++
				break
			}
		}
	}
	for _, c := range byVibe {
		acc.ByVibe = append(acc.ByVibe, *c)
	}
	sort.Slice(acc.ByVibe, func(i, j int) bool { return acc.ByVibe[i].Vibe < acc.ByVibe[j].Vibe })
	if acc.Total > 0 {
		acc.Accuracy = float64(acc.Correct) / float64(acc.Total) * 100
	}
	return acc
}
