package knowledge

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/thoas/go-funk"

	"datenight/internal/planner/model"
)

const (
	minWordLen             = 4
	minKeywordCount        = 3
	keywordFrequencyFloor  = 0.1 / 100
	keywordContrast        = 2.0
	maxKeywordsPerVibe     = 20
	typeVibeShare          = 0.2
	minTypeVibeCount       = 2
	minCooccurrence        = 3
	maxRelatedTermsPerWord = 5
)

// fingerprintSpace namespaces catalog fingerprints.
var fingerprintSpace = uuid.MustParse("6f1c3f0e-7d0b-4c8e-9a55-1e0f5b7d2a41")

// Build learns a snapshot from a catalog. An empty catalog yields Default() tables with
// the fingerprint of the empty set.
func Build(venues []model.Venue) *KnowledgeBase {
	base := Default()
	if len(venues) == 0 {
		base.snap.Fingerprint = Fingerprint(venues)
		return base
	}

	return &KnowledgeBase{snap: Snapshot{
		VibeKeywords: merge(seedVibeKeywords, learnVibeKeywords(venues)),
		TypeVibes:    merge(seedTypeVibes, learnTypeVibes(venues)),
		RelatedTerms: merge(seedRelatedTerms, learnRelatedTerms(venues)),
		Rating:       learnRatingPrior(venues),
		Budget:       learnBudgetTiers(venues),
		Fingerprint:  Fingerprint(venues),
		VenueCount:   len(venues),
	}}
}

// Fingerprint identifies a catalog by the fields learning depends on. Two catalogs with
// the same fingerprint produce the same snapshot.
func Fingerprint(venues []model.Venue) string {
	rows := make([]string, 0, len(venues))
	for _, v := range venues {
		rows = append(rows, fmt.Sprintf("%s|%s|%.2f|%.2f|%d|%s|%d|%d",
			v.ID, v.PrimaryType, v.Cost, v.Rating, v.ReviewCount,
			strings.Join(v.Vibes, ","), len(v.Description), len(v.Types)))
	}
	sort.Strings(rows)
	return uuid.NewSHA1(fingerprintSpace, []byte(strings.Join(rows, "\n"))).String()
}

func learnRatingPrior(venues []model.Venue) RatingPrior {
	ratings := make([]float64, 0, len(venues))
	reviews := make([]float64, 0, len(venues))
	for _, v := range venues {
		if v.Rating > 0 {
			ratings = append(ratings, v.Rating)
		}
		reviews = append(reviews, float64(v.ReviewCount))
	}
	if len(ratings) == 0 {
		return Default().snap.Rating
	}
	mean, std := meanStd(ratings)
	return RatingPrior{
		Mean:          mean,
		Std:           std,
		MinReviews:    int(quantile(reviews, 0.25)),
		MedianReviews: int(quantile(reviews, 0.5)),
	}
}

func learnBudgetTiers(venues []model.Venue) BudgetTiers {
	costs := make([]float64, 0, len(venues))
	for _, v := range venues {
		if v.Cost >= 0 && !math.IsNaN(v.Cost) {
			costs = append(costs, v.Cost)
		}
	}
	if len(costs) == 0 {
		return Default().snap.Budget
	}
	sort.Float64s(costs)
	return BudgetTiers{
		Min:  costs[0],
		Low:  quantile(costs, 0.33),
		High: quantile(costs, 0.67),
		Max:  costs[len(costs)-1],
	}
}

// learnVibeKeywords keeps words that are at least twice as frequent in a vibe's venues
// as in the rest of the catalog.
func learnVibeKeywords(venues []model.Venue) map[string][]string {
	texts := make([][]string, len(venues))
	vibes := map[string]struct{}{}
	for i, v := range venues {
		texts[i] = tokenize(v.Description + " " + v.Review + " " + v.Name)
		for _, vb := range v.Vibes {
			if vb = strings.ToLower(strings.TrimSpace(vb)); vb != "" {
				vibes[vb] = struct{}{}
			}
		}
	}

	out := make(map[string][]string, len(vibes))
	for vibe := range vibes {
		in, other := map[string]int{}, map[string]int{}
		inTotal, otherTotal := 0, 0
		for i, v := range venues {
			target, total := other, &otherTotal
			if v.HasVibe(vibe) {
				target, total = in, &inTotal
			}
			for _, w := range texts[i] {
				target[w]++
				*total++
			}
		}
		if inTotal == 0 {
			continue
		}
		if otherTotal == 0 {
			otherTotal = 1
		}

		type scored struct {
			word  string
			count int
		}
		var picks []scored
		for w, c := range in {
			if c < minKeywordCount {
				continue
			}
			freq := float64(c) / float64(inTotal)
			otherFreq := float64(other[w]) / float64(otherTotal)
			if freq > otherFreq*keywordContrast && freq > keywordFrequencyFloor {
				picks = append(picks, scored{w, c})
			}
		}
		sort.Slice(picks, func(a, b int) bool {
			if picks[a].count != picks[b].count {
				return picks[a].count > picks[b].count
			}
			return picks[a].word < picks[b].word
		})
		if len(picks) > maxKeywordsPerVibe {
			picks = picks[:maxKeywordsPerVibe]
		}
		words := make([]string, len(picks))
		for i, p := range picks {
			words[i] = p.word
		}
		if len(words) > 0 {
			out[vibe] = words
		}
	}
	return out
}

// learnTypeVibes keeps vibes carried by at least a fifth of a type's venues.
func learnTypeVibes(venues []model.Venue) map[string][]string {
	byType := map[string][]model.Venue{}
	for _, v := range venues {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v.PrimaryType)), " ", "_")
		if key != "" {
			byType[key] = append(byType[key], v)
		}
	}

	out := map[string][]string{}
	for t, group := range byType {
		counts := map[string]int{}
		for _, v := range group {
			for _, vb := range v.Vibes {
				if vb = strings.ToLower(strings.TrimSpace(vb)); vb != "" {
					counts[vb]++
				}
			}
		}
		threshold := math.Max(float64(len(group))*typeVibeShare, minTypeVibeCount)
		var common []string
		for vb, c := range counts {
			if float64(c) >= threshold {
				common = append(common, vb)
			}
		}
		if len(common) > 0 {
			sort.Strings(common)
			out[t] = common
		}
	}
	return out
}

// learnRelatedTerms relates type words that keep appearing on the same venues.
func learnRelatedTerms(venues []model.Venue) map[string][]string {
	pairs := map[string]map[string]int{}
	for _, v := range venues {
		words := typeWords(v)
		for _, a := range words {
			for _, b := range words {
				if a == b {
					continue
				}
				if pairs[a] == nil {
					pairs[a] = map[string]int{}
				}
				pairs[a][b]++
			}
		}
	}

	out := map[string][]string{}
	for word, related := range pairs {
		type scored struct {
			term  string
			count int
		}
		var picks []scored
		for t, c := range related {
			if c >= minCooccurrence {
				picks = append(picks, scored{t, c})
			}
		}
		sort.Slice(picks, func(a, b int) bool {
			if picks[a].count != picks[b].count {
				return picks[a].count > picks[b].count
			}
			return picks[a].term < picks[b].term
		})
		if len(picks) > maxRelatedTermsPerWord {
			picks = picks[:maxRelatedTermsPerWord]
		}
		for _, p := range picks {
			out[word] = append(out[word], p.term)
		}
	}
	return out
}

func typeWords(v model.Venue) []string {
	var words []string
	for _, t := range v.AllTypes() {
		for _, w := range strings.FieldsFunc(strings.ToLower(t), func(r rune) bool {
			return r == '_' || r == ' ' || r == '-' || r == '/'
		}) {
			if len(w) >= minWordLen && !funk.ContainsString(typeWordStoplist, w) {
				words = append(words, w)
			}
		}
	}
	return funk.UniqString(words)
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?;:()[]\"'")
		if len(f) >= minWordLen {
			out = append(out, f)
		}
	}
	return out
}

func merge(seed, learned map[string][]string) map[string][]string {
	out := make(map[string][]string, len(seed)+len(learned))
	for k, v := range seed {
		out[k] = cloneStrings(v)
	}
	for k, v := range learned {
		combined := funk.UniqString(append(cloneStrings(out[k]), v...))
		out[k] = combined
	}
	return out
}

// quantile uses linear interpolation between closest ranks. values need not be sorted.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// meanStd returns the mean and sample standard deviation.
func meanStd(values []float64) (float64, float64) {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if len(values) < 2 {
		return mean, 0
	}
	ss := 0.0
	for _, v := range values {
		ss += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(ss / float64(len(values)-1))
}
