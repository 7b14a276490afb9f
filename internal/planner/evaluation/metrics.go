package evaluation

import (
	"math"
	"math/rand/v2"
	"strings"

	"datenight/internal/planner/fitness"
	"datenight/internal/planner/model"
)

// Metrics are the automated measurements taken on every plan.
type Metrics struct {
	BudgetOK  bool    `json:"budget_ok"`
	Cost      float64 `json:"cost"`
	Diversity float64 `json:"diversity"`  // percent of distinct primary types
	VibeMatch float64 `json:"vibe_match"` // percent of stops sharing a target vibe
	AvgRating float64 `json:"avg_rating"` // raw, not shrunk
	Fitness   float64 `json:"fitness"`
	Stops     int     `json:"stops"`
}

// ComputeMetrics measures venues against s. Fitness uses the planners' objective for
// every method, the random baseline included, purely as a comparison.
func ComputeMetrics(eval *fitness.Evaluator, venues []model.Venue, s Scenario) Metrics {
	if len(venues) == 0 {
		return Metrics{}
	}
	m := Metrics{
		Cost:    model.TotalCost(venues),
		Fitness: eval.Evaluate(venues, fitness.Objective{Budget: s.Budget, Types: s.Types, Vibes: s.Vibes, Stops: s.Stops}),
		Stops:   len(venues),
	}
	m.BudgetOK = m.Cost <= s.Budget

	types := map[string]struct{}{}
	matches, rating := 0, 0.0
	for i := range venues {
		types[strings.ToLower(venues[i].PrimaryType)] = struct{}{}
		if venues[i].SharesVibe(s.Vibes) {
			matches++
		}
		rating += venues[i].Rating
	}
	n := float64(len(venues))
	m.Diversity = float64(len(types)) / n * 100
	m.VibeMatch = float64(matches) / n * 100
	m.AvgRating = rating / n
	return m
}

// RandomBaseline samples stops venues uniformly from those costing no more than the
// budget. A smaller pool is returned whole.
func RandomBaseline(rng *rand.Rand, venues []model.Venue, s Scenario) []model.Venue {
	var affordable []model.Venue
	for _, v := range venues {
		if v.Cost <= s.Budget {
			affordable = append(affordable, v)
		}
	}
	if len(affordable) <= s.Stops {
		return affordable
	}
	out := make([]model.Venue, 0, s.Stops)
	for _, i := range rng.Perm(len(affordable))[:s.Stops] {
		out = append(out, affordable[i])
	}
	return out
}

// Stats summarises a sample.
type Stats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	N    int     `json:"n"`
}

// Describe computes population statistics of values.
func Describe(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	s := Stats{Min: values[0], Max: values[0], N: len(values)}
	sum := 0.0
	for _, v := range values {
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = sum / float64(len(values))
	sq := 0.0
	for _, v := range values {
		sq += (v - s.Mean) * (v - s.Mean)
	}
	s.Std = math.Sqrt(sq / float64(len(values)))
	return s
}
