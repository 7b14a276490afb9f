package fitness

import (
	"fmt"
	"sort"

	"datenight/internal/planner/model"
	"datenight/internal/planner/scoring"
)

const highlyRated = 4.5

// Breakdown scores each stop of venues, in order.
func (e *Evaluator) Breakdown(venues []model.Venue, obj Objective) []model.ScoreBreakdown {
	out := make([]model.ScoreBreakdown, len(venues))
	seen := map[model.Stage]struct{}{}
	for i := range venues {
		v := &venues[i]
		b := model.ScoreBreakdown{
			BudgetFit: scoring.BudgetFit(v.Cost, obj.Budget),
			Rating:    scoring.BayesianRating(e.kb, v.Rating, v.ReviewCount),
		}
		if len(obj.Vibes) > 0 {
			shared := 0
			for _, vb := range obj.Vibes {
				if v.HasVibe(vb) {
					shared++
				}
			}
			b.VibeMatch = float64(shared) / float64(len(obj.Vibes))
		}
		if i > 0 {
			if km, ok := scoring.DistanceKm(venues[i-1].Location, v.Location); ok {
				b.DistanceKm = km
			}
		}
		stage := scoring.VenueStage(v)
		if _, dup := seen[stage]; !dup {
			b.Diversity = 1
			seen[stage] = struct{}{}
		}
		out[i] = b
	}
	return out
}

// Reasons explains in plain words why a venue was picked.
func (e *Evaluator) Reasons(v *model.Venue, obj Objective) []string {
	var out []string
	if m := scoring.MatchAny(e.kb, obj.Types, v); m.Matched() {
		out = append(out, fmt.Sprintf("matches your request for %s", m.Target))
	}
	for _, vb := range obj.Vibes {
		if v.HasVibe(vb) {
			out = append(out, fmt.Sprintf("has a %s vibe", vb))
			break
		}
	}
	if v.Rating >= highlyRated {
		out = append(out, fmt.Sprintf("highly rated (%.1f stars)", v.Rating))
	}
	if scoring.IsHiddenGem(e.kb, v.Rating, v.ReviewCount) {
		out = append(out, fmt.Sprintf("hidden gem with %d reviews", v.ReviewCount))
	}
	if v.Cost <= obj.Budget {
		out = append(out, "fits your budget")
	}
	return out
}

// SortByStage orders venues by stage ordinal, keeping input order within a stage.
func SortByStage(venues []model.Venue) []model.Venue {
	out := append([]model.Venue(nil), venues...)
	sort.SliceStable(out, func(i, j int) bool {
		return scoring.VenueStage(&out[i]).Ordinal() < scoring.VenueStage(&out[j]).Ordinal()
	})
	return out
}

// BuildPlan materialises venues into a Plan with stages, tiers, breakdowns, reasons,
// total cost and fitness.
func (e *Evaluator) BuildPlan(venues []model.Venue, obj Objective, algorithm string) model.Plan {
	plan := model.Plan{Algorithm: algorithm, Stops: make([]model.Stop, 0, len(venues))}
	if len(venues) == 0 {
		plan.BudgetFit = scoring.BudgetFit(0, obj.Budget)
		return plan
	}

	breakdown := e.Breakdown(venues, obj)
	for i := range venues {
		v := venues[i]
		plan.Stops = append(plan.Stops, model.Stop{
			Venue:      v,
			Stage:      scoring.VenueStage(&v),
			BudgetTier: scoring.BudgetTier(e.kb, v.Cost),
			Scores:     breakdown[i],
			Reasons:    e.Reasons(&v, obj),
		})
	}
	plan.TotalCost = model.TotalCost(venues)
	plan.BudgetFit = scoring.BudgetFit(plan.TotalCost, obj.Budget)
	plan.Fitness = e.Evaluate(venues, obj)
	return plan
}
