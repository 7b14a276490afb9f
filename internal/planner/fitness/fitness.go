// Package fitness scores a candidate itinerary on a 0..1000 scale. It is the single
// objective both planners optimise and the metric the evaluation harness compares.
//
// Evaluate is pure: the same venues, objective and knowledge base always give the same
// value, so it is safe to call from many goroutines at once.
package fitness

import (
	"math"

	"datenight/internal/planner/knowledge"
	"datenight/internal/planner/model"
	"datenight/internal/planner/scoring"
)

// MaxFitness is the upper bound of Evaluate.
const MaxFitness = 1000.0

// Objective is what a plan is judged against.
type Objective struct {
	Budget float64
	Types  []string
	Vibes  []string
	Stops  int
}

// ObjectiveFor derives the objective from request constraints.
func ObjectiveFor(c model.Constraints) Objective {
	return Objective{Budget: c.Budget, Types: c.Types, Vibes: c.Vibes, Stops: c.Stops}
}

// Weights are the points each component contributes at its best. The positive weights
// sum to MaxFitness.
type Weights struct {
	Budget       float64 `koanf:"budget"`
	TypeCoverage float64 `koanf:"type_coverage"`
	Vibe         float64 `koanf:"vibe"`
	Rating       float64 `koanf:"rating"`
	Diversity    float64 `koanf:"diversity"`
	Flow         float64 `koanf:"flow"`
	Compactness  float64 `koanf:"compactness"`

	// WrongCuisine is subtracted per meal stop that ignores a requested cuisine.
	WrongCuisine float64 `koanf:"wrong_cuisine"`
	// CompactKm is the mean leg length at which compactness is worth half.
	CompactKm float64 `koanf:"compact_km"`
}

func DefaultWeights() Weights {
	return Weights{
		Budget:       200,
		TypeCoverage: 150,
		Vibe:         100,
		Rating:       200,
		Diversity:    150,
		Flow:         100,
		Compactness:  100,
		WrongCuisine: 100,
		CompactKm:    2.0,
	}
}

// Components are the normalised parts of a fitness value, each in [0,1] except
// BudgetFit which falls below zero when the plan is far over budget.
type Components struct {
	BudgetFit     float64 `json:"budget_fit"`
	TypeCoverage  float64 `json:"type_coverage"`
	VibeRate      float64 `json:"vibe_rate"`
	Rating        float64 `json:"rating"`
	Diversity     float64 `json:"diversity"`
	Flow          float64 `json:"flow"`
	Compactness   float64 `json:"compactness"`
	Completeness  float64 `json:"completeness"`
	WrongCuisines int     `json:"wrong_cuisines"`
	Total         float64 `json:"total"`
}

type Evaluator struct {
	kb *knowledge.KnowledgeBase
	w  Weights
}

func NewEvaluator(kb *knowledge.KnowledgeBase) *Evaluator {
	return NewEvaluatorWithWeights(kb, DefaultWeights())
}

func NewEvaluatorWithWeights(kb *knowledge.KnowledgeBase, w Weights) *Evaluator {
	if kb == nil {
		kb = knowledge.Default()
	}
	if w.CompactKm <= 0 {
		w.CompactKm = DefaultWeights().CompactKm
	}
	return &Evaluator{kb: kb, w: w}
}

func (e *Evaluator) Knowledge() *knowledge.KnowledgeBase { return e.kb }

// Evaluate returns the fitness of venues visited in order.
func (e *Evaluator) Evaluate(venues []model.Venue, obj Objective) float64 {
	return e.Score(venues, obj).Total
}

// Score returns the fitness with its components. Empty plans and plans that repeat a
// venue score zero.
func (e *Evaluator) Score(venues []model.Venue, obj Objective) Components {
	n := len(venues)
	if n == 0 || model.HasDuplicates(venues) {
		return Components{}
	}

	c := Components{
		BudgetFit:    scoring.BudgetFit(model.TotalCost(venues), obj.Budget),
		TypeCoverage: e.typeCoverage(venues, obj.Types),
		VibeRate:     vibeRate(venues, obj.Vibes),
		Rating:       e.meanRating(venues) / 5.0,
		Diversity:    diversity(venues),
		Flow:         flow(venues),
		Compactness:  e.compactness(venues),
		Completeness: 1.0,
	}
	if obj.Stops > n {
		c.Completeness = float64(n) / float64(obj.Stops)
	}
	for i := range venues {
		if scoring.IsWrongCuisine(e.kb, obj.Types, &venues[i]) {
			c.WrongCuisines++
		}
	}

	total := e.w.Budget*c.BudgetFit +
		e.w.TypeCoverage*c.TypeCoverage +
		e.w.Vibe*c.VibeRate +
		e.w.Rating*c.Rating +
		e.w.Diversity*c.Diversity +
		e.w.Flow*c.Flow +
		e.w.Compactness*c.Compactness
	total -= e.w.WrongCuisine * float64(c.WrongCuisines)
	total *= c.Completeness

	c.Total = math.Max(0, math.Min(MaxFitness, total))
	return c
}

// typeCoverage is the share of requested types matched by at least one stop.
func (e *Evaluator) typeCoverage(venues []model.Venue, types []string) float64 {
	if len(types) == 0 {
		return 1.0
	}
	covered := 0
	for _, t := range types {
		for i := range venues {
			if scoring.MatchType(e.kb, t, &venues[i]).Matched() {
				covered++
				break
			}
		}
	}
	return float64(covered) / float64(len(types))
}

func vibeRate(venues []model.Venue, vibes []string) float64 {
	if len(vibes) == 0 {
		return 1.0
	}
	hits := 0
	for i := range venues {
		if venues[i].SharesVibe(vibes) {
			hits++
		}
	}
	return float64(hits) / float64(len(venues))
}

func (e *Evaluator) meanRating(venues []model.Venue) float64 {
	sum := 0.0
	for _, v := range venues {
		sum += scoring.BayesianRating(e.kb, v.Rating, v.ReviewCount)
	}
	return math.Max(0, math.Min(5, sum/float64(len(venues))))
}

func diversity(venues []model.Venue) float64 {
	seen := map[model.Stage]struct{}{}
	for i := range venues {
		seen[scoring.VenueStage(&venues[i])] = struct{}{}
	}
	return float64(len(seen)) / float64(len(venues))
}

// flow is the share of consecutive stops whose stage does not go backwards.
func flow(venues []model.Venue) float64 {
	if len(venues) < 2 {
		return 1.0
	}
	ordered := 0
	prev := scoring.VenueStage(&venues[0]).Ordinal()
	for i := 1; i < len(venues); i++ {
		cur := scoring.VenueStage(&venues[i]).Ordinal()
		if cur >= prev {
			ordered++
		}
		prev = cur
	}
	return float64(ordered) / float64(len(venues)-1)
}

// compactness decays with the mean leg length. Legs without coordinates are skipped;
// a plan with no measurable leg gets full credit.
func (e *Evaluator) compactness(venues []model.Venue) float64 {
	total, legs := 0.0, 0
	for i := 1; i < len(venues); i++ {
		if km, ok := scoring.DistanceKm(venues[i-1].Location, venues[i].Location); ok {
			total += km
			legs++
		}
	}
	if legs == 0 {
		return 1.0
	}
	return 1.0 / (1.0 + (total/float64(legs))/e.w.CompactKm)
}
