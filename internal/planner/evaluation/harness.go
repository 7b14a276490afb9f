// Package evaluation benchmarks the planners against a random baseline over a battery of
// scenarios and renders the comparison as text or a spreadsheet.
package evaluation

import (
	"context"
	"fmt"
	"math"
	"time"

	"datenight/internal/planner/fitness"
	"datenight/internal/planner/genetic"
	"datenight/internal/planner/heuristic"
	"datenight/internal/planner/model"
)

const (
	MethodRandom    = "Random"
	MethodHeuristic = "Heuristic"
	MethodGA        = "GA"
)

// Methods lists the compared methods in report order.
var Methods = []string{MethodRandom, MethodHeuristic, MethodGA}

// RatingScale labels a 1-5 satisfaction score.
var RatingScale = map[int]string{
	1: "Very Bad",
	2: "Bad",
	3: "Okay",
	4: "Happy",
	5: "Very Happy",
}

// RatingLabel labels a mean satisfaction score.
func RatingLabel(mean float64) string {
	if label, ok := RatingScale[int(math.Round(mean))]; ok {
		return label
	}
	return RatingScale[3]
}

// Rater collects a 1-5 satisfaction score for a plan. Zero means not rated.
type Rater interface {
	Rate(ctx context.Context, s Scenario, method string, plan model.Plan) (int, error)
}

type Options struct {
	// Seed makes a run reproducible. Zero draws fresh randomness.
	Seed       uint64
	Randomness float64
	Heuristic  heuristic.Config
	Genetic    genetic.Config
	// Rater is optional.
	Rater Rater
}

func DefaultOptions() Options {
	return Options{
		Randomness: 0.2,
		Heuristic:  heuristic.DefaultConfig(),
		Genetic:    genetic.DefaultConfig(),
	}
}

type MethodResult struct {
	Method      string        `json:"method"`
	Plan        model.Plan    `json:"plan"`
	Metrics     Metrics       `json:"metrics"`
	Rating      int           `json:"rating,omitempty"`
	Elapsed     time.Duration `json:"elapsed"`
	Generations int           `json:"generations,omitempty"`
}

type ScenarioResult struct {
	Scenario Scenario       `json:"scenario"`
	Results  []MethodResult `json:"results"`
}

type MethodSummary struct {
	Method            string  `json:"method"`
	Satisfaction      Stats   `json:"satisfaction"`
	SatisfactionLabel string  `json:"satisfaction_label,omitempty"`
	BudgetPassRate    float64 `json:"budget_pass_rate"`
	Diversity         Stats   `json:"diversity"`
	VibeMatch         Stats   `json:"vibe_match"`
	AvgRating         Stats   `json:"avg_rating"`
	Fitness           Stats   `json:"fitness"`
}

type Report struct {
	GeneratedAt  time.Time        `json:"generated_at"`
	VenueCount   int              `json:"venue_count"`
	Scenarios    []ScenarioResult `json:"scenarios"`
	Summary      []MethodSummary  `json:"summary"`
	GATime       Stats            `json:"ga_time_seconds"`
	VibeAccuracy *VibeAccuracy    `json:"vibe_accuracy,omitempty"`
}

type Harness struct {
	eval *fitness.Evaluator
	opts Options
}

func NewHarness(eval *fitness.Evaluator, opts Options) *Harness {
	return &Harness{eval: eval, opts: opts}
}

// Run plans every scenario with each method. It stops early only when ctx is done or
// the rater fails.
func (h *Harness) Run(ctx context.Context, venues []model.Venue, scenarios []Scenario) (*Report, error) {
	report := &Report{GeneratedAt: time.Now(), VenueCount: len(venues)}
	baselineRNG := model.NewRand(h.opts.Seed)

	for i, s := range scenarios {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		c := s.Constraints(h.opts.Randomness)
		seed := h.seedFor(i)

		start := time.Now()
		picked := RandomBaseline(baselineRNG, venues, s)
		random := h.eval.BuildPlan(picked, fitness.ObjectiveFor(c), "random")
		randomElapsed := time.Since(start)

		start = time.Now()
		greedy := heuristic.New(h.eval, h.opts.Heuristic, model.NewRand(seed)).Plan(venues, c)
		greedyElapsed := time.Since(start)

		evolved, stats := genetic.New(h.eval, h.opts.Genetic, model.NewRand(seed)).Plan(ctx, venues, c)

		sr := ScenarioResult{Scenario: s, Results: []MethodResult{
			{Method: MethodRandom, Plan: random, Elapsed: randomElapsed},
			{Method: MethodHeuristic, Plan: greedy, Elapsed: greedyElapsed},
			{Method: MethodGA, Plan: evolved, Elapsed: stats.Elapsed, Generations: stats.Generations},
		}}
		for j := range sr.Results {
			res := &sr.Results[j]
			res.Metrics = ComputeMetrics(h.eval, res.Plan.Venues(), s)
			if h.opts.Rater == nil {
				continue
			}
			rating, err := h.opts.Rater.Rate(ctx, s, res.Method, res.Plan)
			if err != nil {
				return report, fmt.Errorf("rate %s for %q: %w", res.Method, s.Name, err)
			}
			if rating < 0 || rating > 5 {
				return report, fmt.Errorf("rate %s for %q: rating %d outside 1-5", res.Method, s.Name, rating)
			}
			res.Rating = rating
		}
		report.Scenarios = append(report.Scenarios, sr)
	}

	report.Summary = summarize(report.Scenarios)
	var gaTimes []float64
	for _, sr := range report.Scenarios {
		for _, res := range sr.Results {
			if res.Method == MethodGA {
				gaTimes = append(gaTimes, res.Elapsed.Seconds())
			}
		}
	}
	report.GATime = Describe(gaTimes)
	return report, nil
}

func (h *Harness) seedFor(i int) uint64 {
	if h.opts.Seed == 0 {
		return 0
	}
	return h.opts.Seed + uint64(i)
}

func summarize(results []ScenarioResult) []MethodSummary {
	out := make([]MethodSummary, 0, len(Methods))
	for _, method := range Methods {
		var ratings, diversity, vibe, rating, fit []float64
		passed := 0
		for _, sr := range results {
			for _, res := range sr.Results {
				if res.Method != method {
					continue
				}
				if res.Rating > 0 {
					ratings = append(ratings, float64(res.Rating))
				}
				if res.Metrics.BudgetOK {
					passed++
				}
				diversity = append(diversity, res.Metrics.Diversity)
				vibe = append(vibe, res.Metrics.VibeMatch)
				rating = append(rating, res.Metrics.AvgRating)
				fit = append(fit, res.Metrics.Fitness)
			}
		}
		ms := MethodSummary{
			Method:       method,
			Satisfaction: Describe(ratings),
			Diversity:    Describe(diversity),
			VibeMatch:    Describe(vibe),
			AvgRating:    Describe(rating),
			Fitness:      Describe(fit),
		}
		if len(ratings) > 0 {
			ms.SatisfactionLabel = RatingLabel(ms.Satisfaction.Mean)
		}
		if len(fit) > 0 {
			ms.BudgetPassRate = float64(passed) / float64(len(fit)) * 100
		}
		out = append(out, ms)
	}
	return out
}
