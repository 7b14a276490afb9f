// Package genetic evolves a population of candidate plans toward the fitness objective.
//
// Individuals are fixed-length lists of distinct positions into the eligible venues.
// Every generation is evaluated in parallel, the elite are carried over unchanged and the
// rest of the next generation is bred by tournament selection, crossover with explicit
// duplicate repair, and mutation. The best individual is polished by a hill climb before
// being decoded into a plan.
package genetic

import (
	"context"
	"math/rand/v2"
	"slices"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"datenight/internal/planner/fitness"
	"datenight/internal/planner/knowledge"
	"datenight/internal/planner/model"
	"datenight/internal/planner/scoring"
)

const Algorithm = "genetic"

// PoolStats summarises one evaluated generation.
type PoolStats struct {
	Generation int     `json:"generation"`
	Best       float64 `json:"best"`
	Worst      float64 `json:"worst"`
	Average    float64 `json:"average"`
	Diversity  float64 `json:"diversity"`
}

// RunStats describes how a run went.
type RunStats struct {
	History     []PoolStats   `json:"history"`
	Generations int           `json:"generations"`
	Stagnated   bool          `json:"stagnated"`
	Cancelled   bool          `json:"cancelled"`
	LocalGain   float64       `json:"local_gain"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Planner is not safe for concurrent use; it owns its random source.
type Planner struct {
	eval *fitness.Evaluator
	kb   *knowledge.KnowledgeBase
	cfg  Config
	rng  *rand.Rand
}

// New returns a planner drawing from rng. A nil rng is randomly seeded. cfg is expected
// to have passed Validate.
func New(eval *fitness.Evaluator, cfg Config, rng *rand.Rand) *Planner {
	if rng == nil {
		rng = model.NewRand(0)
	}
	return &Planner{eval: eval, kb: eval.Knowledge(), cfg: cfg, rng: rng}
}

// run is the state of a single Plan call.
type run struct {
	*Planner

	pool       []model.Venue
	obj        fitness.Objective
	length     int
	randomness float64

	ranked    []int // positions by relevance, best first
	matching  []int // positions matching a requested type
	ordinals  []int
	byOrdinal map[int][]int
}

// Plan evolves a plan for c. It never fails: an empty pool yields an empty plan. A
// cancelled ctx stops the run before the next generation and the best so far is used.
func (p *Planner) Plan(ctx context.Context, venues []model.Venue, c model.Constraints) (model.Plan, RunStats) {
	start := time.Now()
	obj := fitness.ObjectiveFor(c)
	pool := scoring.Eligible(venues, c)
	length := min(c.Stops, len(pool))
	if length <= 0 {
		return p.eval.BuildPlan(nil, obj, Algorithm), RunStats{Elapsed: time.Since(start)}
	}

	r := p.newRun(pool, obj, c, length)
	best, stats := r.evolve(ctx)

	polished, gain := r.localSearch(best)
	stats.LocalGain = gain
	stats.Elapsed = time.Since(start)

	ordered := fitness.SortByStage(r.decode(polished.Genes))
	return p.eval.BuildPlan(ordered, obj, Algorithm), stats
}

func (p *Planner) newRun(pool []model.Venue, obj fitness.Objective, c model.Constraints, length int) *run {
	idx := scoring.NewIndex(pool)
	relevance := idx.RelevanceAll(p.kb, c.Vibes, c.Types, c.Query)

	r := &run{
		Planner:    p,
		pool:       pool,
		obj:        obj,
		length:     length,
		randomness: c.Randomness,
		ranked:     make([]int, len(pool)),
		ordinals:   make([]int, len(pool)),
		byOrdinal:  map[int][]int{},
	}
	for i := range pool {
		r.ranked[i] = i
		r.ordinals[i] = scoring.VenueStage(&pool[i]).Ordinal()
		if len(c.Types) > 0 && idx.Match(p.kb, c.Types, i).Matched() {
			r.matching = append(r.matching, i)
		}
	}
	sort.SliceStable(r.ranked, func(a, b int) bool { return relevance[r.ranked[a]] > relevance[r.ranked[b]] })
	for _, pos := range r.ranked {
		r.byOrdinal[r.ordinals[pos]] = append(r.byOrdinal[r.ordinals[pos]], pos)
	}
	return r
}

// evolve runs the generational loop and returns the best individual of the last
// population.
func (r *run) evolve(ctx context.Context) (Individual, RunStats) {
	var stats RunStats
	mutationRate, crossoverRate := r.cfg.rates(r.randomness)

	pop := r.initialPopulation()
	bestEver := -1.0
	stagnant := 0

	for gen := 0; gen < r.cfg.Generations; gen++ {
		if ctx.Err() != nil {
			stats.Cancelled = true
			break
		}

		r.evaluate(pop)
		sortByFitness(pop)
		stats.History = append(stats.History, poolStats(gen, pop))

		if pop[0].Fitness > bestEver {
			bestEver = pop[0].Fitness
			stagnant = 0
		} else {
			stagnant++
		}
		if stagnant >= r.cfg.MaxStagnation {
			stats.Stagnated = true
			break
		}

		rate := r.adaptiveRate(mutationRate, stats.History)
		guided := pop.diversity() < lowDiversity

		next := make(Population, 0, len(pop))
		for _, elite := range pop[:min(r.cfg.ElitismCount, len(pop))] {
			next = append(next, elite.clone())
		}
		for len(next) < len(pop) {
			a, b := r.tournament(pop), r.tournament(pop)
			var genes []int
			if r.rng.Float64() < crossoverRate {
				genes = r.crossover(a, b)
			} else {
				genes = slices.Clone(a.Genes)
			}
			r.repair(genes)
			r.mutate(genes, rate, guided)
			next = append(next, Individual{Genes: genes})
		}
		pop = next
	}
	stats.Generations = len(stats.History)

	r.evaluate(pop)
	sortByFitness(pop)
	return pop[0], stats
}

// evaluate scores every unscored individual, fanning out over the worker limit. Each
// goroutine writes only its own slot.
func (r *run) evaluate(pop Population) {
	var g errgroup.Group
	g.SetLimit(r.cfg.workers())
	for i := range pop {
		if pop[i].scored {
			continue
		}
		g.Go(func() error {
			pop[i].Fitness = r.eval.Evaluate(r.decode(pop[i].Genes), r.obj)
			pop[i].scored = true
			return nil
		})
	}
	_ = g.Wait()
}

// adaptiveRate doubles the mutation rate, up to the cap, when the best fitness has
// improved by less than one point over the adaptive window.
func (r *run) adaptiveRate(base float64, history []PoolStats) float64 {
	w := r.cfg.AdaptiveWindow
	if len(history) <= w {
		return base
	}
	if history[len(history)-1].Best-history[len(history)-w].Best < 1 {
		return min(r.cfg.AdaptiveMaxRate, base*2)
	}
	return base
}

// localSearch hill-climbs ind by swapping single stops for top relevance venues,
// accepting only improvements.
func (r *run) localSearch(ind Individual) (Individual, float64) {
	best := ind.clone()
	start := best.Fitness
	if r.cfg.LocalSearchIterations == 0 || r.cfg.LocalSearchCandidates == 0 {
		return best, 0
	}

	for iter := 0; iter < r.cfg.LocalSearchIterations; iter++ {
		improved := false
		for i := range best.Genes {
			used := toSet(best.Genes)
			tried := 0
			for _, pos := range r.ranked {
				if tried == r.cfg.LocalSearchCandidates {
					break
				}
				if _, taken := used[pos]; taken {
					continue
				}
				tried++

				old := best.Genes[i]
				best.Genes[i] = pos
				if f := r.eval.Evaluate(r.decode(best.Genes), r.obj); f > best.Fitness {
					best.Fitness = f
					improved = true
					break
				}
				best.Genes[i] = old
			}
		}
		if !improved {
			break
		}
	}
	return best, best.Fitness - start
}

func (r *run) decode(genes []int) []model.Venue {
	out := make([]model.Venue, len(genes))
	for i, g := range genes {
		out[i] = r.pool[g]
	}
	return out
}

func sortByFitness(pop Population) {
	sort.SliceStable(pop, func(a, b int) bool { return pop[a].Fitness > pop[b].Fitness })
}

func poolStats(gen int, pop Population) PoolStats {
	stats := PoolStats{Generation: gen, Best: pop[0].Fitness, Worst: pop[0].Fitness, Diversity: pop.diversity()}
	total := 0.0
	for _, ind := range pop {
		stats.Best = max(stats.Best, ind.Fitness)
		stats.Worst = min(stats.Worst, ind.Fitness)
		total += ind.Fitness
	}
	stats.Average = total / float64(len(pop))
	return stats
}
