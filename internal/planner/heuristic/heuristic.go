// Package heuristic builds a plan one stop at a time. Every remaining candidate is
// scored against the constraints and the stops picked so far; the best is taken, or with
// probability Randomness a uniform pick among the top few.
package heuristic

import (
	"math/rand/v2"
	"sort"
	"strings"

	"datenight/internal/planner/fitness"
	"datenight/internal/planner/knowledge"
	"datenight/internal/planner/model"
	"datenight/internal/planner/scoring"
)

const Algorithm = "heuristic"

type Config struct {
	Weights Weights `koanf:"weights"`
	// StartHour is used when the constraints carry no clock. Negative disables
	// time-of-day scoring.
	StartHour     int  `koanf:"start_hour"`
	ReorderByTime bool `koanf:"reorder_by_time"`
}

func DefaultConfig() Config {
	return Config{Weights: DefaultWeights(), StartHour: 18}
}

// Planner is not safe for concurrent use; it owns its random source.
type Planner struct {
	eval *fitness.Evaluator
	kb   *knowledge.KnowledgeBase
	cfg  Config
	rng  *rand.Rand
}

// New returns a planner drawing from rng. A nil rng is randomly seeded.
func New(eval *fitness.Evaluator, cfg Config, rng *rand.Rand) *Planner {
	if rng == nil {
		rng = model.NewRand(0)
	}
	return &Planner{eval: eval, kb: eval.Knowledge(), cfg: cfg, rng: rng}
}

type candidate struct {
	pos   int
	score float64
}

// progress is what earlier picks leave behind for scoring the next stop.
type progress struct {
	prev    *model.LatLng
	visited map[string]struct{}
	needed  []string
}

func (st *progress) visit(kb *knowledge.KnowledgeBase, v *model.Venue) {
	st.prev = v.Location
	if t := strings.ToLower(v.PrimaryType); t != "" {
		st.visited[t] = struct{}{}
	}
	if m := scoring.MatchAny(kb, st.needed, v); m.Matched() {
		for i, t := range st.needed {
			if t == m.Target {
				st.needed = append(st.needed[:i:i], st.needed[i+1:]...)
				break
			}
		}
	}
}

// Plan never fails: an exhausted pool yields a shorter or empty plan.
func (p *Planner) Plan(venues []model.Venue, c model.Constraints) model.Plan {
	obj := fitness.ObjectiveFor(c)
	pool := scoring.Eligible(venues, c)
	if len(pool) == 0 || c.Stops <= 0 {
		return p.eval.BuildPlan(nil, obj, Algorithm)
	}

	idx := scoring.NewIndex(pool)
	relevance := idx.RelevanceAll(p.kb, c.Vibes, c.Types, c.Query)
	hour := p.startHour(c)

	st := &progress{visited: map[string]struct{}{}, needed: append([]string(nil), c.Types...)}
	used := make([]bool, len(pool))
	picked := make([]model.Venue, 0, c.Stops)

	for step := 0; step < c.Stops; step++ {
		cands := make([]candidate, 0, len(pool))
		for i := range pool {
			if used[i] {
				continue
			}
			cands = append(cands, candidate{pos: i, score: p.score(idx, i, relevance[i], c, st, hour, step)})
		}
		if len(cands) == 0 {
			break
		}
		sort.SliceStable(cands, func(a, b int) bool { return cands[a].score > cands[b].score })

		pick := p.choose(cands, c.Randomness)
		used[pick.pos] = true
		picked = append(picked, pool[pick.pos])
		st.visit(p.kb, &pool[pick.pos])
	}

	ordered := fitness.SortByStage(picked)
	if p.cfg.ReorderByTime && hour >= 0 {
		ordered = scoring.SuggestOrder(ordered, hour)
	}
	return p.eval.BuildPlan(ordered, obj, Algorithm)
}

// choose takes the best candidate, or with probability r a uniform pick among the top
// max(2, n*r*spread).
func (p *Planner) choose(cands []candidate, r float64) candidate {
	if r <= 0 || len(cands) < 2 || p.rng.Float64() >= r {
		return cands[0]
	}
	w := p.cfg.Weights
	top := max(w.MinSelectionCands, int(float64(len(cands))*r*w.SelectionSpread))
	top = min(max(top, 1), len(cands))
	return cands[p.rng.IntN(top)]
}

func (p *Planner) startHour(c model.Constraints) int {
	if !c.Now.IsZero() {
		return c.Now.Hour()
	}
	return p.cfg.StartHour
}
