package genetic

import (
	"slices"
	"sort"
)

const (
	biasShare       = 0.7
	biasPoolCap     = 30
	stagePickSpan   = 10
	lowDiversity    = 0.3
	guidedPoolMin   = 5
	maxStageOrdinal = 5
)

// Individual is a candidate plan: distinct positions into the eligible venue slice, in
// visiting order.
type Individual struct {
	Genes   []int
	Fitness float64
	scored  bool
}

func (ind Individual) clone() Individual {
	return Individual{Genes: slices.Clone(ind.Genes), Fitness: ind.Fitness, scored: ind.scored}
}

type Population []Individual

// diversity is the share of distinct genes across the population.
func (pop Population) diversity() float64 {
	seen := map[int]struct{}{}
	total := 0
	for _, ind := range pop {
		for _, g := range ind.Genes {
			seen[g] = struct{}{}
		}
		total += len(ind.Genes)
	}
	if total == 0 {
		return 0
	}
	return float64(len(seen)) / float64(total)
}

func (r *run) initialPopulation() Population {
	size := r.cfg.PopulationSize
	pop := make(Population, 0, size)
	for i := 0; i < size; i++ {
		var genes []int
		switch {
		case i < size/2:
			genes = r.stageDiverse()
		case i < size*8/10:
			genes = r.relevanceBiased()
		default:
			genes = r.random()
		}
		pop = append(pop, Individual{Genes: genes})
	}
	return pop
}

// stageDiverse seeds one venue matching a requested type, then fills the remaining stops
// from stages around it, preferring relevant venues.
func (r *run) stageDiverse() []int {
	used := map[int]struct{}{}
	genes := make([]int, 0, r.length)
	add := func(pos int) {
		genes = append(genes, pos)
		used[pos] = struct{}{}
	}

	mainStage := 3
	if len(r.matching) > 0 {
		main := r.matching[r.rng.IntN(len(r.matching))]
		add(main)
		mainStage = r.ordinals[main]
	}

	var desired []int
	if r.length >= 2 {
		if mainStage > 1 {
			desired = append(desired, 1)
		}
		if mainStage < maxStageOrdinal {
			desired = append(desired, min(mainStage+1, maxStageOrdinal))
		}
	}
	for s := 1; s <= maxStageOrdinal; s++ {
		if s != mainStage && !slices.Contains(desired, s) {
			desired = append(desired, s)
		}
	}

	for _, stage := range desired {
		if len(genes) >= r.length {
			break
		}
		var options []int
		for _, pos := range r.byOrdinal[stage] {
			if _, taken := used[pos]; !taken {
				options = append(options, pos)
				if len(options) == stagePickSpan {
					break
				}
			}
		}
		if len(options) > 0 {
			add(options[r.rng.IntN(len(options))])
		}
	}

	for len(genes) < r.length {
		add(r.unused(used))
	}

	sort.SliceStable(genes, func(a, b int) bool { return r.ordinals[genes[a]] < r.ordinals[genes[b]] })
	return genes
}

// relevanceBiased draws most genes from the top of the relevance ranking.
func (r *run) relevanceBiased() []int {
	n := len(r.pool)
	topN := max(1, min(biasPoolCap, n/3))
	top, rest := r.ranked[:topN], r.ranked[topN:]

	used := map[int]struct{}{}
	genes := make([]int, 0, r.length)
	for len(genes) < r.length {
		from := rest
		if r.rng.Float64() < biasShare {
			from = top
		}
		pos, ok := r.pickFrom(from, used)
		if !ok {
			pos = r.unused(used)
		}
		genes = append(genes, pos)
		used[pos] = struct{}{}
	}
	return genes
}

func (r *run) random() []int {
	return r.rng.Perm(len(r.pool))[:r.length]
}

// pickFrom returns a random member of from that is not in used.
func (r *run) pickFrom(from []int, used map[int]struct{}) (int, bool) {
	var options []int
	for _, pos := range from {
		if _, taken := used[pos]; !taken {
			options = append(options, pos)
		}
	}
	if len(options) == 0 {
		return 0, false
	}
	return options[r.rng.IntN(len(options))], true
}

// unused returns a random eligible position not in used. Callers guarantee one exists.
func (r *run) unused(used map[int]struct{}) int {
	n := len(r.pool)
	start := r.rng.IntN(n)
	for k := 0; k < n; k++ {
		pos := (start + k) % n
		if _, taken := used[pos]; !taken {
			return pos
		}
	}
	return start
}

func (r *run) tournament(pop Population) Individual {
	k := min(r.cfg.TournamentSize, len(pop))
	best := -1
	for _, i := range r.rng.Perm(len(pop))[:k] {
		if best < 0 || pop[i].Fitness > pop[best].Fitness {
			best = i
		}
	}
	return pop[best]
}

// crossover recombines two parents, picking the stage-aware union or a position-uniform
// mix with equal odds. The child may carry duplicates until repaired.
func (r *run) crossover(a, b Individual) []int {
	if len(a.Genes) < 2 {
		return slices.Clone(a.Genes)
	}
	if r.rng.Float64() < 0.5 {
		return r.stageUnion(a.Genes, b.Genes)
	}
	child := make([]int, len(a.Genes))
	for i := range child {
		if i < len(b.Genes) && r.rng.Float64() < 0.5 {
			child[i] = b.Genes[i]
		} else {
			child[i] = a.Genes[i]
		}
	}
	return child
}

func (r *run) stageUnion(a, b []int) []int {
	seen := map[int]struct{}{}
	union := make([]int, 0, len(a)+len(b))
	for _, g := range slices.Concat(a, b) {
		if _, dup := seen[g]; !dup {
			seen[g] = struct{}{}
			union = append(union, g)
		}
	}
	sort.SliceStable(union, func(i, j int) bool { return r.ordinals[union[i]] < r.ordinals[union[j]] })
	return union[:len(a)]
}

// repair replaces repeated genes with random unused eligible positions, keeping the
// length fixed.
func (r *run) repair(genes []int) {
	used := make(map[int]struct{}, len(genes))
	var dups []int
	for i, g := range genes {
		if _, dup := used[g]; dup {
			dups = append(dups, i)
			continue
		}
		used[g] = struct{}{}
	}
	for _, i := range dups {
		pos := r.unused(used)
		genes[i] = pos
		used[pos] = struct{}{}
	}
}

type mutation int

const (
	mutateReplace mutation = iota
	mutateSwap
	mutateGuided
	mutateSortStages
	mutateFixPair
	mutationKinds
)

// mutate applies one random operator with probability rate. guided enables the relevance
// guided replacement, used when the population has converged.
func (r *run) mutate(genes []int, rate float64, guided bool) {
	if len(genes) == 0 || r.rng.Float64() >= rate {
		return
	}
	switch kind := mutation(r.rng.IntN(int(mutationKinds))); {
	case kind == mutateSwap && len(genes) >= 2:
		i, j := r.twoPositions(len(genes))
		genes[i], genes[j] = genes[j], genes[i]
	case kind == mutateSortStages:
		sort.SliceStable(genes, func(a, b int) bool { return r.ordinals[genes[a]] < r.ordinals[genes[b]] })
	case kind == mutateFixPair && len(genes) >= 2:
		for i := 0; i+1 < len(genes); i++ {
			if r.ordinals[genes[i]] > r.ordinals[genes[i+1]] {
				genes[i], genes[i+1] = genes[i+1], genes[i]
				break
			}
		}
	case kind == mutateGuided && guided:
		used := toSet(genes)
		top := r.ranked[:min(len(r.ranked), max(guidedPoolMin, len(r.pool)/5))]
		if pos, ok := r.pickFrom(top, used); ok {
			genes[r.rng.IntN(len(genes))] = pos
		}
	default:
		used := toSet(genes)
		if len(used) < len(r.pool) {
			genes[r.rng.IntN(len(genes))] = r.unused(used)
		}
	}
}

func (r *run) twoPositions(n int) (int, int) {
	i := r.rng.IntN(n)
	j := r.rng.IntN(n - 1)
	if j >= i {
		j++
	}
	return i, j
}

func toSet(genes []int) map[int]struct{} {
	set := make(map[int]struct{}, len(genes))
	for _, g := range genes {
		set[g] = struct{}{}
	}
	return set
}
