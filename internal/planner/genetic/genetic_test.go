package genetic

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datenight/internal/planner/fitness"
	"datenight/internal/planner/knowledge"
	"datenight/internal/planner/model"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PopulationSize = 30
	cfg.Generations = 15
	cfg.ElitismCount = 3
	cfg.Workers = 2
	return cfg
}

func newPlanner(seed uint64) *Planner {
	return New(fitness.NewEvaluator(knowledge.Default()), testConfig(), model.NewRand(seed))
}

func catalog(n int) []model.Venue {
	types := []string{"cafe", "italian_restaurant", "bar", "museum", "bakery", "park", "thai_restaurant", "pub", "cocktail_bar"}
	out := make([]model.Venue, n)
	for i := range out {
		out[i] = model.Venue{
			ID:          fmt.Sprintf("v%02d", i),
			Name:        fmt.Sprintf("Venue %d", i),
			PrimaryType: types[i%len(types)],
			Cost:        float64(5 + (i*11)%40),
			Rating:      3.4 + float64(i%5)*0.35,
			ReviewCount: 5 + i*17,
			Location:    &model.LatLng{Lat: 45.40 + float64(i%7)*0.004, Lng: -75.70 + float64(i%4)*0.006},
			Vibes:       []string{[]string{"cozy", "romantic", "energetic", "casual"}[i%4]},
		}
	}
	return out
}

func TestPlanKeepsAllVenuesAndOrdersByStage(t *testing.T) {
	venues := []model.Venue{
		{ID: "bar", PrimaryType: "bar", Cost: 25, Rating: 4.0, ReviewCount: 90},
		{ID: "restaurant", PrimaryType: "restaurant", Cost: 40, Rating: 4.2, ReviewCount: 200},
		{ID: "coffee", PrimaryType: "cafe", Cost: 5, Rating: 4.5, ReviewCount: 60},
	}

	plan, stats := newPlanner(1).Plan(context.Background(), venues, model.Constraints{Vibes: []string{"cozy"}, Budget: 60, Stops: 3})

	require.Equal(t, 3, plan.Len())
	assert.Equal(t, []string{"coffee", "restaurant", "bar"}, plan.IDs())
	assert.Equal(t, 70.0, plan.TotalCost)
	assert.Less(t, plan.BudgetFit, 1.0)
	assert.Greater(t, plan.Fitness, 0.0)
	assert.Equal(t, Algorithm, plan.Algorithm)
	assert.NotEmpty(t, stats.History)
}

func TestPlanEmptyCatalog(t *testing.T) {
	plan, stats := newPlanner(1).Plan(context.Background(), nil, model.Constraints{Budget: 60, Stops: 3})

	assert.Equal(t, 0, plan.Len())
	assert.Equal(t, 0.0, plan.Fitness)
	assert.Equal(t, 0, stats.Generations)
}

func TestPlanZeroBudget(t *testing.T) {
	venues := []model.Venue{{ID: "park", PrimaryType: "park", Cost: 0, Rating: 4.0}}

	plan, _ := newPlanner(1).Plan(context.Background(), venues, model.Constraints{Budget: 0, Stops: 3})

	require.Equal(t, 1, plan.Len())
	assert.Equal(t, 1.0, plan.BudgetFit)
}

func TestBestFitnessNeverRegresses(t *testing.T) {
	venues := catalog(60)
	c := model.Constraints{Vibes: []string{"romantic"}, Types: []string{"italian"}, Budget: 90, Stops: 3, Randomness: 0.8}

	for seed := uint64(1); seed <= 5; seed++ {
		_, stats := newPlanner(seed).Plan(context.Background(), venues, c)
		require.NotEmpty(t, stats.History)
		for i := 1; i < len(stats.History); i++ {
			assert.GreaterOrEqual(t, stats.History[i].Best, stats.History[i-1].Best, "seed %d generation %d", seed, i)
		}
		assert.Equal(t, len(stats.History), stats.Generations)
		assert.GreaterOrEqual(t, stats.LocalGain, 0.0)
	}
}

func TestPlanNeverRepeatsVenues(t *testing.T) {
	venues := catalog(25)
	for seed := uint64(1); seed <= 10; seed++ {
		plan, _ := newPlanner(seed).Plan(context.Background(), venues, model.Constraints{
			Types: []string{"bar"}, Budget: 100, Stops: 6, Randomness: 1,
		})
		require.Equal(t, 6, plan.Len())
		assert.False(t, model.HasDuplicates(plan.Venues()), "seed %d", seed)
	}
}

func TestPlanIsDeterministicForSeed(t *testing.T) {
	venues := catalog(40)
	c := model.Constraints{Vibes: []string{"cozy"}, Types: []string{"coffee"}, Budget: 80, Stops: 3, Randomness: 0.4}

	first, _ := newPlanner(99).Plan(context.Background(), venues, c)
	second, _ := newPlanner(99).Plan(context.Background(), venues, c)

	assert.Equal(t, first.IDs(), second.IDs())
	assert.Equal(t, first.Fitness, second.Fitness)
}

func TestPlanStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan, stats := newPlanner(1).Plan(ctx, catalog(30), model.Constraints{Budget: 100, Stops: 3})

	assert.True(t, stats.Cancelled)
	assert.Equal(t, 0, stats.Generations)
	assert.Equal(t, 3, plan.Len(), "the initial population still yields a plan")
}

func TestStagnationStopsEarly(t *testing.T) {
	cfg := testConfig()
	cfg.Generations = 50
	cfg.MaxStagnation = 3
	p := New(fitness.NewEvaluator(knowledge.Default()), cfg, model.NewRand(4))

	venues := catalog(3)
	_, stats := p.Plan(context.Background(), venues, model.Constraints{Budget: 100, Stops: 3})

	assert.True(t, stats.Stagnated)
	assert.Less(t, stats.Generations, cfg.Generations)
}

func TestRepairRemovesDuplicates(t *testing.T) {
	p := newPlanner(1)
	venues := catalog(10)
	r := p.newRun(venues, fitness.Objective{Budget: 100, Stops: 4}, model.Constraints{Budget: 100, Stops: 4}, 4)

	genes := []int{1, 1, 2, 2}
	r.repair(genes)

	assert.Len(t, genes, 4)
	assert.Equal(t, 1, genes[0])
	assert.Equal(t, 2, genes[2])
	assert.Len(t, toSet(genes), 4)
	for _, g := range genes {
		assert.True(t, g >= 0 && g < len(venues))
	}
}

func TestOperatorsKeepGenesDistinct(t *testing.T) {
	p := newPlanner(8)
	venues := catalog(12)
	c := model.Constraints{Types: []string{"italian"}, Budget: 100, Stops: 4}
	r := p.newRun(venues, fitness.ObjectiveFor(c), c, 4)

	pop := r.initialPopulation()
	require.Len(t, pop, testConfig().PopulationSize)
	for _, ind := range pop {
		require.Len(t, ind.Genes, 4)
		require.Len(t, toSet(ind.Genes), 4)
	}

	for i := 0; i < 200; i++ {
		a, b := pop[r.rng.IntN(len(pop))], pop[r.rng.IntN(len(pop))]
		child := r.crossover(a, b)
		r.repair(child)
		r.mutate(child, 1, i%2 == 0)
		require.Len(t, child, 4)
		require.Len(t, toSet(child), 4, "child %v", child)
	}
}

func TestAdaptiveRate(t *testing.T) {
	r := &run{Planner: newPlanner(1)}
	flat := []PoolStats{{Best: 10}, {Best: 10}, {Best: 10}, {Best: 10}, {Best: 10.5}, {Best: 10.5}}
	rising := []PoolStats{{Best: 10}, {Best: 20}, {Best: 30}, {Best: 40}, {Best: 50}, {Best: 60}}

	assert.Equal(t, 0.2, r.adaptiveRate(0.2, flat[:3]))
	assert.Equal(t, 0.4, r.adaptiveRate(0.2, flat))
	assert.Equal(t, 0.5, r.adaptiveRate(0.3, flat))
	assert.Equal(t, 0.2, r.adaptiveRate(0.2, rising))
}

func TestRates(t *testing.T) {
	cfg := DefaultConfig()

	m, x := cfg.rates(0)
	assert.InDelta(t, 0.1, m, 1e-9)
	assert.InDelta(t, 0.8, x, 1e-9)

	m, x = cfg.rates(1)
	assert.InDelta(t, 0.3, m, 1e-9)
	assert.InDelta(t, 0.6, x, 1e-9)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"tiny population", func(c *Config) { c.PopulationSize = 1 }, false},
		{"no generations", func(c *Config) { c.Generations = 0 }, false},
		{"mutation above one", func(c *Config) { c.MutationRate = 1.5 }, false},
		{"no elites", func(c *Config) { c.ElitismCount = 0 }, false},
		{"elites fill population", func(c *Config) { c.ElitismCount = c.PopulationSize }, false},
		{"negative workers", func(c *Config) { c.Workers = -1 }, false},
		{"short adaptive window", func(c *Config) { c.AdaptiveWindow = 1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPlanIgnoresRepeatedVenueIDs(t *testing.T) {
	venues := []model.Venue{
		{ID: "a", PrimaryType: "cafe", Cost: 5, Rating: 4.5, ReviewCount: 60},
		{ID: "a", PrimaryType: "restaurant", Cost: 40, Rating: 4.2, ReviewCount: 200},
		{ID: "b", PrimaryType: "bar", Cost: 25, Rating: 4.0, ReviewCount: 90},
	}

	for seed := uint64(1); seed <= 5; seed++ {
		plan, _ := newPlanner(seed).Plan(context.Background(), venues, model.Constraints{Budget: 100, Stops: 2})
		require.Equal(t, 2, plan.Len())
		assert.ElementsMatch(t, []string{"a", "b"}, plan.IDs())
		assert.Greater(t, plan.Fitness, 0.0)
	}

	short, _ := newPlanner(1).Plan(context.Background(), venues[:2], model.Constraints{Budget: 100, Stops: 2})
	assert.Equal(t, []string{"a"}, short.IDs())
}
