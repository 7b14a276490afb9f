package heuristic

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datenight/internal/planner/fitness"
	"datenight/internal/planner/knowledge"
	"datenight/internal/planner/model"
)

func newPlanner(seed uint64) *Planner {
	return New(fitness.NewEvaluator(knowledge.Default()), DefaultConfig(), model.NewRand(seed))
}

func scenarioA() []model.Venue {
	return []model.Venue{
		{ID: "bar", Name: "The Tap", PrimaryType: "bar", Cost: 25, Rating: 4.0, ReviewCount: 90},
		{ID: "restaurant", Name: "Nonna", PrimaryType: "restaurant", Cost: 40, Rating: 4.2, ReviewCount: 200},
		{ID: "coffee", Name: "Bean Scene", PrimaryType: "cafe", Cost: 5, Rating: 4.5, ReviewCount: 60},
	}
}

func catalog(n int) []model.Venue {
	types := []string{"cafe", "italian_restaurant", "bar", "museum", "bakery", "park", "thai_restaurant", "pub"}
	out := make([]model.Venue, n)
	for i := range out {
		out[i] = model.Venue{
			ID:          fmt.Sprintf("v%02d", i),
			Name:        fmt.Sprintf("Venue %d", i),
			PrimaryType: types[i%len(types)],
			Cost:        float64(5 + (i*7)%45),
			Rating:      3.5 + float64(i%4)*0.4,
			ReviewCount: 10 + i*13,
			Location:    &model.LatLng{Lat: 45.40 + float64(i%5)*0.01, Lng: -75.70 + float64(i%3)*0.01},
			Vibes:       []string{[]string{"cozy", "romantic", "energetic"}[i%3]},
		}
	}
	return out
}

func TestPlanKeepsAllVenuesAndOrdersByStage(t *testing.T) {
	plan := newPlanner(1).Plan(scenarioA(), model.Constraints{Vibes: []string{"cozy"}, Budget: 60, Stops: 3})

	require.Equal(t, 3, plan.Len())
	assert.Equal(t, []string{"coffee", "restaurant", "bar"}, plan.IDs())
	assert.Equal(t, model.StageCoffee, plan.Stops[0].Stage)
	assert.Equal(t, model.StageMeal, plan.Stops[1].Stage)
	assert.Equal(t, model.StageDrinks, plan.Stops[2].Stage)
	assert.Equal(t, 70.0, plan.TotalCost)
	assert.Less(t, plan.BudgetFit, 1.0)
	assert.Greater(t, plan.Fitness, 0.0)
	assert.Equal(t, Algorithm, plan.Algorithm)
}

func TestPlanEmptyCatalog(t *testing.T) {
	plan := newPlanner(1).Plan(nil, model.Constraints{Budget: 60, Stops: 3})

	assert.Equal(t, 0, plan.Len())
	assert.Equal(t, 0.0, plan.Fitness)
}

func TestPlanZeroBudget(t *testing.T) {
	venues := []model.Venue{{ID: "park", PrimaryType: "park", Cost: 0, Rating: 4.0}}

	plan := newPlanner(1).Plan(venues, model.Constraints{Budget: 0, Stops: 3})

	require.Equal(t, 1, plan.Len())
	assert.Equal(t, 1.0, plan.BudgetFit)
}

func TestPlanNeverRepeatsVenues(t *testing.T) {
	venues := catalog(40)
	for seed := uint64(1); seed <= 20; seed++ {
		plan := newPlanner(seed).Plan(venues, model.Constraints{
			Vibes: []string{"romantic"}, Types: []string{"italian"}, Budget: 100, Stops: 5, Randomness: 1,
		})
		require.Equal(t, 5, plan.Len(), "seed %d", seed)
		assert.False(t, model.HasDuplicates(plan.Venues()), "seed %d", seed)
	}
}

func TestPlanIsDeterministicForSeed(t *testing.T) {
	venues := catalog(40)
	c := model.Constraints{Vibes: []string{"cozy"}, Budget: 80, Stops: 3, Randomness: 0.6}

	first := newPlanner(42).Plan(venues, c)
	second := newPlanner(42).Plan(venues, c)

	assert.Equal(t, first.IDs(), second.IDs())
	assert.Equal(t, first.Fitness, second.Fitness)
}

func TestPlanPrefersRequestedCuisine(t *testing.T) {
	venues := []model.Venue{
		{ID: "pho", PrimaryType: "vietnamese_restaurant", Cost: 20, Rating: 4.9, ReviewCount: 900},
		{ID: "pasta", PrimaryType: "italian_restaurant", Cost: 30, Rating: 4.0, ReviewCount: 100},
	}

	plan := newPlanner(7).Plan(venues, model.Constraints{Types: []string{"italian"}, Budget: 50, Stops: 1})

	assert.Equal(t, []string{"pasta"}, plan.IDs())
}

func TestPlanHiddenGems(t *testing.T) {
	venues := []model.Venue{
		{ID: "famous", PrimaryType: "cafe", Cost: 10, Rating: 4.6, ReviewCount: 5000},
		{ID: "gem", PrimaryType: "cafe", Cost: 10, Rating: 4.6, ReviewCount: 40},
	}

	plan := newPlanner(3).Plan(venues, model.Constraints{Budget: 50, Stops: 1, HiddenGems: true})

	assert.Equal(t, []string{"gem"}, plan.IDs())
}

func TestPlanRespectsBudgetCeilingPerVenue(t *testing.T) {
	venues := []model.Venue{
		{ID: "cheap", PrimaryType: "cafe", Cost: 10, Rating: 3.0},
		{ID: "lavish", PrimaryType: "restaurant", Cost: 200, Rating: 5.0, ReviewCount: 2000},
	}

	plan := newPlanner(1).Plan(venues, model.Constraints{Budget: 50, Stops: 2})

	assert.Equal(t, []string{"cheap"}, plan.IDs())
}

func TestChooseGreedyWithoutRandomness(t *testing.T) {
	p := newPlanner(9)
	cands := []candidate{{pos: 4, score: 10}, {pos: 2, score: 5}, {pos: 1, score: 1}}

	for range 20 {
		assert.Equal(t, 4, p.choose(cands, 0).pos)
	}
}

func TestAmenityBonus(t *testing.T) {
	p := newPlanner(1)
	w := DefaultWeights()
	v := &model.Venue{Amenities: model.Amenities{Reservable: true, GoodForChildren: true, LiveMusic: true, GoodForGroups: true}}

	assert.Equal(t, w.RomanticReserve-w.RomanticKids, p.amenityBonus(v, []string{"Romantic"}))
	assert.Equal(t, w.FamilyKids, p.amenityBonus(v, []string{"family"}))
	assert.Equal(t, w.EnergeticLive+w.GroupFriendly, p.amenityBonus(v, []string{"energetic", "friends", "party"}))
	assert.Equal(t, 0.0, p.amenityBonus(v, nil))
}

func TestPlanIgnoresRepeatedVenueIDs(t *testing.T) {
	venues := []model.Venue{
		{ID: "a", PrimaryType: "cafe", Cost: 5, Rating: 4.5, ReviewCount: 60},
		{ID: "a", PrimaryType: "restaurant", Cost: 40, Rating: 4.2, ReviewCount: 200},
		{ID: "b", PrimaryType: "bar", Cost: 25, Rating: 4.0, ReviewCount: 90},
	}

	for seed := uint64(1); seed <= 5; seed++ {
		plan := newPlanner(seed).Plan(venues, model.Constraints{Budget: 100, Stops: 2})
		require.Equal(t, 2, plan.Len())
		assert.ElementsMatch(t, []string{"a", "b"}, plan.IDs())
		assert.Greater(t, plan.Fitness, 0.0)
	}

	short := newPlanner(1).Plan(venues[:2], model.Constraints{Budget: 100, Stops: 2})
	assert.Equal(t, []string{"a"}, short.IDs())
}
