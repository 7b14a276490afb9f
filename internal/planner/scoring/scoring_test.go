package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datenight/internal/planner/knowledge"
	"datenight/internal/planner/model"
)

func TestRelevance(t *testing.T) {
	kb := knowledge.Default()
	venues := []model.Venue{
		{ID: "cafe", Name: "Bean Scene", PrimaryType: "cafe", Vibes: []string{"cozy"}, Description: "Quiet espresso counter with shelves of books"},
		{ID: "bar", Name: "The Tap", PrimaryType: "bar", Vibes: []string{"energetic"}},
	}
	idx := NewIndex(venues)

	scores := idx.RelevanceAll(kb, []string{"cozy", "romantic"}, []string{"coffee"}, "espresso and books nearby")

	require.Len(t, scores, 2)
	// +2 related type match, +0.5 cozy, +0.2 espresso, +0.2 books
	assert.InDelta(t, 2.9, scores[0], 1e-9)
	assert.InDelta(t, 0.0, scores[1], 1e-9)

	pos, ok := idx.Position("bar")
	assert.True(t, ok)
	assert.Equal(t, 1, pos)
	assert.Equal(t, "The Tap", idx.Venue(pos).Name)
}

func TestQueryKeywords(t *testing.T) {
	assert.Equal(t, []string{"quiet", "wine", "near"}, QueryKeywords("A quiet wine bar, near me!"))
	assert.Empty(t, QueryKeywords(""))
}

func TestPeriodOf(t *testing.T) {
	tests := map[int]Period{
		6: Morning, 10: Morning, 11: Lunch, 13: Lunch, 14: Afternoon, 16: Afternoon,
		17: Evening, 20: Evening, 21: Night, 23: Night, 0: Night, 5: Night, -1: Night, 30: Morning,
	}
	for hour, want := range tests {
		assert.Equal(t, want, PeriodOf(hour), "hour %d", hour)
	}
}

func TestTimeMultiplier(t *testing.T) {
	tests := []struct {
		hour      int
		venueType string
		want      float64
	}{
		{8, "bar", 0.5},
		{8, "cafe", 1.5},
		{12, "cafe", 1.3},
		{15, "museum", 1.2},
		{15, "spa", 1.0},
		{19, "italian_restaurant", 1.4},
		{23, "cafe", 0.5},
		{23, "cocktail_bar", 1.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, TimeMultiplier(tt.hour, tt.venueType), 1e-9, "%d %s", tt.hour, tt.venueType)
	}
}

func TestSuggestOrder(t *testing.T) {
	venues := []model.Venue{
		{ID: "bar", PrimaryType: "bar"},
		{ID: "cafe", PrimaryType: "cafe"},
	}

	got := SuggestOrder(venues, 8)

	require.Len(t, got, 2)
	assert.Equal(t, "cafe", got[0].ID)
	assert.Equal(t, "bar", got[1].ID)
	assert.Equal(t, "bar", venues[0].ID, "input is not reordered in place")
}

func TestIsOpen(t *testing.T) {
	monday := func(h, m int) time.Time { return time.Date(2024, 1, 1, h, m, 0, 0, time.UTC) }
	friday := func(h, m int) time.Time { return time.Date(2024, 1, 5, h, m, 0, 0, time.UTC) }
	saturday := func(h, m int) time.Time { return time.Date(2024, 1, 6, h, m, 0, 0, time.UTC) }

	weekday := &model.OpeningHours{Periods: []model.OpeningPeriod{
		{Open: model.DayTime{Day: 1, Hour: 9}, Close: &model.DayTime{Day: 1, Hour: 17}},
	}}
	overnight := &model.OpeningHours{Periods: []model.OpeningPeriod{
		{Open: model.DayTime{Day: 5, Hour: 20}, Close: &model.DayTime{Day: 6, Hour: 2}},
	}}
	mondayFirst := &model.OpeningHours{Convention: model.MondayFirst, Periods: []model.OpeningPeriod{
		{Open: model.DayTime{Day: 0, Hour: 9}, Close: &model.DayTime{Day: 0, Hour: 17}},
	}}
	allDay := &model.OpeningHours{Periods: []model.OpeningPeriod{{Open: model.DayTime{Day: 0}}}}
	malformed := &model.OpeningHours{Periods: []model.OpeningPeriod{
		{Open: model.DayTime{Day: 9, Hour: 9}, Close: &model.DayTime{Day: 9, Hour: 17}},
	}}

	tests := []struct {
		name  string
		hours *model.OpeningHours
		at    time.Time
		want  bool
	}{
		{"absent hours", nil, monday(3, 0), true},
		{"no periods", &model.OpeningHours{}, monday(3, 0), true},
		{"24/7", allDay, monday(3, 0), true},
		{"malformed", malformed, monday(3, 0), true},
		{"inside same day span", weekday, monday(10, 0), true},
		{"at opening minute", weekday, monday(9, 0), true},
		{"at closing minute", weekday, monday(17, 0), false},
		{"after close", weekday, monday(18, 0), false},
		{"other day", weekday, friday(10, 0), false},
		{"overnight before midnight", overnight, friday(23, 0), true},
		{"overnight after midnight", overnight, saturday(1, 30), true},
		{"overnight after close", overnight, saturday(3, 0), false},
		{"overnight before open", overnight, friday(19, 0), false},
		{"monday first convention", mondayFirst, monday(10, 0), true},
		{"monday first convention wrong day", mondayFirst, saturday(10, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOpen(tt.hours, tt.at))
		})
	}
}

func TestHaversine(t *testing.T) {
	assert.Equal(t, 0.0, HaversineKm(45.4215, -75.6972, 45.4215, -75.6972))

	// Ottawa to Montreal
	assert.InDelta(t, 166.0, HaversineKm(45.4215, -75.6972, 45.5017, -73.5673), 5.0)

	_, ok := DistanceKm(nil, &model.LatLng{Lat: 1, Lng: 1})
	assert.False(t, ok)
	km, ok := DistanceKm(&model.LatLng{Lat: 1, Lng: 1}, &model.LatLng{Lat: 1, Lng: 1})
	assert.True(t, ok)
	assert.Equal(t, 0.0, km)
}

func TestBayesianRating(t *testing.T) {
	kb := knowledge.New(knowledge.Snapshot{Rating: knowledge.RatingPrior{Mean: 4.0, MinReviews: 10, MedianReviews: 100}})

	few := BayesianRating(kb, 5.0, 2)
	many := BayesianRating(kb, 4.3, 500)

	assert.InDelta(t, 50.0/12.0, few, 1e-9)
	assert.Greater(t, many, few, "well reviewed 4.3 beats a barely reviewed 5.0")

	empty := knowledge.New(knowledge.Snapshot{Rating: knowledge.RatingPrior{Mean: 3.7}})
	assert.InDelta(t, 3.7, BayesianRating(empty, 5.0, 0), 1e-9)
}

func TestHiddenGemAndConfidence(t *testing.T) {
	kb := knowledge.New(knowledge.Snapshot{Rating: knowledge.RatingPrior{Mean: 4.0, MinReviews: 10, MedianReviews: 100}})

	assert.True(t, IsHiddenGem(kb, 4.5, 50))
	assert.False(t, IsHiddenGem(kb, 4.5, 5))
	assert.False(t, IsHiddenGem(kb, 3.9, 50))
	assert.False(t, IsHiddenGem(kb, 4.5, 500))

	assert.InDelta(t, 0.0, RatingConfidence(kb, 0), 1e-9)
	assert.InDelta(t, 0.5, RatingConfidence(kb, 10), 1e-9)
	assert.InDelta(t, 0.75, RatingConfidence(kb, 55), 1e-9)
	assert.InDelta(t, 1.0, RatingConfidence(kb, 1000), 1e-9)
}

func TestBudgetFit(t *testing.T) {
	assert.Equal(t, 1.0, BudgetFit(50, 60))
	assert.Equal(t, 1.0, BudgetFit(60, 60))
	assert.Equal(t, 1.0, BudgetFit(0, 0))
	assert.InDelta(t, 1.0-10.0/60.0, BudgetFit(70, 60), 1e-9)

	prev := BudgetFit(60, 60)
	for cost := 61.0; cost <= 300; cost += 7 {
		fit := BudgetFit(cost, 60)
		assert.Less(t, fit, prev, "cost %.0f", cost)
		prev = fit
	}
}

func TestBudgetTier(t *testing.T) {
	kb := knowledge.New(knowledge.Snapshot{Budget: knowledge.BudgetTiers{Low: 20, High: 50}})

	assert.Equal(t, 1, BudgetTier(kb, 10))
	assert.Equal(t, 1, BudgetTier(kb, 20))
	assert.Equal(t, 2, BudgetTier(kb, 30))
	assert.Equal(t, 3, BudgetTier(kb, 60))
}

func TestInferVibes(t *testing.T) {
	kb := knowledge.Default()

	assert.Contains(t, InferVibes(kb, "A candlelit, intimate little spot", ""), "romantic")
	assert.Contains(t, InferVibes(kb, "Cozy corner", ""), "cozy")
	assert.NotContains(t, InferVibes(kb, "Quiet", ""), "cozy", "one plain keyword is not enough")
	assert.Contains(t, InferVibes(kb, "", "park"), "outdoors")
	assert.Empty(t, InferVibes(kb, "", ""))
}
