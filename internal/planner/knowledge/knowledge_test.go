package knowledge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datenight/internal/planner/model"
)

func TestBuildEmptyCatalog(t *testing.T) {
	kb := Build(nil)

	assert.NotEmpty(t, kb.Fingerprint())
	assert.Equal(t, 0, kb.VenueCount())
	assert.InDelta(t, defaultRatingMean, kb.Rating().Mean, 1e-9)
	assert.Equal(t, defaultMinReviews, kb.Rating().MinReviews)
	assert.InDelta(t, defaultTierLow, kb.Budget().Low, 1e-9)
	assert.Contains(t, kb.RelatedTerms("coffee"), "cafe")
}

func TestBuildLearnsBudgetTiers(t *testing.T) {
	var venues []model.Venue
	for i := 1; i <= 10; i++ {
		venues = append(venues, model.Venue{ID: fmt.Sprintf("v%d", i), Cost: float64(i * 10), Rating: 4, ReviewCount: i * 10})
	}

	kb := Build(venues)
	tiers := kb.Budget()

	assert.InDelta(t, 10.0, tiers.Min, 1e-9)
	assert.InDelta(t, 39.7, tiers.Low, 1e-9)
	assert.InDelta(t, 70.3, tiers.High, 1e-9)
	assert.InDelta(t, 100.0, tiers.Max, 1e-9)

	assert.Equal(t, 1, tiers.Tier(20))
	assert.Equal(t, 2, tiers.Tier(50))
	assert.Equal(t, 3, tiers.Tier(90))
}

func TestBuildLearnsRatingPrior(t *testing.T) {
	venues := []model.Venue{
		{ID: "a", Rating: 4.0, ReviewCount: 10},
		{ID: "b", Rating: 5.0, ReviewCount: 20},
		{ID: "c", Rating: 3.0, ReviewCount: 30},
		{ID: "d", Rating: 0, ReviewCount: 40}, // unrated, ignored for the mean
		{ID: "e", Rating: 4.0, ReviewCount: 50},
	}

	prior := Build(venues).Rating()

	assert.InDelta(t, 4.0, prior.Mean, 1e-9)
	assert.Equal(t, 20, prior.MinReviews)
	assert.Equal(t, 30, prior.MedianReviews)
	assert.Greater(t, prior.Std, 0.0)
}

func TestBuildLearnsTypeVibes(t *testing.T) {
	venues := []model.Venue{
		{ID: "1", PrimaryType: "bar", Vibes: []string{"energetic"}},
		{ID: "2", PrimaryType: "bar", Vibes: []string{"energetic"}},
		{ID: "3", PrimaryType: "bar", Vibes: []string{"energetic", "cozy"}},
		{ID: "4", PrimaryType: "bar"},
		{ID: "5", PrimaryType: "bar"},
	}

	kb := Build(venues)
	vibes := kb.TypeVibes("bar")

	assert.Contains(t, vibes, "energetic")
	assert.Contains(t, vibes, "casual", "seed entry survives the merge")
	assert.NotContains(t, vibes, "cozy")
	assert.Contains(t, kb.TypeVibes("sports_bar"), "energetic")
}

func TestBuildLearnsRelatedTerms(t *testing.T) {
	var venues []model.Venue
	for i := 0; i < 3; i++ {
		venues = append(venues, model.Venue{
			ID:          fmt.Sprintf("t%d", i),
			PrimaryType: "tapas_restaurant",
			Types:       []string{"spanish_restaurant", "restaurant"},
		})
	}
	venues = append(venues, model.Venue{ID: "x", PrimaryType: "tapas_bar"})

	kb := Build(venues)

	assert.Equal(t, []string{"spanish"}, kb.RelatedTerms("tapas"))
	assert.Equal(t, []string{"tapas"}, kb.RelatedTerms("spanish"))
	assert.Nil(t, kb.RelatedTerms("restaurant"))
}

func TestBuildLearnsVibeKeywords(t *testing.T) {
	var venues []model.Venue
	for i := 0; i < 3; i++ {
		venues = append(venues,
			model.Venue{ID: fmt.Sprintf("r%d", i), Description: "rooftop terrace overlooking the river", Vibes: []string{"romantic"}},
			model.Venue{ID: fmt.Sprintf("s%d", i), Description: "loud screens showing every hockey game", Vibes: []string{"energetic"}},
		)
	}

	kb := Build(venues)

	assert.Contains(t, kb.VibeKeywords("romantic"), "rooftop")
	assert.Contains(t, kb.VibeKeywords("romantic"), "candlelit", "seed keywords are kept")
	assert.NotContains(t, kb.VibeKeywords("romantic"), "hockey")
	assert.Contains(t, kb.VibeKeywords("energetic"), "hockey")
}

func TestFingerprintIgnoresOrder(t *testing.T) {
	a := []model.Venue{{ID: "a", Cost: 5}, {ID: "b", Cost: 10}}
	b := []model.Venue{{ID: "b", Cost: 10}, {ID: "a", Cost: 5}}
	c := []model.Venue{{ID: "a", Cost: 6}, {ID: "b", Cost: 10}}

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
}

func TestNewCopiesSnapshot(t *testing.T) {
	related := map[string][]string{"wine": {"vineyard"}}
	kb := New(Snapshot{RelatedTerms: related})

	related["wine"][0] = "changed"
	related["beer"] = []string{"brewery"}

	require.Equal(t, []string{"vineyard"}, kb.RelatedTerms("wine"))
	assert.Nil(t, kb.RelatedTerms("beer"))

	out := kb.RelatedTerms("wine")
	out[0] = "mutated"
	assert.Equal(t, []string{"vineyard"}, kb.RelatedTerms("wine"))
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		values []float64
		q      float64
		want   float64
	}{
		{values: []float64{1}, q: 0.5, want: 1},
		{values: []float64{3, 1, 2}, q: 0.5, want: 2},
		{values: []float64{1, 2, 3, 4}, q: 0.5, want: 2.5},
		{values: nil, q: 0.5, want: 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, quantile(tt.values, tt.q), 1e-9)
	}
}
