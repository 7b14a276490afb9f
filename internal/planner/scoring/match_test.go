package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"datenight/internal/planner/knowledge"
	"datenight/internal/planner/model"
)

func TestMatchType(t *testing.T) {
	kb := knowledge.Default()

	tests := []struct {
		name     string
		target   string
		venue    model.Venue
		wantKind MatchKind
		wantTerm string
	}{
		{
			name:     "direct substring on type",
			target:   "Italian",
			venue:    model.Venue{Name: "Luigi's", PrimaryType: "italian_restaurant"},
			wantKind: DirectMatch,
			wantTerm: "italian",
		},
		{
			name:     "demonym root in name",
			target:   "japanese",
			venue:    model.Venue{Name: "Japan Express", PrimaryType: "restaurant"},
			wantKind: CuisineRootMatch,
			wantTerm: "japan",
		},
		{
			name:     "name form for french",
			target:   "french",
			venue:    model.Venue{Name: "Chez Paris", PrimaryType: "restaurant"},
			wantKind: CuisineRootMatch,
			wantTerm: "paris",
		},
		{
			name:     "amenity flag",
			target:   "dinner",
			venue:    model.Venue{Name: "Plate", PrimaryType: "restaurant", Amenities: model.Amenities{ServesDinner: true}},
			wantKind: AmenityMatch,
			wantTerm: "dinner",
		},
		{
			name:     "amenity flag not set",
			target:   "dogs",
			venue:    model.Venue{Name: "Plate", PrimaryType: "restaurant"},
			wantKind: NoMatch,
		},
		{
			name:     "related term",
			target:   "coffee",
			venue:    model.Venue{Name: "Bean Scene", PrimaryType: "cafe"},
			wantKind: RelatedMatch,
			wantTerm: "cafe",
		},
		{
			name:     "no match",
			target:   "sushi",
			venue:    model.Venue{Name: "The Tap", PrimaryType: "bar"},
			wantKind: NoMatch,
		},
		{
			name:     "empty target",
			target:   "  ",
			venue:    model.Venue{Name: "The Tap", PrimaryType: "bar"},
			wantKind: NoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MatchType(kb, tt.target, &tt.venue)
			assert.Equal(t, tt.wantKind, m.Kind)
			if tt.wantKind != NoMatch {
				assert.Equal(t, tt.wantTerm, m.Term)
				assert.Greater(t, m.Score, 0.0)
			} else {
				assert.False(t, m.Matched())
			}
		})
	}
}

func TestMatchScoresFollowPrecedence(t *testing.T) {
	assert.Greater(t, directScore, cuisineRootScore)
	assert.Greater(t, cuisineRootScore, amenityScore)
	assert.Greater(t, amenityScore, relatedScore)
}

func TestMatchAnyPicksStrongest(t *testing.T) {
	kb := knowledge.Default()
	v := model.Venue{Name: "Bean Scene", PrimaryType: "cafe", Amenities: model.Amenities{ServesDessert: true}}

	m := MatchAny(kb, []string{"coffee", "dessert", "cafe"}, &v)

	assert.Equal(t, DirectMatch, m.Kind)
	assert.Equal(t, "cafe", m.Target)
}

func TestIsWrongCuisine(t *testing.T) {
	kb := knowledge.Default()
	pho := model.Venue{Name: "Pho Place", PrimaryType: "vietnamese_restaurant"}
	trattoria := model.Venue{Name: "Nonna", PrimaryType: "restaurant", Types: []string{"trattoria"}}
	bar := model.Venue{Name: "The Tap", PrimaryType: "bar"}

	assert.True(t, IsWrongCuisine(kb, []string{"italian"}, &pho))
	assert.False(t, IsWrongCuisine(kb, []string{"italian"}, &trattoria), "related term keeps the match")
	assert.False(t, IsWrongCuisine(kb, []string{"italian"}, &bar), "only meals can be the wrong cuisine")
	assert.False(t, IsWrongCuisine(kb, []string{"bar"}, &pho), "not a cuisine request")
}

func TestVenueCuisine(t *testing.T) {
	assert.Equal(t, "thai", VenueCuisine(&model.Venue{PrimaryType: "thai_restaurant", Types: []string{"pizza"}}))
	assert.Equal(t, "pizza", VenueCuisine(&model.Venue{PrimaryType: "restaurant", Types: []string{"pizza_restaurant"}}))
	assert.Equal(t, "", VenueCuisine(&model.Venue{PrimaryType: "bar"}))
}
