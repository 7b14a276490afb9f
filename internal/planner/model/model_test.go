package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintsValidate(t *testing.T) {
	tests := []struct {
		name      string
		c         Constraints
		wantField string
	}{
		{name: "valid", c: Constraints{Budget: 60, Stops: 3, Randomness: 0.3}},
		{name: "zero budget", c: Constraints{Budget: 0, Stops: 3}, wantField: "Budget"},
		{name: "negative budget", c: Constraints{Budget: -5, Stops: 3}, wantField: "Budget"},
		{name: "zero stops", c: Constraints{Budget: 10, Stops: 0}, wantField: "Stops"},
		{name: "too many stops", c: Constraints{Budget: 10, Stops: 11}, wantField: "Stops"},
		{name: "randomness above one", c: Constraints{Budget: 10, Stops: 2, Randomness: 1.5}, wantField: "Randomness"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var cerr *ConstraintError
			require.True(t, errors.As(err, &cerr), "want ConstraintError, got %v", err)
			require.NotEmpty(t, cerr.Fields)
			assert.Equal(t, tt.wantField, cerr.Fields[0].Field)
			assert.Contains(t, cerr.Error(), "invalid constraints")
		})
	}
}

func TestStageOrdinal(t *testing.T) {
	assert.Equal(t, 1, StageActivity.Ordinal())
	assert.Equal(t, 2, StageCoffee.Ordinal())
	assert.Equal(t, 3, StageMeal.Ordinal())
	assert.Equal(t, 4, StageDrinks.Ordinal())
	assert.Equal(t, 5, StageDessert.Ordinal())
	assert.Equal(t, 3, StageOther.Ordinal())
}

func TestHasDuplicates(t *testing.T) {
	assert.False(t, HasDuplicates(nil))
	assert.False(t, HasDuplicates([]Venue{{ID: "a"}, {ID: "b"}}))
	assert.True(t, HasDuplicates([]Venue{{ID: "a"}, {ID: "b"}, {ID: "a"}}))
}

func TestParseTags(t *testing.T) {
	assert.Nil(t, ParseTags("  "))
	assert.Equal(t, []string{"cozy", "romantic"}, ParseTags(" Cozy, romantic ,,"))
}

func TestVenueVibes(t *testing.T) {
	v := Venue{Vibes: []string{"Cozy", " romantic"}}
	assert.True(t, v.HasVibe("cozy"))
	assert.True(t, v.HasVibe("ROMANTIC"))
	assert.False(t, v.HasVibe(""))
	assert.True(t, v.SharesVibe([]string{"energetic", "romantic"}))
	assert.False(t, v.SharesVibe([]string{"energetic"}))
}

func TestPlanHelpers(t *testing.T) {
	p := Plan{Stops: []Stop{
		{Venue: Venue{ID: "a", Cost: 5}},
		{Venue: Venue{ID: "b", Cost: 40}},
	}}
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, []string{"a", "b"}, p.IDs())
	assert.InDelta(t, 45.0, TotalCost(p.Venues()), 1e-9)
}
