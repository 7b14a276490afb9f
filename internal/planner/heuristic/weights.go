package heuristic

// Weights tune the per-candidate score. Bonuses add to the score and penalties subtract.
type Weights struct {
	VibeMatch         float64 `koanf:"vibe_match"`
	NeutralVibe       float64 `koanf:"neutral_vibe"`
	Rating            float64 `koanf:"rating"`
	HiddenGem         float64 `koanf:"hidden_gem"`
	PopularPenalty    float64 `koanf:"popular_penalty"`
	PopularReviews    int     `koanf:"popular_reviews"`
	Jitter            float64 `koanf:"jitter"`
	Distance          float64 `koanf:"distance"`
	DistanceExponent  float64 `koanf:"distance_exponent"`
	TypeMatch         float64 `koanf:"type_match"`
	WrongCuisine      float64 `koanf:"wrong_cuisine"`
	Complementary     float64 `koanf:"complementary"`
	UnknownStage      float64 `koanf:"unknown_stage"`
	Relevance         float64 `koanf:"relevance"`
	RepeatedType      float64 `koanf:"repeated_type"`
	NewCategory       float64 `koanf:"new_category"`
	RomanticReserve   float64 `koanf:"romantic_reservable"`
	RomanticKids      float64 `koanf:"romantic_kids"`
	OutdoorSeating    float64 `koanf:"outdoor_seating"`
	FamilyKids        float64 `koanf:"family_kids"`
	EnergeticLive     float64 `koanf:"energetic_live_music"`
	GroupFriendly     float64 `koanf:"group_friendly"`
	SelectionSpread   float64 `koanf:"selection_spread"`
	MinSelectionCands int     `koanf:"min_selection_candidates"`
}

func DefaultWeights() Weights {
	return Weights{
		VibeMatch:         25,
		NeutralVibe:       5,
		Rating:            5,
		HiddenGem:         30,
		PopularPenalty:    20,
		PopularReviews:    1000,
		Jitter:            3.0,
		Distance:          3,
		DistanceExponent:  1.5,
		TypeMatch:         500,
		WrongCuisine:      800,
		Complementary:     20,
		UnknownStage:      50,
		Relevance:         100,
		RepeatedType:      100,
		NewCategory:       15,
		RomanticReserve:   25,
		RomanticKids:      30,
		OutdoorSeating:    40,
		FamilyKids:        50,
		EnergeticLive:     40,
		GroupFriendly:     40,
		SelectionSpread:   0.5,
		MinSelectionCands: 2,
	}
}
