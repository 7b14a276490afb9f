package request_models

// PlanRequest is the body of POST /plans. Range checks on budget, stops and randomness
// happen when the request becomes planner constraints.
type PlanRequest struct {
	City        string   `json:"city" binding:"max=80"`
	Vibes       []string `json:"vibes" binding:"max=10,dive,max=40"`
	Types       []string `json:"types" binding:"max=10,dive,max=40"`
	Budget      float64  `json:"budget"`
	Stops       int      `json:"stops"`
	Location    string   `json:"location" binding:"max=120"`
	Indoor      *bool    `json:"indoor"`
	HiddenGems  bool     `json:"hidden_gems"`
	RequireOpen bool     `json:"require_open"`
	// Now is an RFC3339 timestamp used for opening hours and time-of-day scoring.
	Now        string   `json:"now"`
	Query      string   `json:"query" binding:"max=200"`
	Randomness float64  `json:"randomness"`
	Algorithm  string   `json:"algorithm"`
	Seed       uint64   `json:"seed"`
	Exclude    []string `json:"exclude" binding:"max=50"`
}

type EvaluationRequest struct {
	City       string  `json:"city"`
	Seed       uint64  `json:"seed"`
	Randomness float64 `json:"randomness" binding:"gte=0,lte=1"`
	// Scenarios is an optional YAML document; the default battery is used when empty.
	Scenarios string `json:"scenarios"`
	// VibeSample bounds the vibe inference check; zero skips it.
	VibeSample int `json:"vibe_sample" binding:"gte=0,lte=1000"`
}

// RatingRequest is a user's score for a plan returned by POST /plans.
type RatingRequest struct {
	Algorithm string   `json:"algorithm" binding:"required"`
	City      string   `json:"city" binding:"max=80"`
	Knowledge string   `json:"knowledge_fingerprint" binding:"max=64"`
	VenueIDs  []string `json:"venue_ids" binding:"max=10"`
	Rating    int      `json:"rating"`
	Comment   string   `json:"comment" binding:"max=500"`
}
