package response_models

import "time"

type Rating struct {
	ID        string    `json:"id"`
	Algorithm string    `json:"algorithm"`
	City      string    `json:"city,omitempty"`
	VenueIDs  []string  `json:"venue_ids,omitempty"`
	Rating    int       `json:"rating"`
	Label     string    `json:"label"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingSummary is the mean user satisfaction for one planner.
type RatingSummary struct {
	Algorithm string  `json:"algorithm"`
	Count     int64   `json:"count"`
	Mean      float64 `json:"mean"`
	Label     string  `json:"label"`
}
