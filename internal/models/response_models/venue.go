package response_models

import "datenight/internal/planner/model"

type Venue struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	PrimaryType string              `json:"primary_type"`
	Types       []string            `json:"types,omitempty"`
	City        string              `json:"city,omitempty"`
	Address     string              `json:"address,omitempty"`
	Cost        float64             `json:"cost"`
	Rating      float64             `json:"rating"`
	ReviewCount int                 `json:"review_count"`
	Latitude    *float64            `json:"latitude,omitempty"`
	Longitude   *float64            `json:"longitude,omitempty"`
	Vibes       []string            `json:"vibes,omitempty"`
	Description string              `json:"description,omitempty"`
	Hours       *model.OpeningHours `json:"hours,omitempty"`
	Amenities   *model.Amenities    `json:"amenities,omitempty"`
}

// VenueFrom converts a catalog venue.
func VenueFrom(v model.Venue) Venue {
	out := Venue{
		ID:          v.ID,
		Name:        v.Name,
		PrimaryType: v.PrimaryType,
		Types:       v.Types,
		City:        v.City,
		Address:     v.Address,
		Cost:        v.Cost,
		Rating:      v.Rating,
		ReviewCount: v.ReviewCount,
		Vibes:       v.Vibes,
		Description: v.Description,
		Hours:       v.Hours,
	}
	if v.Location != nil {
		lat, lng := v.Location.Lat, v.Location.Lng
		out.Latitude, out.Longitude = &lat, &lng
	}
	if v.Amenities != (model.Amenities{}) {
		a := v.Amenities
		out.Amenities = &a
	}
	return out
}

type ImportResult struct {
	Imported int `json:"imported"`
}
