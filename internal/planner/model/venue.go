package model

import (
	"strings"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Amenities are the boolean service flags a catalog row may carry.
type Amenities struct {
	ServesBreakfast  bool `json:"serves_breakfast"`
	ServesBrunch     bool `json:"serves_brunch"`
	ServesLunch      bool `json:"serves_lunch"`
	ServesDinner     bool `json:"serves_dinner"`
	ServesCoffee     bool `json:"serves_coffee"`
	ServesDessert    bool `json:"serves_dessert"`
	ServesBeer       bool `json:"serves_beer"`
	ServesWine       bool `json:"serves_wine"`
	ServesCocktails  bool `json:"serves_cocktails"`
	ServesVegetarian bool `json:"serves_vegetarian"`
	GoodForGroups    bool `json:"good_for_groups"`
	GoodForChildren  bool `json:"good_for_children"`
	GoodForSports    bool `json:"good_for_sports"`
	LiveMusic        bool `json:"live_music"`
	OutdoorSeating   bool `json:"outdoor_seating"`
	AllowsDogs       bool `json:"allows_dogs"`
	Reservable       bool `json:"reservable"`
	Takeout          bool `json:"takeout"`
	Delivery         bool `json:"delivery"`
	DineIn           bool `json:"dine_in"`
}

// Venue is a read-only catalog record. Planners never mutate it.
type Venue struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	PrimaryType string        `json:"primary_type"`
	Types       []string      `json:"types"`
	Cost        float64       `json:"cost"`
	Rating      float64       `json:"rating"`
	ReviewCount int           `json:"review_count"`
	Location    *LatLng       `json:"location,omitempty"`
	Description string        `json:"description"`
	Review      string        `json:"review"`
	Vibes       []string      `json:"vibes"`
	Hours       *OpeningHours `json:"hours,omitempty"`
	Amenities   Amenities     `json:"amenities"`
	Indoor      *bool         `json:"indoor,omitempty"`
	City        string        `json:"city"`
	Address     string        `json:"address"`
}

// HasVibe reports whether any of the venue's vibe labels equals v, ignoring case.
func (v *Venue) HasVibe(vibe string) bool {
	vibe = strings.ToLower(strings.TrimSpace(vibe))
	if vibe == "" {
		return false
	}
	for _, own := range v.Vibes {
		if strings.ToLower(strings.TrimSpace(own)) == vibe {
			return true
		}
	}
	return false
}

// SharesVibe reports whether the venue carries at least one of the given vibes.
func (v *Venue) SharesVibe(vibes []string) bool {
	for _, t := range vibes {
		if v.HasVibe(t) {
			return true
		}
	}
	return false
}

// AllTypes returns the primary type followed by the raw type tags.
func (v *Venue) AllTypes() []string {
	out := make([]string, 0, len(v.Types)+1)
	if v.PrimaryType != "" {
		out = append(out, v.PrimaryType)
	}
	return append(out, v.Types...)
}

// ParseTags splits a comma separated label list, trimming and lower-casing entries.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
