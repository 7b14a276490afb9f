package scoring

import (
	"sort"
	"strings"

	"datenight/internal/planner/model"
)

// HoursPerStop is the time budget assumed for each stop when projecting visit times.
const HoursPerStop = 2

type Period string

const (
	Morning   Period = "morning"
	Lunch     Period = "lunch"
	Afternoon Period = "afternoon"
	Evening   Period = "evening"
	Night     Period = "night"
)

type periodPreference struct {
	preferred []string
	avoid     []string
	boost     float64
}

var periodPreferences = map[Period]periodPreference{
	Morning: {
		preferred: []string{"cafe", "coffee", "bakery", "breakfast", "brunch", "park"},
		avoid:     []string{"bar", "pub", "nightclub", "club"},
		boost:     1.5,
	},
	Lunch: {
		preferred: []string{"restaurant", "cafe", "bistro", "deli", "food"},
		avoid:     []string{"nightclub", "club"},
		boost:     1.3,
	},
	Afternoon: {
		preferred: []string{"museum", "gallery", "park", "shopping", "cafe", "dessert"},
		avoid:     []string{"nightclub", "club"},
		boost:     1.2,
	},
	Evening: {
		preferred: []string{"restaurant", "dinner", "italian", "french", "steakhouse"},
		boost:     1.4,
	},
	Night: {
		preferred: []string{"bar", "pub", "lounge", "cocktail", "nightclub", "club"},
		avoid:     []string{"cafe", "breakfast", "brunch"},
		boost:     1.5,
	},
}

const avoidMultiplier = 0.5

// PeriodOf maps an hour of day to its period. Hours wrap modulo 24.
func PeriodOf(hour int) Period {
	hour = ((hour % 24) + 24) % 24
	switch {
	case hour >= 6 && hour < 11:
		return Morning
	case hour >= 11 && hour < 14:
		return Lunch
	case hour >= 14 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 21:
		return Evening
	default:
		return Night
	}
}

// TimeMultiplier is ×0.5 for a type the period avoids, the period boost for a preferred
// type, and 1 otherwise.
func TimeMultiplier(hour int, venueType string) float64 {
	pref := periodPreferences[PeriodOf(hour)]
	t := strings.ToLower(venueType)
	if containsAny(t, pref.avoid) {
		return avoidMultiplier
	}
	if containsAny(t, pref.preferred) {
		return pref.boost
	}
	return 1.0
}

// ProjectedHour is the hour stop i is expected to start at.
func ProjectedHour(startHour, stop int) int {
	return (startHour + stop*HoursPerStop) % 24
}

// SuggestOrder reorders venues so each lands in the slot whose projected hour suits it
// best. Venues are placed greedily, strongest preference first; ties keep input order.
func SuggestOrder(venues []model.Venue, startHour int) []model.Venue {
	n := len(venues)
	if n < 2 {
		return append([]model.Venue(nil), venues...)
	}

	type option struct {
		venue, slot int
		mult        float64
	}
	options := make([]option, 0, n*n)
	for vi := range venues {
		for slot := 0; slot < n; slot++ {
			options = append(options, option{vi, slot, TimeMultiplier(ProjectedHour(startHour, slot), venues[vi].PrimaryType)})
		}
	}
	sort.SliceStable(options, func(a, b int) bool {
		return options[a].mult > options[b].mult
	})

	out := make([]model.Venue, n)
	placed := make([]bool, n)
	filled := make([]bool, n)
	for _, o := range options {
		if placed[o.venue] || filled[o.slot] {
			continue
		}
		out[o.slot] = venues[o.venue]
		placed[o.venue], filled[o.slot] = true, true
	}
	return out
}
