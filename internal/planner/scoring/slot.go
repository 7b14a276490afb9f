// Package scoring holds the pure per-venue and per-pair scorers the planners share.
// Nothing here allocates shared state; learned vocabularies arrive through a
// *knowledge.KnowledgeBase argument.
package scoring

import (
	"strings"

	"datenight/internal/planner/model"
)

var (
	dessertKeywords  = []string{"bakery", "ice_cream", "dessert", "pastry", "donut", "candy"}
	drinksKeywords   = []string{"bar", "pub", "brewery", "nightclub", "lounge"}
	mealKeywords     = []string{"restaurant", "food", "dining"}
	activityKeywords = []string{
		"park", "museum", "gallery", "cinema", "theater", "theatre", "bowling", "spa",
		"gym", "recreation", "attraction", "amusement", "zoo", "aquarium", "skating",
	}
	coffeeKeywords = []string{"coffee", "cafe", "café", "tea_house"}
)

// ClassifyStage puts a venue into exactly one stage. The first type is treated as
// the primary type: a bar inside a restaurant is a meal, not drinks.
func ClassifyStage(types ...string) model.Stage {
	primary := ""
	if len(types) > 0 {
		primary = strings.ToLower(types[0])
	}
	all := strings.ToLower(strings.Join(types, " "))

	switch {
	case containsAny(all, dessertKeywords):
		return model.StageDessert
	case containsAny(all, drinksKeywords) && !strings.Contains(primary, "restaurant"):
		return model.StageDrinks
	case containsAny(all, mealKeywords):
		return model.StageMeal
	case containsAny(all, activityKeywords):
		return model.StageActivity
	case containsAny(all, coffeeKeywords):
		return model.StageCoffee
	default:
		return model.StageOther
	}
}

// VenueStage classifies a venue by its primary type and tags.
func VenueStage(v *model.Venue) model.Stage {
	return ClassifyStage(v.AllTypes()...)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
