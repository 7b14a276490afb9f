package scoring

import (
	"math"

	"datenight/internal/planner/knowledge"
)

// BudgetFit is 1 when cost is within budget and falls linearly with the overage ratio
// (cost-budget)/budget. It keeps falling below zero; callers clamp aggregate scores.
// A non-positive budget is treated as one currency unit when measuring overage.
func BudgetFit(cost, budget float64) float64 {
	if cost <= budget {
		return 1.0
	}
	return 1.0 - (cost-budget)/math.Max(budget, 1)
}

// BudgetTier places a price in the catalog's learned tiers (1..3).
func BudgetTier(kb *knowledge.KnowledgeBase, price float64) int {
	return kb.Budget().Tier(price)
}
