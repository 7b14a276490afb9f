package response_models

import "datenight/internal/planner/model"

type Plan struct {
	Algorithm   string  `json:"algorithm"`
	Fitness     float64 `json:"fitness"`
	Budget      float64 `json:"budget"`
	TotalCost   float64 `json:"total_cost"`
	BudgetFit   float64 `json:"budget_fit"`
	Stops       []Stop  `json:"stops"`
	Knowledge   string  `json:"knowledge_fingerprint"`
	Candidates  int     `json:"candidates"`
	Generations int     `json:"generations,omitempty"`
	// Partial is set when a genetic run hit its deadline and returned its best so far.
	Partial   bool    `json:"partial,omitempty"`
	ElapsedMs float64 `json:"elapsed_ms"`
}

type Stop struct {
	Order      int                  `json:"order"`
	Stage      model.Stage          `json:"stage"`
	BudgetTier int                  `json:"budget_tier"`
	Venue      Venue                `json:"venue"`
	Scores     model.ScoreBreakdown `json:"scores"`
	Reasons    []string             `json:"reasons,omitempty"`
}
