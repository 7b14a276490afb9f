package response_models

import "datenight/internal/planner/knowledge"

type Knowledge struct {
	City string `json:"city"`
	knowledge.Summary
	Cached bool `json:"cached"`
}
