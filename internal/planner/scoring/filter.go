package scoring

import (
	"strings"

	"datenight/internal/planner/model"
)

// Eligible applies the hard constraints shared by every planner: a per-venue budget
// ceiling, excluded ids, the location substring, the indoor preference and, when asked,
// open-now. Only the first venue with a given id is kept.
//
// A location that matches no venue is ignored rather than emptying the pool. Venues with
// unknown indoor status pass the indoor filter. The input slice is not modified.
func Eligible(venues []model.Venue, c model.Constraints) []model.Venue {
	excluded := make(map[string]struct{}, len(c.Exclude))
	for _, id := range c.Exclude {
		excluded[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(venues))
	out := make([]model.Venue, 0, len(venues))
	for i := range venues {
		v := &venues[i]
		if _, dup := seen[v.ID]; dup {
			continue
		}
		if v.Cost > c.Budget {
			continue
		}
		if _, skip := excluded[v.ID]; skip {
			continue
		}
		if c.Indoor != nil && v.Indoor != nil && *c.Indoor != *v.Indoor {
			continue
		}
		if c.RequireOpen && !c.Now.IsZero() && !IsOpen(v.Hours, c.Now) {
			continue
		}
		seen[v.ID] = struct{}{}
		out = append(out, *v)
	}

	loc := strings.ToLower(strings.TrimSpace(c.Location))
	if loc == "" {
		return out
	}
	local := make([]model.Venue, 0, len(out))
	for _, v := range out {
		if strings.Contains(strings.ToLower(v.Address), loc) || strings.Contains(strings.ToLower(v.City), loc) {
			local = append(local, v)
		}
	}
	if len(local) == 0 {
		return out
	}
	return local
}
