package model

// Stage is the slot a venue fills in the flow of a date.
type Stage string

const (
	StageActivity Stage = "activity"
	StageCoffee   Stage = "coffee"
	StageMeal     Stage = "meal"
	StageDrinks   Stage = "drinks"
	StageDessert  Stage = "dessert"
	StageOther    Stage = "other"
)

// Stages lists every stage value.
var Stages = []Stage{StageActivity, StageCoffee, StageMeal, StageDrinks, StageDessert, StageOther}

// Ordinal is the position of the stage in a date. Other sits with meals.
func (s Stage) Ordinal() int {
	switch s {
	case StageActivity:
		return 1
	case StageCoffee:
		return 2
	case StageMeal:
		return 3
	case StageDrinks:
		return 4
	case StageDessert:
		return 5
	default:
		return 3
	}
}

type ScoreBreakdown struct {
	VibeMatch  float64 `json:"vibe_match"`
	BudgetFit  float64 `json:"budget_fit"`
	DistanceKm float64 `json:"distance_km"`
	Rating     float64 `json:"rating"`
	Diversity  float64 `json:"diversity"`
}

type Stop struct {
	Venue      Venue          `json:"venue"`
	Stage      Stage          `json:"stage"`
	BudgetTier int            `json:"budget_tier"`
	Scores     ScoreBreakdown `json:"scores"`
	Reasons    []string       `json:"reasons,omitempty"`
}

// Plan is an ordered itinerary. Venue ids are unique within a plan.
type Plan struct {
	Stops     []Stop  `json:"stops"`
	TotalCost float64 `json:"total_cost"`
	BudgetFit float64 `json:"budget_fit"`
	Fitness   float64 `json:"fitness"`
	Algorithm string  `json:"algorithm"`
}

func (p Plan) Len() int {
	return len(p.Stops)
}

// Venues returns the plan's venues in order.
func (p Plan) Venues() []Venue {
	out := make([]Venue, len(p.Stops))
	for i, s := range p.Stops {
		out[i] = s.Venue
	}
	return out
}

func (p Plan) IDs() []string {
	out := make([]string, len(p.Stops))
	for i, s := range p.Stops {
		out[i] = s.Venue.ID
	}
	return out
}

// HasDuplicates reports whether a venue id appears more than once.
func HasDuplicates(venues []Venue) bool {
	seen := make(map[string]struct{}, len(venues))
	for _, v := range venues {
		if _, ok := seen[v.ID]; ok {
			return true
		}
		seen[v.ID] = struct{}{}
	}
	return false
}

// TotalCost sums venue costs.
func TotalCost(venues []Venue) float64 {
	total := 0.0
	for _, v := range venues {
		total += v.Cost
	}
	return total
}
