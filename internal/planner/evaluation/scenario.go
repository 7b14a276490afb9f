package evaluation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"datenight/internal/planner/model"
)

// Scenario is one benchmark request.
type Scenario struct {
	Name   string   `yaml:"name" json:"name"`
	Vibes  []string `yaml:"vibes" json:"vibes"`
	Types  []string `yaml:"types" json:"types"`
	Budget float64  `yaml:"budget" json:"budget"`
	Stops  int      `yaml:"stops" json:"stops"`
}

// Constraints turns the scenario into planner input.
func (s Scenario) Constraints(randomness float64) model.Constraints {
	return model.Constraints{
		Vibes:      s.Vibes,
		Types:      s.Types,
		Budget:     s.Budget,
		Stops:      s.Stops,
		Randomness: randomness,
	}
}

type scenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// DefaultScenarios is the standard battery of date requests.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{Name: "Romantic Italian dinner", Vibes: []string{"romantic"}, Types: []string{"italian"}, Budget: 100, Stops: 3},
		{Name: "Night out at bars", Vibes: []string{"energetic"}, Types: []string{"bar"}, Budget: 80, Stops: 3},
		{Name: "Cozy coffee date", Vibes: []string{"cozy"}, Types: []string{"coffee"}, Budget: 50, Stops: 2},
		{Name: "Fancy French dinner", Vibes: []string{"fancy"}, Types: []string{"french"}, Budget: 150, Stops: 3},
		{Name: "Casual pizza night", Vibes: []string{"casual"}, Types: []string{"pizza"}, Budget: 40, Stops: 2},
		{Name: "Hipster cafe crawl", Vibes: []string{"hipster"}, Types: []string{"cafe"}, Budget: 60, Stops: 3},
		{Name: "Family dinner outing", Vibes: []string{"family"}, Types: []string{"restaurant"}, Budget: 120, Stops: 3},
		{Name: "Romantic wine evening", Vibes: []string{"romantic", "cozy"}, Types: []string{"wine"}, Budget: 100, Stops: 2},
		{Name: "Pub crawl", Vibes: []string{"energetic"}, Types: []string{"pub"}, Budget: 70, Stops: 3},
		{Name: "Sushi foodie date", Vibes: []string{"foodie"}, Types: []string{"sushi"}, Budget: 90, Stops: 2},
		{Name: "Casual brunch", Vibes: []string{"casual"}, Types: []string{"brunch"}, Budget: 50, Stops: 2},
		{Name: "Romantic steakhouse", Vibes: []string{"romantic"}, Types: []string{"steakhouse"}, Budget: 130, Stops: 2},
		{Name: "Cozy bakery visit", Vibes: []string{"cozy"}, Types: []string{"bakery"}, Budget: 30, Stops: 2},
		{Name: "Fun Mexican night", Vibes: []string{"energetic", "casual"}, Types: []string{"mexican"}, Budget: 60, Stops: 3},
		{Name: "Hipster cocktail bars", Vibes: []string{"hipster"}, Types: []string{"cocktail"}, Budget: 80, Stops: 2},
	}
}

// ParseScenarios reads a YAML document with a top-level scenarios list.
func ParseScenarios(data []byte) ([]Scenario, error) {
	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}
	for i, s := range f.Scenarios {
		if s.Budget <= 0 || s.Stops <= 0 {
			return nil, fmt.Errorf("scenario %d (%q): budget and stops must be positive", i, s.Name)
		}
		if s.Name == "" {
			f.Scenarios[i].Name = fmt.Sprintf("scenario %d", i+1)
		}
	}
	return f.Scenarios, nil
}

func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios: %w", err)
	}
	return ParseScenarios(data)
}
