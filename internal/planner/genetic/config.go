package genetic

import (
	"fmt"
	"runtime"
)

// Config holds the evolution parameters.
type Config struct {
	// PopulationSize is the number of individuals per generation
	PopulationSize int `koanf:"population_size"`
	// Generations caps the number of generations
	Generations int `koanf:"generations"`
	// MutationRate is the base per-child mutation probability, scaled by randomness
	MutationRate float64 `koanf:"mutation_rate"`
	// CrossoverRate is the base recombination probability, lowered by randomness
	CrossoverRate float64 `koanf:"crossover_rate"`
	// ElitismCount individuals are carried over unchanged
	ElitismCount int `koanf:"elitism_count"`
	// MaxStagnation stops the run after this many generations without a new best
	MaxStagnation int `koanf:"max_stagnation"`
	// TournamentSize for parent selection
	TournamentSize int `koanf:"tournament_size"`
	// Workers bounds parallel fitness evaluation (0 = GOMAXPROCS)
	Workers int `koanf:"workers"`

	// AdaptiveWindow is the look-back in generations for adaptive mutation
	AdaptiveWindow int `koanf:"adaptive_window"`
	// AdaptiveMaxRate caps the doubled mutation rate
	AdaptiveMaxRate float64 `koanf:"adaptive_max_rate"`

	// LocalSearchIterations bounds the hill climb on the final best individual
	LocalSearchIterations int `koanf:"local_search_iterations"`
	// LocalSearchCandidates is how many top relevance venues the hill climb tries
	LocalSearchCandidates int `koanf:"local_search_candidates"`
}

func DefaultConfig() Config {
	return Config{
		PopulationSize:        100,
		Generations:           50,
		MutationRate:          0.2,
		CrossoverRate:         0.8,
		ElitismCount:          5,
		MaxStagnation:         20,
		TournamentSize:        3,
		AdaptiveWindow:        5,
		AdaptiveMaxRate:       0.5,
		LocalSearchIterations: 10,
		LocalSearchCandidates: 20,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("genetic.population_size must be at least 2, got %d", c.PopulationSize)
	}
	if c.Generations < 1 {
		return fmt.Errorf("genetic.generations must be positive, got %d", c.Generations)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("genetic.mutation_rate must be in [0, 1], got %f", c.MutationRate)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("genetic.crossover_rate must be in [0, 1], got %f", c.CrossoverRate)
	}
	// at least one elite keeps the best fitness from regressing
	if c.ElitismCount < 1 || c.ElitismCount >= c.PopulationSize {
		return fmt.Errorf("genetic.elitism_count must be in [1, population_size), got %d", c.ElitismCount)
	}
	if c.MaxStagnation < 1 {
		return fmt.Errorf("genetic.max_stagnation must be positive, got %d", c.MaxStagnation)
	}
	if c.TournamentSize < 1 {
		return fmt.Errorf("genetic.tournament_size must be positive, got %d", c.TournamentSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("genetic.workers must be non-negative, got %d", c.Workers)
	}
	if c.AdaptiveWindow < 2 {
		return fmt.Errorf("genetic.adaptive_window must be at least 2, got %d", c.AdaptiveWindow)
	}
	if c.AdaptiveMaxRate < 0 || c.AdaptiveMaxRate > 1 {
		return fmt.Errorf("genetic.adaptive_max_rate must be in [0, 1], got %f", c.AdaptiveMaxRate)
	}
	if c.LocalSearchIterations < 0 || c.LocalSearchCandidates < 0 {
		return fmt.Errorf("genetic.local_search settings must be non-negative")
	}
	return nil
}

func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// rates derives the mutation and crossover probabilities for a randomness level in [0,1].
func (c *Config) rates(randomness float64) (mutation, crossover float64) {
	mutation = min(1, c.MutationRate*(0.5+randomness))
	crossover = max(0, c.CrossoverRate-0.2*randomness)
	return mutation, crossover
}
