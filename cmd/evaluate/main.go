// Command evaluate benchmarks the random baseline, the heuristic planner and the
// genetic planner over a scenario battery.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"datenight/internal/config"
	"datenight/internal/infra"
	"datenight/internal/logging"
	"datenight/internal/planner/evaluation"
	"datenight/internal/planner/fitness"
	"datenight/internal/planner/knowledge"
	"datenight/internal/planner/model"
	"datenight/internal/repositories"
	"datenight/internal/services"
)

type flags struct {
	catalog     string
	city        string
	scenarios   string
	seed        uint64
	randomness  float64
	xlsx        string
	vibeSample  int
	interactive bool
}

func main() {
	var f flags
	flag.StringVar(&f.catalog, "catalog", "", "JSON venue file; the database is used when empty")
	flag.StringVar(&f.city, "city", "", "city to load from the database")
	flag.StringVar(&f.scenarios, "scenarios", "", "YAML scenario file; the built-in battery is used when empty")
	flag.Uint64Var(&f.seed, "seed", 0, "random seed, 0 for a fresh run")
	flag.Float64Var(&f.randomness, "randomness", 0.2, "planner randomness in [0,1]")
	flag.StringVar(&f.xlsx, "xlsx", "", "also write the report to this spreadsheet")
	flag.IntVar(&f.vibeSample, "vibe-sample", 0, "number of venues to check vibe inference on")
	flag.BoolVar(&f.interactive, "interactive", false, "rate every plan from stdin")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f); err != nil {
		logging.Error().Err(err).Msg("evaluation failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(cfg.Logging)

	if f.randomness < 0 || f.randomness > 1 {
		return fmt.Errorf("randomness must be in [0,1], got %v", f.randomness)
	}

	venues, err := loadVenues(ctx, cfg, f)
	if err != nil {
		return err
	}
	if len(venues) == 0 {
		return errors.New("catalog is empty")
	}

	scenarios := evaluation.DefaultScenarios()
	if f.scenarios != "" {
		if scenarios, err = evaluation.LoadScenarios(f.scenarios); err != nil {
			return err
		}
	}

	kb := knowledge.Build(venues)
	opts := evaluation.Options{
		Seed:       f.seed,
		Randomness: f.randomness,
		Heuristic:  cfg.Planner.Heuristic,
		Genetic:    cfg.Planner.Genetic,
	}
	if f.interactive {
		opts.Rater = newPromptRater(os.Stdin, os.Stdout)
	}

	logging.Info().Int("venues", len(venues)).Int("scenarios", len(scenarios)).Str("knowledge", kb.Fingerprint()).Msg("evaluation started")
	report, err := evaluation.NewHarness(fitness.NewEvaluatorWithWeights(kb, cfg.Planner.Fitness), opts).Run(ctx, venues, scenarios)
	if err != nil {
		return err
	}
	if f.vibeSample > 0 {
		acc := evaluation.MeasureVibeAccuracy(kb, model.NewRand(f.seed), venues, f.vibeSample)
		report.VibeAccuracy = &acc
	}

	if err := report.WriteText(os.Stdout); err != nil {
		return err
	}
	if f.xlsx != "" {
		if err := report.SaveXLSX(f.xlsx); err != nil {
			return err
		}
		logging.Info().Str("path", f.xlsx).Msg("spreadsheet written")
	}
	return nil
}

func loadVenues(ctx context.Context, cfg *config.Config, f flags) ([]model.Venue, error) {
	if f.catalog != "" {
		return evaluation.LoadCatalogFile(f.catalog)
	}

	db, err := infra.InitPostgresql(cfg.Database)
	if err != nil {
		return nil, err
	}
	defer infra.ClosePostgresql(db)

	venueService := services.NewVenueService(repositories.NewVenueRepository(db), cfg.Catalog)
	return venueService.LoadCatalog(ctx, f.city)
}
