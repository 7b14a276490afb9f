package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"datenight/internal/config"
	"datenight/internal/logging"
	"datenight/internal/metrics"
	"datenight/internal/models/request_models"
	"datenight/internal/models/response_models"
	"datenight/internal/planner/fitness"
	"datenight/internal/planner/genetic"
	"datenight/internal/planner/heuristic"
	"datenight/internal/planner/model"
	"datenight/pkg/utils"
)

type PlanningServiceInterface interface {
	Plan(ctx context.Context, req request_models.PlanRequest) (response_models.Plan, error)
}

type PlanningService struct {
	venueService     VenueServiceInterface
	knowledgeService KnowledgeServiceInterface
	cfg              config.PlannerConfig
}

func NewPlanningService(venueService VenueServiceInterface, knowledgeService KnowledgeServiceInterface, cfg config.PlannerConfig) PlanningServiceInterface {
	return &PlanningService{
		venueService:     venueService,
		knowledgeService: knowledgeService,
		cfg:              cfg,
	}
}

// Constraints converts a request into validated planner input.
func Constraints(req request_models.PlanRequest) (model.Constraints, error) {
	now, err := utils.ParseClock(req.Now)
	if err != nil {
		return model.Constraints{}, err
	}
	c := model.Constraints{
		Vibes:       model.ParseTags(strings.Join(req.Vibes, ",")),
		Types:       model.ParseTags(strings.Join(req.Types, ",")),
		Budget:      req.Budget,
		Stops:       req.Stops,
		Location:    strings.TrimSpace(req.Location),
		Indoor:      req.Indoor,
		HiddenGems:  req.HiddenGems,
		Now:         now,
		RequireOpen: req.RequireOpen,
		Query:       strings.TrimSpace(req.Query),
		Randomness:  req.Randomness,
		Exclude:     req.Exclude,
	}
	if err := c.Validate(); err != nil {
		return model.Constraints{}, fmt.Errorf("%w: %w", utils.ErrInvalidConstraints, err)
	}
	return c, nil
}

func (s *PlanningService) algorithm(name string) (string, error) {
	return resolveAlgorithm(name, s.cfg.DefaultAlgorithm)
}

// resolveAlgorithm normalizes a planner name; "ga" is accepted for genetic and an empty
// name falls back to def.
func resolveAlgorithm(name, def string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = strings.ToLower(def)
	}
	switch name {
	case heuristic.Algorithm, genetic.Algorithm:
		return name, nil
	case "ga":
		return genetic.Algorithm, nil
	default:
		return "", fmt.Errorf("%w: %q", utils.ErrUnknownAlgorithm, name)
	}
}

func (s *PlanningService) Plan(ctx context.Context, req request_models.PlanRequest) (response_models.Plan, error) {
	algorithm, err := s.algorithm(req.Algorithm)
	if err != nil {
		metrics.PlannerRequests.WithLabelValues("unknown", metrics.OutcomeInvalid).Inc()
		return response_models.Plan{}, err
	}
	c, err := Constraints(req)
	if err != nil {
		metrics.PlannerRequests.WithLabelValues(algorithm, metrics.OutcomeInvalid).Inc()
		return response_models.Plan{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	venues, err := s.venueService.LoadCatalog(ctx, req.City)
	if err != nil {
		metrics.PlannerRequests.WithLabelValues(algorithm, metrics.OutcomeError).Inc()
		if errors.Is(err, context.DeadlineExceeded) {
			return response_models.Plan{}, fmt.Errorf("%w: %w", utils.ErrPlanningTimeout, err)
		}
		return response_models.Plan{}, err
	}
	kb, _ := s.knowledgeService.ForCatalog(ctx, venues)
	eval := fitness.NewEvaluatorWithWeights(kb, s.cfg.Fitness)
	rng := model.NewRand(req.Seed)

	start := time.Now()
	var (
		plan  model.Plan
		stats genetic.RunStats
	)
	switch algorithm {
	case genetic.Algorithm:
		plan, stats = genetic.New(eval, s.cfg.Genetic, rng).Plan(ctx, venues, c)
		metrics.GAGenerations.Observe(float64(stats.Generations))
	default:
		plan = heuristic.New(eval, s.cfg.Heuristic, rng).Plan(venues, c)
	}
	elapsed := time.Since(start)

	outcome := metrics.OutcomeSuccess
	if plan.Len() == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.PlannerRequests.WithLabelValues(algorithm, outcome).Inc()
	metrics.PlannerDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
	metrics.PlanFitness.WithLabelValues(algorithm).Observe(plan.Fitness)
	metrics.PlanStops.Observe(float64(plan.Len()))

	logging.Ctx(ctx).Info().
		Str("algorithm", algorithm).
		Str("city", req.City).
		Int("candidates", len(venues)).
		Int("stops", plan.Len()).
		Float64("fitness", plan.Fitness).
		Int("generations", stats.Generations).
		Bool("cancelled", stats.Cancelled).
		Dur("elapsed", elapsed).
		Msg("plan built")

	resp := response_models.Plan{
		Algorithm:   plan.Algorithm,
		Fitness:     plan.Fitness,
		Budget:      c.Budget,
		TotalCost:   plan.TotalCost,
		BudgetFit:   plan.BudgetFit,
		Stops:       make([]response_models.Stop, 0, plan.Len()),
		Knowledge:   kb.Fingerprint(),
		Candidates:  len(venues),
		Generations: stats.Generations,
		Partial:     stats.Cancelled,
		ElapsedMs:   float64(elapsed.Microseconds()) / 1000,
	}
	for i, st := range plan.Stops {
		resp.Stops = append(resp.Stops, response_models.Stop{
			Order:      i + 1,
			Stage:      st.Stage,
			BudgetTier: st.BudgetTier,
			Venue:      response_models.VenueFrom(st.Venue),
			Scores:     st.Scores,
			Reasons:    st.Reasons,
		})
	}
	return resp, nil
}
