package services

import (
	"context"
	"fmt"
	"strings"

	"datenight/internal/config"
	"datenight/internal/logging"
	"datenight/internal/models/request_models"
	"datenight/internal/planner/evaluation"
	"datenight/internal/planner/fitness"
	"datenight/internal/planner/model"
	"datenight/pkg/utils"
)

type EvaluationServiceInterface interface {
	Run(ctx context.Context, req request_models.EvaluationRequest) (*evaluation.Report, error)
}

type EvaluationService struct {
	venueService     VenueServiceInterface
	knowledgeService KnowledgeServiceInterface
	cfg              config.PlannerConfig
}

func NewEvaluationService(venueService VenueServiceInterface, knowledgeService KnowledgeServiceInterface, cfg config.PlannerConfig) EvaluationServiceInterface {
	return &EvaluationService{
		venueService:     venueService,
		knowledgeService: knowledgeService,
		cfg:              cfg,
	}
}

func (s *EvaluationService) Run(ctx context.Context, req request_models.EvaluationRequest) (*evaluation.Report, error) {
	scenarios := evaluation.DefaultScenarios()
	if strings.TrimSpace(req.Scenarios) != "" {
		parsed, err := evaluation.ParseScenarios([]byte(req.Scenarios))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", utils.ErrInvalidConstraints, err)
		}
		scenarios = parsed
	}

	venues, err := s.venueService.LoadCatalog(ctx, req.City)
	if err != nil {
		return nil, err
	}
	kb, _ := s.knowledgeService.ForCatalog(ctx, venues)

	opts := evaluation.Options{
		Seed:       req.Seed,
		Randomness: req.Randomness,
		Heuristic:  s.cfg.Heuristic,
		Genetic:    s.cfg.Genetic,
	}
	harness := evaluation.NewHarness(fitness.NewEvaluatorWithWeights(kb, s.cfg.Fitness), opts)

	logging.Ctx(ctx).Info().Str("city", req.City).Int("scenarios", len(scenarios)).Int("venues", len(venues)).Msg("evaluation started")
	report, err := harness.Run(ctx, venues, scenarios)
	if err != nil {
		return nil, fmt.Errorf("run evaluation: %w", err)
	}
	if req.VibeSample > 0 {
		acc := evaluation.MeasureVibeAccuracy(kb, model.NewRand(req.Seed), venues, req.VibeSample)
		report.VibeAccuracy = &acc
	}
	logging.Ctx(ctx).Info().Float64("ga_mean_seconds", report.GATime.Mean).Msg("evaluation finished")
	return report, nil
}
