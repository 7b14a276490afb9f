package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datenight/internal/models/request_models"
	"datenight/internal/planner/model"
	mem "datenight/pkg/memcache"
	"datenight/pkg/utils"
)

type stack struct {
	repo      *fakeVenueRepo
	store     mem.KnowledgeStore
	venues    VenueServiceInterface
	knowledge KnowledgeServiceInterface
	planning  PlanningServiceInterface
}

func newStack() *stack {
	s := &stack{repo: &fakeVenueRepo{rows: ottawaRows()}, store: mem.NewKnowledgeStore(time.Minute)}
	s.venues = NewVenueService(s.repo, testCatalogConfig())
	s.knowledge = NewKnowledgeService(s.venues, s.store)
	s.planning = NewPlanningService(s.venues, s.knowledge, testPlannerConfig())
	return s
}

func TestKnowledgeIsCachedPerCatalog(t *testing.T) {
	s := newStack()
	ctx := context.Background()

	first, err := s.knowledge.Summary(ctx, "Ottawa")
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "ottawa", first.City)
	assert.Equal(t, 24, first.VenueCount)

	second, err := s.knowledge.Summary(ctx, "ottawa")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, 1, s.store.Len())

	s.repo.rows = s.repo.rows[:10]
	third, err := s.knowledge.Summary(ctx, "ottawa")
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.NotEqual(t, first.Fingerprint, third.Fingerprint)
}

func TestKnowledgeRebuild(t *testing.T) {
	s := newStack()
	ctx := context.Background()

	_, err := s.knowledge.Summary(ctx, "ottawa")
	require.NoError(t, err)
	rebuilt, err := s.knowledge.Rebuild(ctx, "ottawa")
	require.NoError(t, err)

	assert.False(t, rebuilt.Cached)
	again, err := s.knowledge.Summary(ctx, "ottawa")
	require.NoError(t, err)
	assert.True(t, again.Cached)
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		want      string
	}{
		{"default", "", "heuristic"},
		{"heuristic", "Heuristic", "heuristic"},
		{"genetic", "genetic", "genetic"},
		{"ga alias", "ga", "genetic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStack()
			plan, err := s.planning.Plan(context.Background(), request_models.PlanRequest{
				City: "ottawa", Vibes: []string{"Romantic"}, Types: []string{"italian"},
				Budget: 90, Stops: 3, Seed: 42, Algorithm: tt.algorithm,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.want, plan.Algorithm)
			assert.Equal(t, 24, plan.Candidates)
			assert.NotEmpty(t, plan.Knowledge)
			require.Len(t, plan.Stops, 3)
			seen := map[string]bool{}
			for i, st := range plan.Stops {
				assert.Equal(t, i+1, st.Order)
				assert.False(t, seen[st.Venue.ID], "venue repeated")
				seen[st.Venue.ID] = true
				assert.LessOrEqual(t, st.Venue.Cost, 90.0)
				assert.Positive(t, st.BudgetTier)
			}
			assert.Greater(t, plan.Fitness, 0.0)
			if tt.want == "genetic" {
				assert.Positive(t, plan.Generations)
			}
		})
	}
}

func TestPlanIsReproducibleWithSeed(t *testing.T) {
	req := request_models.PlanRequest{City: "ottawa", Vibes: []string{"cozy"}, Budget: 60, Stops: 3, Seed: 9, Randomness: 0.6, Algorithm: "genetic"}

	a, err := newStack().planning.Plan(context.Background(), req)
	require.NoError(t, err)
	b, err := newStack().planning.Plan(context.Background(), req)
	require.NoError(t, err)

	var aIDs, bIDs []string
	for i := range a.Stops {
		aIDs = append(aIDs, a.Stops[i].Venue.ID)
		bIDs = append(bIDs, b.Stops[i].Venue.ID)
	}
	assert.Equal(t, aIDs, bIDs)
	assert.Equal(t, a.Fitness, b.Fitness)
}

func TestPlanRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		req     request_models.PlanRequest
		wantErr error
		field   string
	}{
		{"zero budget", request_models.PlanRequest{Budget: 0, Stops: 3}, utils.ErrInvalidConstraints, "Budget"},
		{"too many stops", request_models.PlanRequest{Budget: 50, Stops: 11}, utils.ErrInvalidConstraints, "Stops"},
		{"randomness", request_models.PlanRequest{Budget: 50, Stops: 2, Randomness: 1.5}, utils.ErrInvalidConstraints, "Randomness"},
		{"clock", request_models.PlanRequest{Budget: 50, Stops: 2, Now: "tonight"}, utils.ErrInvalidConstraints, ""},
		{"algorithm", request_models.PlanRequest{Budget: 50, Stops: 2, Algorithm: "annealing"}, utils.ErrUnknownAlgorithm, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStack()
			_, err := s.planning.Plan(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, s.repo.calls, "catalog is not loaded for bad input")
			if tt.field != "" {
				var cerr *model.ConstraintError
				require.True(t, errors.As(err, &cerr))
				assert.Equal(t, tt.field, cerr.Fields[0].Field)
			}
		})
	}
}

func TestPlanEmptyCatalog(t *testing.T) {
	s := newStack()

	plan, err := s.planning.Plan(context.Background(), request_models.PlanRequest{City: "nowhere", Budget: 50, Stops: 3})

	require.NoError(t, err)
	assert.Empty(t, plan.Stops)
	assert.Zero(t, plan.Fitness)
}

func TestPlanCatalogFailure(t *testing.T) {
	s := newStack()
	s.repo.err = errors.New("connection reset")

	_, err := s.planning.Plan(context.Background(), request_models.PlanRequest{City: "ottawa", Budget: 50, Stops: 3})

	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}

func TestPlanHonoursExclusionsAndClock(t *testing.T) {
	s := newStack()

	plan, err := s.planning.Plan(context.Background(), request_models.PlanRequest{
		City: "ottawa", Budget: 100, Stops: 4, Seed: 1,
		Exclude: []string{"ott-00", "ott-01", "ott-02"},
		Now:     "2024-06-07T19:30:00-04:00",
	})
	require.NoError(t, err)

	for _, st := range plan.Stops {
		assert.NotContains(t, []string{"ott-00", "ott-01", "ott-02"}, st.Venue.ID)
	}
}

func TestEvaluationService(t *testing.T) {
	s := newStack()
	svc := NewEvaluationService(s.venues, s.knowledge, testPlannerConfig())

	report, err := svc.Run(context.Background(), request_models.EvaluationRequest{
		City: "ottawa", Seed: 5, Randomness: 0.2, VibeSample: 10,
		Scenarios: "scenarios:\n  - name: quick\n    vibes: [cozy]\n    budget: 50\n    stops: 2\n",
	})
	require.NoError(t, err)

	require.Len(t, report.Scenarios, 1)
	assert.Equal(t, "quick", report.Scenarios[0].Scenario.Name)
	assert.Len(t, report.Summary, 3)
	require.NotNil(t, report.VibeAccuracy)
	assert.Equal(t, 6, report.VibeAccuracy.Total)

	_, err = svc.Run(context.Background(), request_models.EvaluationRequest{Scenarios: "scenarios: ["})
	assert.ErrorIs(t, err, utils.ErrInvalidConstraints)
}
