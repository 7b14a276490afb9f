package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"datenight/internal/config"
	"datenight/internal/models/db_models"
	"datenight/internal/planner/fitness"
	"datenight/internal/planner/genetic"
	"datenight/internal/planner/heuristic"
)

type fakeVenueRepo struct {
	mu       sync.Mutex
	rows     []db_models.Venue
	err      error
	calls    int
	upserted []db_models.Venue
}

func (f *fakeVenueRepo) ListByCity(_ context.Context, city string, limit int) ([]db_models.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []db_models.Venue
	for _, r := range f.rows {
		if city == "" || strings.EqualFold(r.City, city) {
			out = append(out, r)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeVenueRepo) ListPage(ctx context.Context, city string, page, pageSize int) ([]db_models.Venue, error) {
	all, err := f.ListByCity(ctx, city, len(f.rows))
	if err != nil {
		return nil, err
	}
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, nil
	}
	return all[start:min(start+pageSize, len(all))], nil
}

func (f *fakeVenueRepo) GetByID(_ context.Context, id string) (*db_models.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.rows {
		if f.rows[i].ExternalID == id || f.rows[i].ID.String() == id {
			return &f.rows[i], nil
		}
	}
	return nil, nil
}

func (f *fakeVenueRepo) Upsert(_ context.Context, venues []db_models.Venue) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, venues...)
	return nil
}

func ptr[T any](v T) *T { return &v }

// ottawaRows is a small evening catalog.
func ottawaRows() []db_models.Venue {
	types := []string{"cafe", "italian_restaurant", "bar", "wine_bar", "bakery", "museum", "cocktail_bar", "pub"}
	vibes := []string{"cozy", "romantic", "energetic", ""}
	rows := make([]db_models.Venue, 0, 24)
	for i := 0; i < 24; i++ {
		row := db_models.Venue{
			BaseModel:    db_models.BaseModel{ID: uuid.New()},
			ExternalID:   fmt.Sprintf("ott-%02d", i),
			Name:         fmt.Sprintf("Place %d", i),
			PrimaryType:  types[i%len(types)],
			City:         "Ottawa",
			Cost:         float64(5 + (i*9)%40),
			Rating:       3.6 + float64(i%4)*0.35,
			ReviewCount:  15 + i*11,
			Latitude:     ptr(45.42 + float64(i%5)*0.004),
			Longitude:    ptr(-75.69 + float64(i%3)*0.004),
			OpeningHours: "null",
			Amenities:    `{"serves_wine": true}`,
		}
		if v := vibes[i%len(vibes)]; v != "" {
			row.Vibes = []string{v}
		} else {
			row.Description = "A romantic candlelit room"
		}
		rows = append(rows, row)
	}
	return rows
}

func testCatalogConfig() config.CatalogConfig {
	return config.CatalogConfig{
		BreakerMaxRequests:  1,
		BreakerInterval:     time.Minute,
		BreakerTimeout:      time.Minute,
		BreakerFailureRatio: 0.5,
		BreakerMinRequests:  2,
		MaxVenues:           100,
	}
}

func testPlannerConfig() config.PlannerConfig {
	ga := genetic.DefaultConfig()
	ga.PopulationSize = 20
	ga.Generations = 8
	ga.LocalSearchIterations = 2
	return config.PlannerConfig{
		DefaultAlgorithm: heuristic.Algorithm,
		Timeout:          5 * time.Second,
		Fitness:          fitness.DefaultWeights(),
		Heuristic:        heuristic.DefaultConfig(),
		Genetic:          ga,
	}
}
