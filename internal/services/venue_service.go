package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"datenight/internal/config"
	"datenight/internal/logging"
	"datenight/internal/metrics"
	"datenight/internal/models/db_models"
	"datenight/internal/models/response_models"
	"datenight/internal/planner/knowledge"
	"datenight/internal/planner/model"
	"datenight/internal/planner/scoring"
	"datenight/internal/repositories"
	"datenight/pkg/utils"
)

type VenueServiceInterface interface {
	// LoadCatalog returns the planner view of a city's venues.
	LoadCatalog(ctx context.Context, city string) ([]model.Venue, error)
	GetVenue(ctx context.Context, id string) (response_models.Venue, error)
	ListVenues(ctx context.Context, city string, page, pageSize int) ([]response_models.Venue, error)
	ImportVenues(ctx context.Context, venues []model.Venue) (int, error)
}

const catalogBreakerName = "catalog"

type VenueService struct {
	venueRepo repositories.VenueRepository
	breaker   *gobreaker.CircuitBreaker[[]db_models.Venue]
	maxVenues int
	// labels venues stored without vibes
	inferKB *knowledge.KnowledgeBase
}

func NewVenueService(venueRepo repositories.VenueRepository, cfg config.CatalogConfig) VenueServiceInterface {
	metrics.CircuitBreakerState.WithLabelValues(catalogBreakerName).Set(0)

	breaker := gobreaker.NewCircuitBreaker[[]db_models.Venue](gobreaker.Settings{
		Name:        catalogBreakerName,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.BreakerFailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
		},
		// a caller giving up is not a database failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
	})

	return &VenueService{
		venueRepo: venueRepo,
		breaker:   breaker,
		maxVenues: cfg.MaxVenues,
		inferKB:   knowledge.Default(),
	}
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func (s *VenueService) LoadCatalog(ctx context.Context, city string) ([]model.Venue, error) {
	rows, err := s.breaker.Execute(func() ([]db_models.Venue, error) {
		return s.venueRepo.ListByCity(ctx, city, s.maxVenues)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CatalogLoadErrors.WithLabelValues("breaker_open").Inc()
			return nil, fmt.Errorf("%w: %w", utils.ErrCatalogUnavailable, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		metrics.CatalogLoadErrors.WithLabelValues("database").Inc()
		logging.Ctx(ctx).Error().Err(err).Str("city", city).Msg("error loading catalog")
		return nil, fmt.Errorf("%w: %w", utils.ErrDatabaseError, err)
	}

	venues := make([]model.Venue, 0, len(rows))
	for i := range rows {
		venues = append(venues, s.toModel(ctx, &rows[i]))
	}
	logging.Ctx(ctx).Debug().Str("city", city).Int("venues", len(venues)).Msg("catalog loaded")
	return venues, nil
}

func (s *VenueService) GetVenue(ctx context.Context, id string) (response_models.Venue, error) {
	row, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("venue_id", id).Msg("error fetching venue")
		return response_models.Venue{}, utils.ErrDatabaseError
	}
	if row == nil {
		return response_models.Venue{}, utils.ErrVenueNotFound
	}
	return response_models.VenueFrom(s.toModel(ctx, row)), nil
}

func (s *VenueService) ListVenues(ctx context.Context, city string, page, pageSize int) ([]response_models.Venue, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	rows, err := s.venueRepo.ListPage(ctx, city, page, pageSize)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("error listing venues")
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.Venue, 0, len(rows))
	for i := range rows {
		out = append(out, response_models.VenueFrom(s.toModel(ctx, &rows[i])))
	}
	return out, nil
}

func (s *VenueService) ImportVenues(ctx context.Context, venues []model.Venue) (int, error) {
	rows := make([]db_models.Venue, 0, len(venues))
	seen := make(map[string]int, len(venues))
	for i := range venues {
		id := strings.TrimSpace(venues[i].ID)
		if id == "" {
			return 0, fmt.Errorf("%w: venue %d has no id", utils.ErrInvalidConstraints, i)
		}
		if first, dup := seen[id]; dup {
			return 0, fmt.Errorf("%w: venue %d repeats the id %q of venue %d", utils.ErrInvalidConstraints, i, id, first)
		}
		seen[id] = i
		row, err := toRow(&venues[i])
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
	}

	if err := s.venueRepo.Upsert(ctx, rows); err != nil {
		logging.Ctx(ctx).Error().Err(err).Int("venues", len(rows)).Msg("error importing venues")
		return 0, utils.ErrDatabaseError
	}
	logging.Ctx(ctx).Info().Int("venues", len(rows)).Msg("venues imported")
	return len(rows), nil
}

// toModel maps a row to the planner view. The external id is the venue id the planner
// and the API expose. Malformed json columns are logged and dropped.
func (s *VenueService) toModel(ctx context.Context, row *db_models.Venue) model.Venue {
	v := model.Venue{
		ID:          row.ExternalID,
		Name:        row.Name,
		PrimaryType: row.PrimaryType,
		Types:       []string(row.Types),
		Cost:        row.Cost,
		Rating:      row.Rating,
		ReviewCount: row.ReviewCount,
		Description: row.Description,
		Review:      row.Review,
		Vibes:       normalizeTags(row.Vibes),
		Indoor:      row.Indoor,
		City:        row.City,
		Address:     row.Address,
	}
	if v.ID == "" {
		v.ID = row.ID.String()
	}
	if row.Latitude != nil && row.Longitude != nil {
		v.Location = &model.LatLng{Lat: *row.Latitude, Lng: *row.Longitude}
	}
	if hours := strings.TrimSpace(row.OpeningHours); hours != "" && hours != "null" {
		var oh model.OpeningHours
		if err := json.Unmarshal([]byte(hours), &oh); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("venue_id", v.ID).Msg("ignoring malformed opening hours")
		} else {
			v.Hours = &oh
		}
	}
	if amenities := strings.TrimSpace(row.Amenities); amenities != "" && amenities != "null" {
		if err := json.Unmarshal([]byte(amenities), &v.Amenities); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("venue_id", v.ID).Msg("ignoring malformed amenities")
		}
	}
	if len(v.Vibes) == 0 {
		v.Vibes = scoring.InferVibes(s.inferKB, v.Description+" "+v.Review, v.PrimaryType)
	}
	return v
}

func toRow(v *model.Venue) (db_models.Venue, error) {
	row := db_models.Venue{
		ExternalID:   v.ID,
		Name:         v.Name,
		PrimaryType:  v.PrimaryType,
		Types:        v.Types,
		City:         v.City,
		Address:      v.Address,
		Cost:         v.Cost,
		Rating:       v.Rating,
		ReviewCount:  v.ReviewCount,
		Description:  v.Description,
		Review:       v.Review,
		Vibes:        normalizeTags(v.Vibes),
		Indoor:       v.Indoor,
		OpeningHours: "null",
	}
	if v.Location != nil {
		lat, lng := v.Location.Lat, v.Location.Lng
		row.Latitude, row.Longitude = &lat, &lng
	}
	if v.Hours != nil {
		raw, err := json.Marshal(v.Hours)
		if err != nil {
			return db_models.Venue{}, fmt.Errorf("encode hours for %s: %w", v.ID, err)
		}
		row.OpeningHours = string(raw)
	}
	raw, err := json.Marshal(v.Amenities)
	if err != nil {
		return db_models.Venue{}, fmt.Errorf("encode amenities for %s: %w", v.ID, err)
	}
	row.Amenities = string(raw)
	return row, nil
}

func normalizeTags(tags []string) []string {
	return model.ParseTags(strings.Join(tags, ","))
}
