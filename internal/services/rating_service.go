package services

import (
	"context"
	"strconv"

	"datenight/internal/config"
	"datenight/internal/logging"
	"datenight/internal/metrics"
	"datenight/internal/models/db_models"
	"datenight/internal/models/request_models"
	"datenight/internal/models/response_models"
	"datenight/internal/planner/evaluation"
	"datenight/internal/repositories"
	"datenight/pkg/utils"
)

type RatingServiceInterface interface {
	RatePlan(ctx context.Context, userID string, req request_models.RatingRequest) (response_models.Rating, error)
	ListRatings(ctx context.Context, page, pageSize int) ([]response_models.Rating, error)
	Summary(ctx context.Context) ([]response_models.RatingSummary, error)
}

type RatingService struct {
	ratingRepo       repositories.PlanRatingRepository
	defaultAlgorithm string
}

func NewRatingService(ratingRepo repositories.PlanRatingRepository, cfg config.PlannerConfig) RatingServiceInterface {
	return &RatingService{ratingRepo: ratingRepo, defaultAlgorithm: cfg.DefaultAlgorithm}
}

func (s *RatingService) RatePlan(ctx context.Context, userID string, req request_models.RatingRequest) (response_models.Rating, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return response_models.Rating{}, utils.ErrInvalidRating
	}
	algorithm, err := resolveAlgorithm(req.Algorithm, s.defaultAlgorithm)
	if err != nil {
		return response_models.Rating{}, err
	}

	row := &db_models.PlanRating{
		UserID:    userID,
		Algorithm: algorithm,
		City:      normalizeCity(req.City),
		Knowledge: req.Knowledge,
		VenueIDs:  req.VenueIDs,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.ratingRepo.CreateRating(ctx, row); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("error saving plan rating")
		return response_models.Rating{}, utils.ErrDatabaseError
	}

	metrics.PlanRatings.WithLabelValues(algorithm, strconv.Itoa(req.Rating)).Inc()
	return ratingFrom(row), nil
}

func (s *RatingService) ListRatings(ctx context.Context, page, pageSize int) ([]response_models.Rating, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	rows, err := s.ratingRepo.ListRatings(ctx, page, pageSize)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("error listing plan ratings")
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.Rating, len(rows))
	for i := range rows {
		out[i] = ratingFrom(&rows[i])
	}
	return out, nil
}

func (s *RatingService) Summary(ctx context.Context) ([]response_models.RatingSummary, error) {
	rows, err := s.ratingRepo.SummaryByAlgorithm(ctx)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("error summarizing plan ratings")
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.RatingSummary, len(rows))
	for i, r := range rows {
		out[i] = response_models.RatingSummary{
			Algorithm: r.Algorithm,
			Count:     r.Count,
			Mean:      r.Mean,
			Label:     evaluation.RatingLabel(r.Mean),
		}
	}
	return out, nil
}

func ratingFrom(row *db_models.PlanRating) response_models.Rating {
	return response_models.Rating{
		ID:        row.ID.String(),
		Algorithm: row.Algorithm,
		City:      row.City,
		VenueIDs:  row.VenueIDs,
		Rating:    row.Rating,
		Label:     evaluation.RatingScale[row.Rating],
		Comment:   row.Comment,
		CreatedAt: row.CreatedTime(),
	}
}
