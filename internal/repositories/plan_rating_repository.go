package repositories

import (
	"context"

	"gorm.io/gorm"

	"datenight/internal/models/db_models"
)

// AlgorithmRating aggregates stored ratings for one planner.
type AlgorithmRating struct {
	Algorithm string
	Count     int64
	Mean      float64
}

type PlanRatingRepository interface {
	CreateRating(ctx context.Context, rating *db_models.PlanRating) error
	ListRatings(ctx context.Context, page, pageSize int) ([]db_models.PlanRating, error)
	SummaryByAlgorithm(ctx context.Context) ([]AlgorithmRating, error)
}

type planRatingRepository struct {
	db *gorm.DB
}

func NewPlanRatingRepository(db *gorm.DB) PlanRatingRepository {
	return &planRatingRepository{db: db}
}

func (r *planRatingRepository) CreateRating(ctx context.Context, rating *db_models.PlanRating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *planRatingRepository) ListRatings(ctx context.Context, page, pageSize int) ([]db_models.PlanRating, error) {
	var ratings []db_models.PlanRating
	err := r.db.WithContext(ctx).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

func (r *planRatingRepository) SummaryByAlgorithm(ctx context.Context) ([]AlgorithmRating, error) {
	var rows []AlgorithmRating
	err := r.db.WithContext(ctx).
		Model(&db_models.PlanRating{}).
		Select("algorithm, COUNT(*) AS count, AVG(rating) AS mean").
		Group("algorithm").
		Order("algorithm").
		Scan(&rows).Error
	return rows, err
}
