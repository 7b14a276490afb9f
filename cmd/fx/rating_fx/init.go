package rating_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"datenight/internal/config"
	"datenight/internal/repositories"
	"datenight/internal/services"
)

var Module = fx.Provide(
	provideRatingRepo, provideRatingService)

func provideRatingRepo(db *gorm.DB) repositories.PlanRatingRepository {
	return repositories.NewPlanRatingRepository(db)
}

func provideRatingService(ratingRepo repositories.PlanRatingRepository, cfg config.PlannerConfig) services.RatingServiceInterface {
	return services.NewRatingService(ratingRepo, cfg)
}
