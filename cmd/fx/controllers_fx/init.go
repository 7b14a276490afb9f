package controllers_fx

import (
	"go.uber.org/fx"

	"datenight/internal/api"
	"datenight/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewPlanController),
	fx.Provide(controllers.NewVenueController),
	fx.Provide(controllers.NewKnowledgeController),
	fx.Provide(controllers.NewEvaluationController),
	fx.Provide(controllers.NewRatingController),
	fx.Provide(provideControllers))

func provideControllers(
	plans *controllers.PlanController,
	venues *controllers.VenueController,
	knowledge *controllers.KnowledgeController,
	evaluations *controllers.EvaluationController,
	ratings *controllers.RatingController,
) api.Controllers {
	return api.Controllers{
		Plans:       plans,
		Venues:      venues,
		Knowledge:   knowledge,
		Evaluations: evaluations,
		Ratings:     ratings,
	}
}
