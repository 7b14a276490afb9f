// Package api assembles the gin engine.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"datenight/internal/api/controllers"
	"datenight/internal/config"
	"datenight/pkg/middleware"
	"datenight/pkg/utils"
)

type Controllers struct {
	Plans       *controllers.PlanController
	Venues      *controllers.VenueController
	Knowledge   *controllers.KnowledgeController
	Evaluations *controllers.EvaluationController
	Ratings     *controllers.RatingController
}

func NewRouter(cfg config.ServerConfig, limits config.RateLimitConfig, tokens *utils.TokenManager, ctrl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	RegisterRoutes(r, limits, tokens, ctrl)
	return r
}

func RegisterRoutes(r *gin.Engine, limits config.RateLimitConfig, tokens *utils.TokenManager, ctrl Controllers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/")
	if limits.Enabled {
		public.Use(middleware.RateLimitMiddleware(limits.RPS, limits.Burst))
	}
	public.POST("/plans", ctrl.Plans.CreatePlan)
	public.POST("/plans/ratings", ctrl.Ratings.RatePlan)

	venueGroup := public.Group("/venues")
	venueGroup.GET("", ctrl.Venues.ListVenues)
	venueGroup.GET("/:id", ctrl.Venues.GetVenueById)

	public.GET("/knowledge/:city", ctrl.Knowledge.GetSummary)

	admin := r.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware(tokens), middleware.RoleMiddleware(utils.RoleAdmin))
	admin.POST("/knowledge/:city/rebuild", ctrl.Knowledge.Rebuild)
	admin.POST("/evaluations", ctrl.Evaluations.RunEvaluation)
	admin.POST("/venues/import", ctrl.Venues.ImportVenues)
	admin.GET("/ratings", ctrl.Ratings.ListRatings)
	admin.GET("/ratings/summary", ctrl.Ratings.Summary)
}
