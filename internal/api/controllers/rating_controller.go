package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"datenight/internal/models/request_models"
	"datenight/internal/services"
	"datenight/pkg/utils"
)

type RatingController struct {
	ratingService services.RatingServiceInterface
}

func NewRatingController(ratingService services.RatingServiceInterface) *RatingController {
	return &RatingController{ratingService: ratingService}
}

func (r *RatingController) RatePlan(c *gin.Context) {
	var req request_models.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	rating, err := r.ratingService.RatePlan(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, rating, "Thanks for rating your date")
}

func (r *RatingController) ListRatings(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	ratings, err := r.ratingService.ListRatings(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, ratings, "Ratings fetched successfully")
}

func (r *RatingController) Summary(c *gin.Context) {
	summary, err := r.ratingService.Summary(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, summary, "Rating summary fetched successfully")
}
