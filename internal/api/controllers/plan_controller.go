package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"datenight/internal/models/request_models"
	"datenight/internal/services"
	"datenight/pkg/utils"
)

type PlanController struct {
	planningService services.PlanningServiceInterface
}

func NewPlanController(planningService services.PlanningServiceInterface) *PlanController {
	return &PlanController{planningService: planningService}
}

func (p *PlanController) CreatePlan(c *gin.Context) {
	var req request_models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	plan, err := p.planningService.Plan(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	message := "Plan created successfully"
	if len(plan.Stops) < req.Stops {
		message = "Not enough matching venues for a full plan"
	}
	utils.RespondSuccess(c, plan, message)
}
