package controllers

import (
	"github.com/gin-gonic/gin"

	"datenight/internal/services"
	"datenight/pkg/utils"
)

type KnowledgeController struct {
	knowledgeService services.KnowledgeServiceInterface
}

func NewKnowledgeController(knowledgeService services.KnowledgeServiceInterface) *KnowledgeController {
	return &KnowledgeController{knowledgeService: knowledgeService}
}

func (k *KnowledgeController) GetSummary(c *gin.Context) {
	summary, err := k.knowledgeService.Summary(c.Request.Context(), c.Param("city"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, summary, "Knowledge summary fetched successfully")
}

func (k *KnowledgeController) Rebuild(c *gin.Context) {
	summary, err := k.knowledgeService.Rebuild(c.Request.Context(), c.Param("city"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, summary, "Knowledge rebuilt successfully")
}
