package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"datenight/internal/models/request_models"
	"datenight/internal/services"
	"datenight/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type EvaluationController struct {
	evaluationService services.EvaluationServiceInterface
}

func NewEvaluationController(evaluationService services.EvaluationServiceInterface) *EvaluationController {
	return &EvaluationController{evaluationService: evaluationService}
}

// RunEvaluation benchmarks the planners. ?format=text or ?format=xlsx return the
// rendered report instead of the JSON envelope.
func (e *EvaluationController) RunEvaluation(c *gin.Context) {
	var req request_models.EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "text" && format != "xlsx" {
		utils.RespondError(c, http.StatusBadRequest, "Format must be json, text or xlsx")
		return
	}

	report, err := e.evaluationService.Run(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	switch format {
	case "text":
		if err := report.WriteText(&buf); err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
	case "xlsx":
		if err := report.WriteXLSX(&buf); err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="evaluation.xlsx"`)
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	default:
		utils.RespondSuccess(c, report, "Evaluation finished "+utils.FormatRFC3339(report.GeneratedAt))
	}
}
