package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"datenight/internal/logging"
	"datenight/internal/planner/model"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func respondErrorData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

// HandleServiceError maps service errors onto HTTP responses.
func HandleServiceError(c *gin.Context, err error) {
	var cerr *model.ConstraintError

	switch {
	case errors.As(err, &cerr):
		respondErrorData(c, http.StatusBadRequest, cerr.Error(), cerr.Fields)
	case errors.Is(err, ErrInvalidConstraints):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnknownAlgorithm):
		RespondError(c, http.StatusBadRequest, "Algorithm must be heuristic or genetic")
	case errors.Is(err, ErrInvalidRating):
		RespondError(c, http.StatusBadRequest, "Rating must be between 1 and 5")
	case errors.Is(err, ErrVenueNotFound):
		RespondError(c, http.StatusNotFound, "Venue not found")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrCatalogUnavailable):
		logging.Ctx(c.Request.Context()).Warn().Err(err).Msg("catalog unavailable")
		RespondError(c, http.StatusServiceUnavailable, "Venue catalog temporarily unavailable")
	case errors.Is(err, ErrPlanningTimeout):
		RespondError(c, http.StatusGatewayTimeout, "Planning took too long")
	case errors.Is(err, ErrDatabaseError):
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("database error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("unhandled service error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
