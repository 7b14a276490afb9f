package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"datenight/internal/models/response_models"
	"datenight/internal/planner/evaluation"
	"datenight/internal/services"
	"datenight/pkg/utils"
)

type VenueController struct {
	venueService services.VenueServiceInterface
}

func NewVenueController(venueService services.VenueServiceInterface) *VenueController {
	return &VenueController{venueService: venueService}
}

func (v *VenueController) GetVenueById(c *gin.Context) {
	venueId := c.Param("id")
	if venueId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Venue ID is required")
		return
	}

	venue, err := v.venueService.GetVenue(c.Request.Context(), venueId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, venue, "Venue fetched successfully")
}

func (v *VenueController) ListVenues(c *gin.Context) {
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

	venues, err := v.venueService.ListVenues(c.Request.Context(), c.Query("city"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, venues, "Venues fetched successfully")
}

// ImportVenues accepts a JSON array of catalog venues.
func (v *VenueController) ImportVenues(c *gin.Context) {
	venues, err := evaluation.DecodeCatalog(c.Request.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid venue list: "+err.Error())
		return
	}

	n, err := v.venueService.ImportVenues(c.Request.Context(), venues)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.ImportResult{Imported: n}, "Venues imported successfully")
}
