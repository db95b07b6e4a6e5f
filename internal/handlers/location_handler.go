package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/services"
	"github.com/aps-academy/admin-service/internal/utils"
	"github.com/aps-academy/admin-service/internal/validator"
)

type LocationHandler struct {
	BaseHandler
	locationService services.LocationService
}

func NewLocationHandler(locationService services.LocationService, logger utils.Logger, production bool) *LocationHandler {
	return &LocationHandler{
		BaseHandler:     NewBaseHandler(logger, production),
		locationService: locationService,
	}
}

func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req validator.LocationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	location, err := h.locationService.Create(c.Request.Context(), &req, actorFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, location)
}

func (h *LocationHandler) ListLocations(c *gin.Context) {
	filters := repositories.LocationFilters{IsActive: h.parseBoolQuery(c, "is_active")}

	locations, err := h.locationService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

// GetLocation includes the location's events.
func (h *LocationHandler) GetLocation(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	location, err := h.locationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}
	var req validator.LocationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	location, err := h.locationService.Update(c.Request.Context(), id, &req, actorFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

func (h *LocationHandler) DeactivateLocation(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	location, err := h.locationService.Deactivate(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}
