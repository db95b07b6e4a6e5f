package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/services"
	"github.com/aps-academy/admin-service/internal/utils"
	"github.com/aps-academy/admin-service/internal/validator"
)

type EventHandler struct {
	BaseHandler
	eventService services.EventService
	media        services.MediaService
}

func NewEventHandler(eventService services.EventService, media services.MediaService, logger utils.Logger, production bool) *EventHandler {
	return &EventHandler{
		BaseHandler:  NewBaseHandler(logger, production),
		eventService: eventService,
		media:        media,
	}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req validator.EventRequest
	if !h.bind(c, &req) {
		return
	}
	uploaded, ok := h.uploadMedia(c, h.media, "media", services.FolderEvents)
	if !ok {
		return
	}
	if uploaded != nil {
		req.MediaURL = uploaded.URL
		req.MediaType = uploaded.MediaType
	}

	event, err := h.eventService.Create(c.Request.Context(), &req, actorFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	filters := repositories.EventFilters{
		IsActive:   h.parseBoolQuery(c, "is_active"),
		CanEnroll:  h.parseBoolQuery(c, "can_enroll"),
		LocationID: optionalQuery(c, "location_id"),
		CategoryID: optionalQuery(c, "category_id"),
	}

	events, err := h.eventService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	event, err := h.eventService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// UpdateEvent is partial; a new "media" file replaces the current one.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}
	var req validator.EventUpdateRequest
	if !h.bind(c, &req) {
		return
	}
	uploaded, ok := h.uploadMedia(c, h.media, "media", services.FolderEvents)
	if !ok {
		return
	}
	if uploaded != nil {
		req.MediaURL = &uploaded.URL
		req.MediaType = &uploaded.MediaType
	}

	event, err := h.eventService.Update(c.Request.Context(), id, &req, actorFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) DeactivateEvent(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	event, err := h.eventService.Deactivate(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}
