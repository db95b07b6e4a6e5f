package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/services"
	"github.com/aps-academy/admin-service/internal/utils"
	"github.com/aps-academy/admin-service/internal/validator"
)

type ClassHandler struct {
	BaseHandler
	classService services.ClassService
}

func NewClassHandler(classService services.ClassService, logger utils.Logger, production bool) *ClassHandler {
	return &ClassHandler{
		BaseHandler:  NewBaseHandler(logger, production),
		classService: classService,
	}
}

func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req validator.ClassRequest
	if !h.bindJSON(c, &req) {
		return
	}

	class, err := h.classService.Create(c.Request.Context(), &req, actorFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, class)
}

func (h *ClassHandler) ListClasses(c *gin.Context) {
	filters := repositories.ClassFilters{
		CourseID:   optionalQuery(c, "course_id"),
		LocationID: optionalQuery(c, "location_id"),
		IsActive:   h.parseBoolQuery(c, "is_active"),
	}

	classes, err := h.classService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

func (h *ClassHandler) GetClass(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	class, err := h.classService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}
	var req validator.ClassRequest
	if !h.bindJSON(c, &req) {
		return
	}

	class, err := h.classService.Update(c.Request.Context(), id, &req, actorFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.classService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Class deleted successfully"})
}
