package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/services"
	"github.com/aps-academy/admin-service/internal/utils"
	"github.com/aps-academy/admin-service/internal/validator"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
	media         services.MediaService
}

func NewCourseHandler(courseService services.CourseService, media services.MediaService, logger utils.Logger, production bool) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger, production),
		courseService: courseService,
		media:         media,
	}
}

func (h *CourseHandler) bindCourse(c *gin.Context) (*validator.CourseRequest, bool) {
	var req validator.CourseRequest
	if !h.bind(c, &req) {
		return nil, false
	}
	uploaded, ok := h.uploadMedia(c, h.media, "course", services.FolderCourses)
	if !ok {
		return nil, false
	}
	if uploaded != nil {
		req.MediaURL = uploaded.URL
		req.MediaType = uploaded.MediaType
	}
	return &req, true
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	req, ok := h.bindCourse(c)
	if !ok {
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), req, actorFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	filters := repositories.CourseFilters{
		Title:      strings.TrimSpace(c.Query("title")),
		CategoryID: optionalQuery(c, "category_id"),
		IsActive:   h.parseBoolQuery(c, "is_active"),
		AgeRange:   optionalQuery(c, "age_range"),
	}

	courses, err := h.courseService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}
	req, ok := h.bindCourse(c)
	if !ok {
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), id, req, actorFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Course deleted successfully"})
}
