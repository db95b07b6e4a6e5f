package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aps-academy/admin-service/internal/services"
	"github.com/aps-academy/admin-service/internal/utils"
)

type TestimonialHandler struct {
	BaseHandler
	testimonialService services.TestimonialService
}

func NewTestimonialHandler(testimonialService services.TestimonialService, logger utils.Logger, production bool) *TestimonialHandler {
	return &TestimonialHandler{
		BaseHandler:        NewBaseHandler(logger, production),
		testimonialService: testimonialService,
	}
}

func (h *TestimonialHandler) ListTestimonials(c *gin.Context) {
	reviews, err := h.testimonialService.GetReviews(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// SyncTestimonials runs the review sync immediately.
func (h *TestimonialHandler) SyncTestimonials(c *gin.Context) {
	h.LogRequest(c, "Manual review sync", "actor_id", actorFrom(c).LogID())

	result, err := h.testimonialService.SyncReviews(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
