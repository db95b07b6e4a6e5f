package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aps-academy/admin-service/internal/services"
	"github.com/aps-academy/admin-service/internal/utils"
	"github.com/aps-academy/admin-service/internal/validator"
)

type BannerHandler struct {
	BaseHandler
	bannerService services.BannerService
	media         services.MediaService
}

func NewBannerHandler(bannerService services.BannerService, media services.MediaService, logger utils.Logger, production bool) *BannerHandler {
	return &BannerHandler{
		BaseHandler:   NewBaseHandler(logger, production),
		bannerService: bannerService,
		media:         media,
	}
}

// bindBanner reads a JSON or multipart banner; an uploaded "banner" file
// replaces mediaUrl and mediaType.
func (h *BannerHandler) bindBanner(c *gin.Context) (*validator.BannerRequest, bool) {
	var req validator.BannerRequest
	if !h.bind(c, &req) {
		return nil, false
	}
	uploaded, ok := h.uploadMedia(c, h.media, "banner", services.FolderBanners)
	if !ok {
		return nil, false
	}
	if uploaded != nil {
		req.MediaURL = uploaded.URL
		req.MediaType = uploaded.MediaType
	}
	return &req, true
}

func (h *BannerHandler) CreateBanner(c *gin.Context) {
	req, ok := h.bindBanner(c)
	if !ok {
		return
	}

	banner, err := h.bannerService.Create(c.Request.Context(), req, actorFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, banner)
}

func (h *BannerHandler) ListBanners(c *gin.Context) {
	banners, err := h.bannerService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, banners)
}

func (h *BannerHandler) GetBanner(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	banner, err := h.bannerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, banner)
}

func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}
	req, ok := h.bindBanner(c)
	if !ok {
		return
	}

	banner, err := h.bannerService.Update(c.Request.Context(), id, req, actorFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, banner)
}

func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.bannerService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Banner deleted successfully"})
}
