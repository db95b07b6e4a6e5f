package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aps-academy/admin-service/internal/services"
	"github.com/aps-academy/admin-service/internal/utils"
)

var errStorageDisabled = errors.New("media storage is not configured")

// uploadMedia stores the multipart file in field, if the request carries one.
// A nil result with ok=true means no file was sent.
func (h *BaseHandler) uploadMedia(c *gin.Context, media services.MediaService, field, folder string) (*services.UploadedMedia, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid file upload", Details: err.Error()})
		return nil, false
	}
	if media == nil {
		h.handleServiceError(c, utils.Internal(errStorageDisabled, "File uploads are not available"))
		return nil, false
	}

	file, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid file upload", Details: err.Error()})
		return nil, false
	}
	defer file.Close()

	uploaded, err := media.Upload(c.Request.Context(), folder, fh.Filename, fh.Header.Get("Content-Type"), file)
	if err != nil {
		h.handleServiceError(c, err)
		return nil, false
	}
	return uploaded, true
}
