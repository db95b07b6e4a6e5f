package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/services"
	"github.com/aps-academy/admin-service/internal/utils"
	"github.com/aps-academy/admin-service/internal/validator"
)

// Context keys set by the auth middleware
const (
	ctxUser     = "user"
	ctxUserID   = "user_id"
	ctxUserRole = "user_role"
)

type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// BaseHandler carries what every handler needs to log and report errors.
type BaseHandler struct {
	logger     utils.Logger
	production bool
}

func NewBaseHandler(logger utils.Logger, production bool) BaseHandler {
	return BaseHandler{logger: logger, production: production}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Error(msg, append(args, "error", err)...)
}

// handleServiceError maps service failures onto HTTP responses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: validationErrors.Summary(),
			Details: validationErrors,
		})
		return
	}

	var appErr *utils.AppError
	if errors.As(err, &appErr) && appErr.Kind != utils.KindInternal {
		c.JSON(statusForKind(appErr.Kind), ErrorResponse{Message: appErr.Message})
		return
	}

	h.LogError(c, err, "Unexpected service error")
	resp := ErrorResponse{Message: "Internal server error"}
	if !h.production {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

func statusForKind(kind utils.ErrorKind) int {
	switch kind {
	case utils.KindBadInput:
		return http.StatusBadRequest
	case utils.KindUnauthorized:
		return http.StatusUnauthorized
	case utils.KindForbidden:
		return http.StatusForbidden
	case utils.KindNotFound:
		return http.StatusNotFound
	case utils.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// bindJSON decodes the body into dst, answering 400 on failure.
func (h *BaseHandler) bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// bind decodes JSON or form bodies according to the request content type.
func (h *BaseHandler) bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBind(dst); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return false
	}
	return true
}

func (h *BaseHandler) parseStringIDParam(c *gin.Context, param string) string {
	id := strings.TrimSpace(c.Param(param))
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
	}
	return id
}

func (h *BaseHandler) parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	value, err := strconv.Atoi(c.Query(param))
	if err != nil {
		return defaultValue
	}
	return value
}

// parseBoolQuery returns nil when the parameter is absent or not a boolean.
func (h *BaseHandler) parseBoolQuery(c *gin.Context, param string) *bool {
	value, err := strconv.ParseBool(c.Query(param))
	if err != nil {
		return nil
	}
	return &value
}

func optionalQuery(c *gin.Context, param string) *string {
	value := strings.TrimSpace(c.Query(param))
	if value == "" {
		return nil
	}
	return &value
}

// currentUser is the account resolved by the auth middleware, if any.
func currentUser(c *gin.Context) *models.User {
	if value, ok := c.Get(ctxUser); ok {
		if user, ok := value.(*models.User); ok {
			return user
		}
	}
	return nil
}

func actorFrom(c *gin.Context) *services.Actor {
	user := currentUser(c)
	if user == nil {
		return nil
	}
	return &services.Actor{ID: user.ID, Role: user.Role}
}
