package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/services"
	"github.com/aps-academy/admin-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type UserHandler struct {
	BaseHandler
	userService services.UserService
	auth        *AuthHandler
}

func NewUserHandler(userService services.UserService, authHandler *AuthHandler, logger utils.Logger, production bool) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger, production),
		userService: userService,
		auth:        authHandler,
	}
}

// CreateFamily lets an administrator register a single adult or a parent
// with children.
func (h *UserHandler) CreateFamily(c *gin.Context) {
	h.register(c, services.FlowAdmin)
}

func (h *UserHandler) CreateStaff(c *gin.Context) {
	h.register(c, services.FlowAdminStaff)
}

func (h *UserHandler) register(c *gin.Context, flow services.RegistrationFlow) {
	records, ok := h.auth.bindRecords(c)
	if !ok {
		return
	}

	actor := actorFrom(c)
	h.LogRequest(c, "Admin registration", "flow", flow, "records", len(records), "actor_id", actor.LogID())

	result, err := h.userService.Register(c.Request.Context(), records, flow, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		Message:  "Users created successfully",
		User:     result.Primary,
		Accounts: result.Accounts,
	})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	filters, ok := h.parseUserFilters(c)
	if !ok {
		return
	}

	list, err := h.userService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ExportUsers streams the filtered users as an XLSX attachment.
func (h *UserHandler) ExportUsers(c *gin.Context) {
	filters, ok := h.parseUserFilters(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.userService.Export(c.Request.Context(), filters, &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="users.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GetUser is open to administrators, the account itself and its guardian.
func (h *UserHandler) GetUser(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	caller := currentUser(c)
	if caller.Role != models.RoleAdmin && caller.ID != user.ID &&
		(user.GuardianID == nil || *user.GuardianID != caller.ID) {
		h.handleServiceError(c, services.ErrNotAccountHolder)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, &req, actorFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeactivateUser(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	user, err := h.userService.Deactivate(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword is self service; administrators may also reset others.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	actor := actorFrom(c)
	if !actor.IsAdmin() && actor.ID != id {
		h.handleServiceError(c, services.ErrNotAccountHolder)
		return
	}

	var req services.ChangePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), id, &req, actor); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Password updated successfully"})
}

func (h *UserHandler) GetFamily(c *gin.Context) {
	id := h.parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	actor := actorFrom(c)
	if !actor.IsAdmin() && actor.ID != id {
		h.handleServiceError(c, services.ErrNotAccountHolder)
		return
	}

	family, err := h.userService.GetFamily(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, family)
}

// UpsertMyChildren adds or updates the calling parent's children.
func (h *UserHandler) UpsertMyChildren(c *gin.Context) {
	records, ok := h.auth.bindRecords(c)
	if !ok {
		return
	}

	actor := actorFrom(c)
	result, err := h.userService.UpsertChildren(c.Request.Context(), actor.ID, records, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *UserHandler) parseUserFilters(c *gin.Context) (repositories.UserFilters, bool) {
	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", services.DefaultUserPageSize)
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = services.DefaultUserPageSize
	}
	size = min(size, services.MaxUserPageSize)

	filters := repositories.UserFilters{
		IsActive:   h.parseBoolQuery(c, "is_active"),
		GuardianID: optionalQuery(c, "guardian_id"),
		Search:     strings.TrimSpace(c.Query("search")),
		Limit:      size,
		Offset:     (page - 1) * size,
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if raw := c.Query("role"); raw != "" {
		role, err := models.ParseUserRole(raw)
		if err != nil {
			h.handleServiceError(c, services.ErrInvalidRole)
			return filters, false
		}
		filters.Role = &role
	}
	return filters, true
}
