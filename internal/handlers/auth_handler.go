package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aps-academy/admin-service/internal/auth"
	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/services"
	"github.com/aps-academy/admin-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	userService services.UserService
	cookies     auth.CookieOptions
}

func NewAuthHandler(authService services.AuthService, userService services.UserService, cookies auth.CookieOptions,
	logger utils.Logger, production bool) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger, production),
		authService: authService,
		userService: userService,
		cookies:     cookies,
	}
}

type RegisterResponse struct {
	Message  string         `json:"message"`
	User     *models.User   `json:"user"`
	Accounts []*models.User `json:"accounts"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// Register is public sign-up. The body is a single person or an array whose
// first entry is the parent.
func (h *AuthHandler) Register(c *gin.Context) {
	records, ok := h.bindRecords(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Self registration", "records", len(records))

	result, err := h.userService.Register(c.Request.Context(), records, services.FlowSelf, nil)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if result.Session != nil {
		auth.SetSessionCookie(c, string(result.Session.Role), result.Session.Token, h.cookies)
	}
	c.JSON(http.StatusCreated, RegisterResponse{
		Message:  "Registration successful",
		User:     result.Primary,
		Accounts: result.Accounts,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	auth.SetSessionCookie(c, string(result.Session.Role), result.Session.Token, h.cookies)
	c.JSON(http.StatusOK, LoginResponse{Message: "Login successful", User: result.User})
}

// Logout clears the session cookie of the caller's role.
func (h *AuthHandler) Logout(c *gin.Context) {
	if user := currentUser(c); user != nil {
		auth.ClearSessionCookie(c, string(user.Role), h.cookies)
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// bindRecords accepts either one person record or an array of them.
func (h *AuthHandler) bindRecords(c *gin.Context) ([]services.PersonRecord, bool) {
	raw, err := c.GetRawData()
	if err == nil {
		var records []services.PersonRecord
		if records, err = decodeRecords(raw); err == nil {
			return records, true
		}
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Message: "Invalid request payload",
		Details: err.Error(),
	})
	return nil, false
}

func decodeRecords(raw []byte) ([]services.PersonRecord, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("request body is empty")
	}

	if raw[0] == '[' {
		var records []services.PersonRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var record services.PersonRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	return []services.PersonRecord{record}, nil
}
