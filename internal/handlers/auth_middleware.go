package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aps-academy/admin-service/internal/auth"
	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/services"
	"github.com/aps-academy/admin-service/internal/utils"
)

// AuthMiddleware resolves the session cookie or bearer token to an account.
type AuthMiddleware struct {
	BaseHandler
	auth services.AuthService
}

func NewAuthMiddleware(authService services.AuthService, logger utils.Logger, production bool) *AuthMiddleware {
	return &AuthMiddleware{
		BaseHandler: NewBaseHandler(logger, production),
		auth:        authService,
	}
}

// Authenticate rejects requests without an active session.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.auth.Authenticate(c.Request.Context(), auth.TokenFromRequest(c))
		if err != nil {
			m.handleServiceError(c, err)
			c.Abort()
			return
		}

		c.Set(ctxUser, user)
		c.Set(ctxUserID, user.ID)
		c.Set(ctxUserRole, user.Role)
		c.Next()
	}
}

// RequireRoles lets through only the listed roles. It must run after Authenticate.
func (m *AuthMiddleware) RequireRoles(message string, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: services.ErrNoToken.Message})
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Message: message})
	}
}

func (m *AuthMiddleware) AdminOnly() gin.HandlerFunc {
	return m.RequireRoles(services.ErrAdminRequired.Message, models.RoleAdmin)
}

func (m *AuthMiddleware) AdminOrParent() gin.HandlerFunc {
	return m.RequireRoles(services.ErrAdminOrParent.Message, models.RoleAdmin, models.RoleParent)
}
