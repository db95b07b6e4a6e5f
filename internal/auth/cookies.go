package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const cookiePrefix = "token_"

// SessionCookieNames lists the cookies checked for a session, in order.
var SessionCookieNames = []string{
	"token_admin",
	"token_staff",
	"token_student",
	"token_parent",
	"token_tutor",
	"token_adult",
}

// CookieNameForRole returns the session cookie that carries tokens for role.
func CookieNameForRole(role string) string {
	return cookiePrefix + strings.ToLower(role)
}

// CookieOptions control how session cookies are written.
type CookieOptions struct {
	MaxAge time.Duration
	Secure bool
}

func SetSessionCookie(c *gin.Context, role, token string, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieNameForRole(role), token, int(opts.MaxAge.Seconds()), "/", "", opts.Secure, true)
}

func ClearSessionCookie(c *gin.Context, role string, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieNameForRole(role), "", -1, "/", "", opts.Secure, true)
}

// TokenFromRequest returns the first session token found in the role cookies,
// falling back to an Authorization bearer header.
func TokenFromRequest(c *gin.Context) string {
	for _, name := range SessionCookieNames {
		if value, err := c.Cookie(name); err == nil && value != "" {
			return value
		}
	}

	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
