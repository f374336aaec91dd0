// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// Cookie names shared by the auth handlers and AdminRequired.
const (
	SessionCookie = "sessionId"
	AuthCookie    = "auth"
)

// SetLoginCookies writes whichever credential the login produced.
func SetLoginCookies(c *gin.Context, result *services.LoginResult, ttl time.Duration, secure bool) {
	maxAge := int(ttl / time.Second)
	c.SetSameSite(http.SameSiteStrictMode)
	if result.SessionID != "" {
		c.SetCookie(SessionCookie, result.SessionID, maxAge, "/", "", secure, true)
		return
	}
	c.SetCookie(AuthCookie, result.Token, maxAge, "/", "", secure, true)
}

// ClearLoginCookies expires both credential cookies.
func ClearLoginCookies(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
	c.SetCookie(AuthCookie, "", -1, "/", "", secure, true)
}

// ResolveSession checks the request cookies and clears a stale session
// cookie.
func ResolveSession(c *gin.Context, auth *services.AuthService, secure bool) services.SessionCheck {
	sessionID, _ := c.Cookie(SessionCookie)
	token, _ := c.Cookie(AuthCookie)

	check := auth.Session(c.Request.Context(), sessionID, token)
	if check.StaleSession {
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
	}
	return check
}

// AdminRequired rejects requests without an active admin login.
func AdminRequired(auth *services.AuthService, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		check := ResolveSession(c, auth, secure)
		if !check.IsAuthenticated {
			lang := utils.GetLangFromContext(c)
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", i18n.T(lang, i18n.KeyAuthRequired), nil)
			c.Abort()
			return
		}

		c.Set("username", check.Username)
		c.Next()
	}
}
