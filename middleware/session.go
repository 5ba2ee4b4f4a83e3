package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookieName = "spacetact_session"
	SessionHeader     = "X-Session-Id"
	SessionContextKey = "sessionID"

	sessionCookieMaxAge = 24 * 60 * 60
)

// SessionMiddleware resolves the browsing session for the request. The header
// wins over the cookie so embedded widgets without cookie access still work.
// A missing or malformed id gets a fresh one, which is written back both ways.
func SessionMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if id == "" {
			id, _ = c.Cookie(SessionCookieName)
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookieName, id, sessionCookieMaxAge, "/", "", secure, true)
		c.Header(SessionHeader, id)
		c.Set(SessionContextKey, id)
		c.Next()
	}
}

// SessionID returns the id stored by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionContextKey)
}
