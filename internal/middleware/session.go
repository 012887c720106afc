package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie     = "spa_session"
	ContextSessionID  = "session_id"
	sessionCookieLife = 30 * 24 * 60 * 60
)

// Session assigns each browser an opaque id. Flash messages are keyed on it.
func Session(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sid, sessionCookieLife, "/", "", secure, true)
		}
		c.Set(ContextSessionID, sid)
		c.Next()
	}
}

// SessionID returns the id assigned by Session, or "" outside it.
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
