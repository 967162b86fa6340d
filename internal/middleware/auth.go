package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/auth"
	"taskmanager/internal/flash"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "tm_session"

	ctxUserID   = "user_id"
	ctxUsername = "username"
)

// Identify parses the session cookie when present and puts the caller into
// the gin context. It never blocks: pages that render differently for
// guests (landing, user list) still need to know who is asking.
func Identify(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookie)
		if err == nil && tokenStr != "" {
			if claims, err := sessions.Parse(tokenStr); err == nil {
				c.Set(ctxUserID, claims.UserID)
				c.Set(ctxUsername, claims.Username)
			}
		}
		c.Next()
	}
}

// RequireAuth gates protected pages. An unauthenticated caller gets a 302
// to the login page with an error flash, not a 401: this is an HTML
// surface and the recovery action is "log in".
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ctxUserID); !ok {
			flash.Error(c, "You are not authorized! Please log in")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller's id, ok=false for guests.
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func CurrentUsername(c *gin.Context) string {
	v, exists := c.Get(ctxUsername)
	if !exists {
		return ""
	}
	name, _ := v.(string)
	return name
}

// SetSessionCookie installs the signed token for maxAge seconds.
func SetSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(SessionCookie, token, maxAge, "/", "", false, true)
}

// ClearSessionCookie logs the caller out at the transport level.
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
