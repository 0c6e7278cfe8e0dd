package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dmc0125/task-app/internal/session"
)

// context key for the authenticated user id
const userIDKey = "authUserID"

// UserID returns the authenticated user id set by RequireAuth. Only valid
// inside handlers behind that middleware.
func UserID(c *gin.Context) int64 {
	v, _ := c.Get(userIDKey)
	id, _ := v.(int64)
	return id
}

// RequireAuth verifies the signed session cookie and exposes the resolved
// user id on the request context. A missing cookie or a credential that
// fails verification yields a structured 401; this is a pure synchronous
// check with no I/O.
func RequireAuth(codec *session.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Request.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			abortUnauthenticated(c)
			return
		}

		userID, err := codec.Verify(cookie.Value)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   "Not authenticated",
	})
}
