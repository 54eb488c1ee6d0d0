package middleware

import (
	"log"

	"quicknotes/utils"

	"github.com/gin-gonic/gin"
)

// RequireSession rejects requests without a resolved session user.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			log.Printf("[%s] rejected %s %s: no session", c.GetString(ContextRequestIDKey), c.Request.Method, c.Request.URL.Path)
			utils.TrackError("auth", "no_session")
			utils.Unauthorized(c, "Authentication required")
			return
		}
		c.Next()
	}
}
