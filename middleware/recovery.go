package middleware

import (
	"log"
	"runtime/debug"

	"quicknotes/utils"

	"github.com/gin-gonic/gin"
)

func EnhancedRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[%s] panic serving %s %s: %v\n%s",
					c.GetString(ContextRequestIDKey), c.Request.Method, c.Request.URL.Path, err, debug.Stack())
				utils.TrackError("http", "panic")
				utils.InternalError(c, "Internal server error")
			}
		}()
		c.Next()
	}
}
