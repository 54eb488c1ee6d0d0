package middleware

import (
	"quicknotes/model"
	"quicknotes/services"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserKey   = "user"
	ContextUserIDKey = "userID"
)

// SessionMiddleware resolves the cookie to a user when possible. It never
// rejects a request; RequireSession does that for protected routes.
func SessionMiddleware(store *services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := store.CurrentUser(c); user != nil {
			c.Set(ContextUserKey, user)
			c.Set(ContextUserIDKey, user.UserID)
		}
		c.Next()
	}
}

// CurrentUser returns the user set by SessionMiddleware, or nil.
func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*model.User)
	return user
}
