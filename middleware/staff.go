package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireStoreManager gates staff endpoints. Must run after RequireAuth.
func RequireStoreManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authentication required",
			})
			return
		}
		if !user.CanManageStore() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Admin access required",
			})
			return
		}
		c.Next()
	}
}
