package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireSelf rejects requests whose path parameter param is not the
// caller's own uid. It must be used AFTER AuthMiddleware.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := CurrentUserID(c)
		if userID == "" {
			// AuthMiddleware did not run
			unauthorized(c, "Not authenticated")
			return
		}

		if c.Param(param) != userID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not authorized to modify another user's data"})
			return
		}

		c.Next()
	}
}
