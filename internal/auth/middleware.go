package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portalgambit/backend/pkg/jwt"
)

const (
	userIDKey   = "userID"
	identityKey = "identity"
)

// AuthMiddleware requires a valid bearer session token and stores the
// caller's uid and identity in the context.
func AuthMiddleware(codec *jwt.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			unauthorized(c, "Not authenticated")
			return
		}

		id, err := codec.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			unauthorized(c, jwt.ErrUnauthenticated.Error())
			return
		}

		c.Set(userIDKey, id.UID)
		c.Set(identityKey, id)
		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// CurrentUserID returns the uid set by AuthMiddleware.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// CurrentIdentity returns the identity set by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (jwt.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return jwt.Identity{}, false
	}
	id, ok := v.(jwt.Identity)
	return id, ok
}
