package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const actorIDKey = "actorID"

// RequireActor extracts the authenticated user id set by the auth layer in
// front of this service. Identity is a collaborator's concern: the id is
// trusted as-is, no credential checks happen here.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid X-User-ID header"})
			return
		}
		c.Set(actorIDKey, id)
		c.Next()
	}
}

func actorID(c *gin.Context) int64 {
	return c.GetInt64(actorIDKey)
}
