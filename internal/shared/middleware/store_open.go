package middleware

import (
	"github.com/gin-gonic/gin"

	"academy-backend/internal/shared/response"
)

// StoreOpen short-circuits shop routes with 503 while the store is closed
func StoreOpen(open bool, closedMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !open {
			response.ServiceUnavailable(c, closedMessage)
			c.Abort()
			return
		}
		c.Next()
	}
}
