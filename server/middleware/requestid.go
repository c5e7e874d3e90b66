package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillsenselab/radscribe/logger"
)

// RequestID injects a unique X-Request-Id header into every request/response.
// Each comparison request gets one id; handlers read it from the gin context
// under logger.FieldRequestID and echo it in the response payload.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(logger.FieldRequestID, id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}
