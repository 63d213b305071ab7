package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/girojogos/duoguard/logger"
)

// requestIDHeader is the wire header carrying the request id.
const requestIDHeader = "X-Request-Id"

// RequestID injects a unique request id into every request and response,
// stored under the logger's request-id field key so the logging middleware
// picks it up. An id supplied by the caller is kept.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(logger.FieldRequestID, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
