package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/girojogos/duoguard/identity"
)

// Identity returns a Gin middleware that resolves the caller's identity
// from the Authorization header and stores it in the request context.
// Requests with no usable credential continue as anonymous; the gateway
// decides what anonymous callers may do.
func Identity(resolver *identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := resolver.Resolve(ctx, c.GetHeader("Authorization"))
		c.Request = c.Request.WithContext(identity.NewContext(ctx, id))
		c.Next()
	}
}
