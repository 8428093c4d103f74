package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/startupviet/advisor-api/pkg/errors"
	"github.com/startupviet/advisor-api/pkg/response"
)

// IdentityHeader names the header carrying the caller's subject id on domain
// routes. The id is taken at face value; the gateway in front of the API is
// trusted to have authenticated it.
const IdentityHeader = "X-User-Id"

// ContextUserIDKey is the gin context key storing the caller's subject id.
const ContextUserIDKey = "currentUserID"

// Identity attaches the caller's subject id when the header is present but
// never blocks. Routes that tolerate anonymous callers use this.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(IdentityHeader); id != "" {
			c.Set(ContextUserIDKey, id)
		}
		c.Next()
	}
}

// RequireIdentity rejects requests without the identity header.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(IdentityHeader)
		if id == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthenticated, "Unauthorized"))
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, id)
		c.Next()
	}
}

// UserID returns the caller's subject id from the context, or "".
func UserID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if id, exists := c.Get(ContextUserIDKey); exists {
		if typed, ok := id.(string); ok {
			return typed
		}
	}
	return ""
}
