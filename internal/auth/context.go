package auth

import "github.com/gin-gonic/gin"

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// GetUserID returns the authenticated user id the middleware put on the
// request context, or "" when the request is unauthenticated.
func GetUserID(c *gin.Context) string {
	if val, ok := c.Get(ContextUserID); ok {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}

func GetRole(c *gin.Context) string {
	if val, ok := c.Get(ContextRole); ok {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}
