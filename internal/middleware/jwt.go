package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/insign-app/backend/internal/auth"
	"github.com/insign-app/backend/pkg/response"
)

const (
	// ContextUserID is the key for the authenticated user id in gin context.
	ContextUserID = "user_id"
	// ContextUserRole is the key for the authenticated user role in gin context.
	ContextUserRole = "user_role"
)

// JWT returns a middleware that validates the bearer token and sets the
// caller identity in context. A missing Bearer prefix or any verification
// failure fails closed with 401; decode errors never reach the client.
func JWT(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		ident, err := jwtService.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ContextUserID, ident.UserID)
		c.Set(ContextUserRole, ident.Role)
		c.Next()
	}
}

// UserID returns the authenticated user id set by the JWT middleware.
func UserID(c *gin.Context) int64 {
	return c.MustGet(ContextUserID).(int64)
}
