package middleware

import (
	"net/http"
	"strings"

	"fotostudio-backend/services"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is where RequireAuth stores the authenticated user.
const ContextUserKey = "user"

// RequireAuth validates the Bearer token and injects the user into the
// context. Every admin-only route runs behind it; a missing or invalid token
// fails with 401 before any handler executes.
func RequireAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		user, err := auth.Authenticate(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// BearerToken extracts the raw token from the Authorization header, if any.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}
