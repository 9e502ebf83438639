package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vaccination-schedule-api/internal/auth"
)

// UserIDKey is the gin context key the authenticated uid is stored under.
const UserIDKey = "uid"

// Auth requires a valid Bearer token and puts its uid into the context.
// Routes that allow anonymous access simply aren't mounted behind it.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if raw == "" || raw == c.GetHeader("Authorization") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token"})
			return
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bad token"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID reads the authenticated uid set by Auth.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
