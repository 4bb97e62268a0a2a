package middleware

import (
	"net/http"
	"strings"

	"glowtheory/utils"

	"github.com/gin-gonic/gin"
)

// ContextUserIDKey is where the authenticated user ID lands on the request
// context.
const ContextUserIDKey = "userID"

// JWTAuthMiddleware guards checkout endpoints: it requires a valid bearer
// access token minted by OTP verification and exposes the subject to
// handlers.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "missing bearer token", "")
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid or expired token", err.Error())
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
