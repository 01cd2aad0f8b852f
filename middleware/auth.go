package middleware

import (
	"net/http"
	"strings"

	"gemtrade/services/session"
	"gemtrade/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionAuthMiddleware validates the Bearer session token and rejects
// tokens that were revoked at sign-out. On success it stores the user ID,
// email and raw token in the request context.
func SessionAuthMiddleware(revoker session.TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or malformed Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		userID, email, _, err := utils.TokenClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), utils.HashToken(tokenString))
		if err != nil {
			utils.GetLogger().Error("auth: revocation check failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}

		c.Set("userID", userID)
		c.Set("email", email)
		c.Set("token", tokenString)
		c.Next()
	}
}
