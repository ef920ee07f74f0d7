package middleware

import (
	"net/http"
	"strings"

	"newshub/news-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewBearerAuthMiddleware guards the JSON API. The Authorization header
// must carry a token that both verifies and still has a live row, then
// the acting user lands in the context
func NewBearerAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthenticated",
			})
			return
		}

		user, token, err := service.ResolveToken(db, raw)
		if err != nil {
			if err != service.ErrInvalidCredentials {
				zap.L().Error("Failed to resolve bearer token", zap.Error(err), zap.String("requestID", requestID))
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthenticated",
			})
			return
		}

		c.Set("userID", user.ID)
		c.Set("user", user)
		c.Set("tokenID", token.ID)
		c.Next()
	}
}
