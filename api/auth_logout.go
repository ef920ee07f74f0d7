package api

import (
	"net/http"

	"newshub/news-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthLogout revokes exactly the presented token. Tokens on other
// devices stay valid
func (a *API) AuthLogout(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	tokenID := c.MustGet("tokenID").(string)

	if err := service.RevokeToken(a.DB, tokenID); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Logout failed",
		})

		zap.L().Error("Failed to revoke token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}
