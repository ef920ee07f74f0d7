package api

import (
	"net/http"

	"newshub/news-api/model"
	"newshub/news-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthRefreshToken issues an additional bearer token for the current
// user. The presented one keeps working until it's revoked or expires
func (a *API) AuthRefreshToken(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	token, err := service.IssueToken(a.DB, user, "api-token")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to refresh token",
		})

		zap.L().Error("Failed to issue token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token refreshed successfully",
		"data": gin.H{
			"token":      token,
			"token_type": "Bearer",
		},
	})
}
