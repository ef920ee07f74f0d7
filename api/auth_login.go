package api

import (
	"errors"
	"net/http"

	"newshub/news-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (a *API) AuthLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  gin.H{"body": []string{"invalid request body"}},
		})
		return
	}

	user, err := service.Login(a.DB, a.Argon, data.Email, data.Password)
	if err != nil {
		// One payload for every failure, whether the email exists or not
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid credentials",
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Login failed",
		})

		zap.L().Error("Failed to log in user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Always a freshly minted credential, nothing from before the login
	// boundary is reused
	token, err := service.IssueToken(a.DB, user, "api-token")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Login failed",
		})

		zap.L().Error("Failed to issue token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data": gin.H{
			"user":       user,
			"token":      token,
			"token_type": "Bearer",
		},
	})
}
