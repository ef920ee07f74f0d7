package api

import (
	"errors"
	"net/http"

	"newshub/news-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Name                 string `json:"name" form:"name"`
	Email                string `json:"email" form:"email"`
	Password             string `json:"password" form:"password"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation"`
}

func (a *API) AuthRegister(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  gin.H{"body": []string{"invalid request body"}},
		})
		return
	}

	user, err := service.Register(a.DB, a.Argon, data.Name, data.Email, data.Password, data.PasswordConfirmation, false)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "Validation failed",
				"errors":  verr.Fields,
			})
			return
		}

		if errors.Is(err, service.ErrEmailTaken) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "Validation failed",
				"errors":  gin.H{"email": []string{"This email is already registered"}},
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Registration failed",
		})

		zap.L().Error("Failed to register user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	token, err := service.IssueToken(a.DB, user, "api-token")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Registration failed",
		})

		zap.L().Error("Failed to issue token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"data": gin.H{
			"user":       user,
			"token":      token,
			"token_type": "Bearer",
		},
	})
}
