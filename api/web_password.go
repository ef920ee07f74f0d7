package api

import (
	"errors"
	"net/http"

	"newshub/news-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Always the same answer, whether or not the address has an account
const resetRequestedMsg = "We have emailed your password reset link."

type forgotPasswordBody struct {
	Email string `form:"email" json:"email"`
}

func (a *API) WebForgotPassword(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data forgotPasswordBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  gin.H{"email": []string{"a valid email is required"}},
		})
		return
	}

	if err := service.RequestPasswordReset(a.DB, data.Email); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "Validation failed",
				"errors":  verr.Fields,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "An error occurred. Please try again.",
		})

		zap.L().Error("Failed to create password reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": resetRequestedMsg,
	})
}

// WebResetPasswordForm is the landing point of the emailed link. With
// no template layer the token is handed back for the client to submit
func (a *API) WebResetPasswordForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"token": c.Param("token")},
	})
}

type resetPasswordBody struct {
	Token                string `form:"token" json:"token"`
	Email                string `form:"email" json:"email"`
	Password             string `form:"password" json:"password"`
	PasswordConfirmation string `form:"password_confirmation" json:"password_confirmation"`
}

func (a *API) WebResetPassword(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data resetPasswordBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  gin.H{"body": []string{"invalid request body"}},
		})
		return
	}

	err := service.ResetPassword(a.DB, a.Argon, data.Email, data.Token, data.Password, data.PasswordConfirmation)
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

		if errors.Is(err, service.ErrResetInvalid) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "This password reset token is invalid.",
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "An error occurred. Please try again.",
		})

		zap.L().Error("Failed to reset password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}
