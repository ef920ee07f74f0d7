package api

import (
	"errors"
	"net/http"

	"newshub/news-api/middleware"
	"newshub/news-api/model"
	"newshub/news-api/service"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// CSRFCookie carries the anti-forgery token for the web surface
const CSRFCookie = "csrf_token"

// One wording for every web login failure, same as the API contract
const webLoginFailedMsg = "These credentials do not match our records."

func sslEnabled() bool {
	return viper.GetBool("host.ssl.enabled")
}

// startSession discards any session the browser was carrying and
// begins a fresh one. The old id never crosses the login boundary
func (a *API) startSession(c *gin.Context, user *model.User, remember bool) (*model.Session, error) {
	if old, err := c.Cookie(middleware.SessionCookie); err == nil && old != "" {
		if err := service.DestroySession(a.DB, old); err != nil {
			zap.L().Warn("Failed to destroy stale session", zap.Error(err))
		}
	}

	session, err := service.CreateSession(a.DB, user, remember)
	if err != nil {
		return nil, err
	}

	maxAge := int(session.ExpiresAt.Sub(session.CreatedAt).Seconds())
	c.SetCookie(middleware.SessionCookie, session.ID, maxAge, "/", "", sslEnabled(), true)
	c.SetCookie(CSRFCookie, session.CSRFToken, maxAge, "/", "", sslEnabled(), false)

	return session, nil
}

type webRegisterBody struct {
	Name                 string `form:"name" json:"name"`
	Email                string `form:"email" json:"email"`
	Password             string `form:"password" json:"password"`
	PasswordConfirmation string `form:"password_confirmation" json:"password_confirmation"`
}

func (a *API) WebRegister(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data webRegisterBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  gin.H{"body": []string{"invalid request body"}},
		})
		return
	}

	// The web form applies the strict password rule
	user, err := service.Register(a.DB, a.Argon, data.Name, data.Email, data.Password, data.PasswordConfirmation, true)
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
			"message": "An error occurred during registration. Please try again.",
		})

		zap.L().Error("Failed to register user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if _, err := a.startSession(c, user, false); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "An error occurred during registration. Please try again.",
		})

		zap.L().Error("Failed to create session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Redirect(http.StatusSeeOther, "/dashboard")
}

type webLoginBody struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Remember bool   `form:"remember" json:"remember"`
}

func (a *API) WebLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data webLoginBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": webLoginFailedMsg,
		})
		return
	}

	user, err := service.Login(a.DB, a.Argon, data.Email, data.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": webLoginFailedMsg,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "An error occurred during login. Please try again.",
		})

		zap.L().Error("Failed to log in user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if _, err := a.startSession(c, user, data.Remember); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "An error occurred during login. Please try again.",
		})

		zap.L().Error("Failed to create session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// WebLogout destroys the server-side session record and hands the
// browser a fresh anti-forgery token right away
func (a *API) WebLogout(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	sessionID := c.MustGet("sessionID").(string)

	if err := service.DestroySession(a.DB, sessionID); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "An error occurred during logout.",
		})

		zap.L().Error("Failed to destroy session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", sslEnabled(), true)
	c.SetCookie(CSRFCookie, gonanoid.Must(32), 0, "/", "", sslEnabled(), false)

	c.Redirect(http.StatusSeeOther, "/")
}
