package api

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"newshub/news-api/model"
	"newshub/news-api/oauth"
	"newshub/news-api/service"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

// OAuthStateCookie pins the authorization round-trip to this browser
const OAuthStateCookie = "oauth_state"

const oauthStateTTL = 300 // seconds

// OAuthRedirect sends the browser off to the provider's consent page
func (a *API) OAuthRedirect(c *gin.Context) {
	name, err := oauth.ParseName(c.Param("provider"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Unknown authentication provider",
		})
		return
	}

	provider, err := a.Providers.Get(name)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Unknown authentication provider",
		})
		return
	}

	state := gonanoid.Must(32)
	c.SetCookie(OAuthStateCookie, state, oauthStateTTL, "/", "", sslEnabled(), true)

	c.Redirect(http.StatusSeeOther, provider.AuthURL(state))
}

// OAuthCallback finishes the flow: verifies state, trades the code for
// a provider identity and logs in whichever local account it maps to
func (a *API) OAuthCallback(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	name, err := oauth.ParseName(c.Param("provider"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/login?error=oauth")
		return
	}

	provider, err := a.Providers.Get(name)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/login?error=oauth")
		return
	}

	want, err := c.Cookie(OAuthStateCookie)
	c.SetCookie(OAuthStateCookie, "", -1, "/", "", sslEnabled(), true)

	got := c.Query("state")
	if err != nil || want == "" || subtle.ConstantTimeCompare([]byte(want), []byte(got)) != 1 {
		zap.L().Warn("OAuth state mismatch",
			zap.String("provider", string(name)),
			zap.String("requestID", requestID))

		c.Redirect(http.StatusSeeOther, "/login?error=oauth")
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusSeeOther, "/login?error=oauth")
		return
	}

	identity, err := provider.Exchange(c.Request.Context(), code)
	if err != nil {
		zap.L().Warn("OAuth code exchange failed",
			zap.Error(err),
			zap.String("provider", string(name)),
			zap.String("requestID", requestID))

		c.Redirect(http.StatusSeeOther, "/login?error=oauth")
		return
	}

	user, err := service.Reconcile(a.DB, name, identity)
	if err != nil {
		zap.L().Error("Failed to reconcile provider identity",
			zap.Error(err),
			zap.String("provider", string(name)),
			zap.String("requestID", requestID))

		c.Redirect(http.StatusSeeOther, "/login?error=oauth")
		return
	}

	if _, err := a.startSession(c, user, true); err != nil {
		zap.L().Error("Failed to create session", zap.Error(err), zap.String("requestID", requestID))
		c.Redirect(http.StatusSeeOther, "/login?error=oauth")
		return
	}

	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// OAuthDisconnect unlinks a provider from the logged-in account. The
// request must carry the session's CSRF token
func (a *API) OAuthDisconnect(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)
	csrf := c.MustGet("csrfToken").(string)

	sent := c.GetHeader("X-CSRF-Token")
	if sent == "" {
		sent = c.PostForm("_token")
	}

	if subtle.ConstantTimeCompare([]byte(csrf), []byte(sent)) != 1 {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Page expired, please try again",
		})
		return
	}

	name, err := oauth.ParseName(c.Param("provider"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Unknown authentication provider",
		})
		return
	}

	if err := service.Disconnect(a.DB, user, name); err != nil {
		if errors.Is(err, service.ErrNoPassword) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Set a password before disconnecting your social account",
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "An error occurred. Please try again.",
		})

		zap.L().Error("Failed to disconnect provider",
			zap.Error(err),
			zap.String("provider", string(name)),
			zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Social account disconnected successfully",
	})
}
