package middleware

import (
	"net/http"

	"newshub/news-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionCookie is the name of the web session cookie
const SessionCookie = "news_session"

// NewSessionAuthMiddleware guards the web surface with the server-side
// session store
func NewSessionAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		id, err := c.Cookie(SessionCookie)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		user, session, err := service.ResolveSession(db, id)
		if err != nil {
			if err != service.ErrInvalidCredentials {
				zap.L().Error("Failed to resolve session", zap.Error(err), zap.String("requestID", requestID))
			}

			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Set("user", user)
		c.Set("sessionID", session.ID)
		c.Set("csrfToken", session.CSRFToken)
		c.Next()
	}
}
