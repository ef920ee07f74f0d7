package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Heartbeat reports liveness, including whether the database still
// answers. Load balancers only look at the status code
func (a *API) Heartbeat(c *gin.Context) {
	sqlDB, err := a.DB.DB()
	if err != nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}

	c.Status(http.StatusOK)
}
