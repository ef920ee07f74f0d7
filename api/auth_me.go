package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) AuthMe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User retrieved successfully",
		"data":    c.MustGet("user"),
	})
}
