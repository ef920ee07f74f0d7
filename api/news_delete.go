package api

import (
	"errors"
	"net/http"

	"newshub/news-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) NewsDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, ok := idParam(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Newspaper not found",
		})
		return
	}

	var article model.Article
	err := a.DB.Where("id = ?", id).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Newspaper not found",
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete newspaper",
		})

		zap.L().Error("Failed to fetch article", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.DB.Delete(&article).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete newspaper",
		})

		zap.L().Error("Failed to delete article", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	a.releaseImage(article.Image, requestID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Newspaper deleted successfully",
	})
}
