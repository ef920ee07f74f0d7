package api

import (
	"net/http"

	"newshub/news-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dashboard summarizes the logged-in author's corner of the site:
// their article count, the latest articles and the category list
func (a *API) Dashboard(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	var articleCount int64
	if err := a.DB.Model(&model.Article{}).
		Where("user_id = ?", user.ID).
		Count(&articleCount).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to load dashboard",
		})

		zap.L().Error("Failed to count articles", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	recent := []model.Article{}
	if err := a.DB.Preload("Category").
		Order("created_at DESC, id DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to load dashboard",
		})

		zap.L().Error("Failed to load recent articles", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	a.resolveImageURLs(recent)

	categories := []model.Category{}
	if err := a.DB.Order("name ASC").Find(&categories).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to load dashboard",
		})

		zap.L().Error("Failed to load categories", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Dashboard loaded successfully",
		"data": gin.H{
			"user":            user,
			"article_count":   articleCount,
			"recent_articles": recent,
			"categories":      categories,
		},
	})
}
