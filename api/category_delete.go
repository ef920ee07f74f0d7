package api

import (
	"errors"
	"net/http"

	"newshub/news-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoryDelete refuses to cascade: a category holding articles comes
// back as a conflict and nothing changes
func (a *API) CategoryDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, ok := idParam(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Category not found",
		})
		return
	}

	var category model.Category
	err := a.DB.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Category not found",
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete category",
		})

		zap.L().Error("Failed to fetch category", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var count int64
	if err := a.DB.Model(model.Article{}).Where("category_id = ?", category.ID).Count(&count).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete category",
		})

		zap.L().Error("Failed to count category articles", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if count > 0 {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "Cannot delete category with associated newspapers",
		})
		return
	}

	if err := a.DB.Delete(&category).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete category",
		})

		zap.L().Error("Failed to delete category", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category deleted successfully",
	})
}
