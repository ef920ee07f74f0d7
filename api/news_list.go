package api

import (
	"net/http"

	"newshub/news-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) NewsList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	pageN, ok := pageParam(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Page is not a valid positive integer",
		})
		return
	}

	articles := []model.Article{}
	q := a.DB.
		Model(model.Article{}).
		Preload("Category").
		Preload("User").
		Order("created_at DESC, id DESC")

	p, err := paginate(q, pageN, &articles)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to retrieve newspapers",
		})

		zap.L().Error("Failed to fetch articles", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	a.resolveImageURLs(articles)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Newspapers retrieved successfully",
		"data":    p,
	})
}

func (a *API) NewsByCategory(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	pageN, ok := pageParam(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Page is not a valid positive integer",
		})
		return
	}

	categoryID, ok := idParam(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Category not found",
		})
		return
	}

	articles := []model.Article{}
	q := a.DB.
		Model(model.Article{}).
		Where("category_id = ?", categoryID).
		Preload("Category").
		Preload("User").
		Order("created_at DESC, id DESC")

	p, err := paginate(q, pageN, &articles)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to retrieve newspapers",
		})

		zap.L().Error("Failed to fetch articles by category", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	a.resolveImageURLs(articles)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Newspapers retrieved successfully",
		"data":    p,
	})
}
