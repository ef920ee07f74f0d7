package api

import (
	"errors"
	"net/http"

	"newshub/news-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) CategoryList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	pageN, ok := pageParam(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Page is not a valid positive integer",
		})
		return
	}

	categories := []model.Category{}
	q := a.DB.Model(model.Category{}).Order("name ASC")

	p, err := paginate(q, pageN, &categories)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to retrieve categories",
		})

		zap.L().Error("Failed to fetch categories", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Categories retrieved successfully",
		"data":    p,
	})
}

func (a *API) CategoryFetch(c *gin.Context) {
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
	err := a.DB.
		Preload("Articles").
		Where("id = ?", id).
		First(&category).
		Error
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
			"message": "Failed to retrieve category",
		})

		zap.L().Error("Failed to fetch category", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	a.resolveImageURLs(category.Articles)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category retrieved successfully",
		"data":    category,
	})
}
