package api

import (
	"errors"
	"net/http"
	"strings"

	"newshub/news-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type categoryUpdateBody struct {
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
}

func (a *API) CategoryUpdate(c *gin.Context) {
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
			"message": "Failed to update category",
		})

		zap.L().Error("Failed to fetch category", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var data categoryUpdateBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  gin.H{"body": []string{"invalid request body"}},
		})
		return
	}

	updates := map[string]any{}

	if data.Name != nil {
		name := strings.TrimSpace(*data.Name)
		if name == "" || len(name) > 255 {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "Validation failed",
				"errors":  gin.H{"name": []string{"name is required and must be at most 255 characters"}},
			})
			return
		}
		updates["name"] = name
	}

	if data.Description != nil {
		updates["description"] = *data.Description
	}

	if len(updates) > 0 {
		if err := a.DB.Model(&category).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
					"success": false,
					"message": "Validation failed",
					"errors":  gin.H{"name": []string{"this category name is already taken"}},
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to update category",
			})

			zap.L().Error("Failed to update category", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category updated successfully",
		"data":    category,
	})
}
