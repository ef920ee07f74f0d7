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

type categoryBody struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

func (a *API) CategoryCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data categoryBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  gin.H{"body": []string{"invalid request body"}},
		})
		return
	}

	data.Name = strings.TrimSpace(data.Name)
	if data.Name == "" || len(data.Name) > 255 {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  gin.H{"name": []string{"name is required and must be at most 255 characters"}},
		})
		return
	}

	category := model.Category{
		Name:        data.Name,
		Description: data.Description,
	}

	if err := a.DB.Create(&category).Error; err != nil {
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
			"message": "Failed to create category",
		})

		zap.L().Error("Failed to create category", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Category created successfully",
		"data":    category,
	})
}
