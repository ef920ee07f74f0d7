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

type newsUpdateBody struct {
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	CategoryID  *uint   `json:"category_id" form:"category_id"`
	Author      *string `json:"author" form:"author"`
}

func (a *API) validateNewsUpdate(data *newsUpdateBody) map[string][]string {
	errs := map[string][]string{}

	if data.Title != nil {
		if strings.TrimSpace(*data.Title) == "" {
			errs["title"] = append(errs["title"], "title is required")
		} else if len(*data.Title) > 255 {
			errs["title"] = append(errs["title"], "title is too long")
		}
	}

	if data.Description != nil && strings.TrimSpace(*data.Description) == "" {
		errs["description"] = append(errs["description"], "description is required")
	}

	if data.CategoryID != nil {
		var count int64
		err := a.DB.Model(model.Category{}).Where("id = ?", *data.CategoryID).Count(&count).Error
		if err != nil || count == 0 {
			errs["category_id"] = append(errs["category_id"], "the selected category does not exist")
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (a *API) NewsUpdate(c *gin.Context) {
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
			"message": "Failed to update newspaper",
		})

		zap.L().Error("Failed to fetch article", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var data newsUpdateBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  gin.H{"body": []string{"invalid request body"}},
		})
		return
	}

	if errs := a.validateNewsUpdate(&data); errs != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  errs,
		})
		return
	}

	newImage, code, err := a.storeImage(c)
	if err != nil {
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to store image", zap.Error(err), zap.String("requestID", requestID))
			err = errors.New("internal server error")
		}

		c.AbortWithStatusJSON(code, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	updates := map[string]any{}
	if data.Title != nil {
		updates["title"] = *data.Title
	}
	if data.Description != nil {
		updates["description"] = *data.Description
	}
	if data.CategoryID != nil {
		updates["category_id"] = *data.CategoryID
	}
	if data.Author != nil {
		updates["author"] = strings.TrimSpace(*data.Author)
	}
	if newImage != "" {
		updates["image"] = newImage
	}

	oldImage := article.Image

	if len(updates) > 0 {
		if err := a.DB.Model(&article).Updates(updates).Error; err != nil {
			a.releaseImage(newImage, requestID)

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to update newspaper",
			})

			zap.L().Error("Failed to update article", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	// The record change has landed, the stale blob only costs space.
	// Release is best-effort on purpose
	if newImage != "" && oldImage != "" && oldImage != newImage {
		a.releaseImage(oldImage, requestID)
	}

	if err := a.DB.Preload("Category").Preload("User").First(&article, article.ID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Warn("Failed to reload article relations", zap.Error(err), zap.String("requestID", requestID))
	}
	a.resolveImageURL(&article)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Newspaper updated successfully",
		"data":    article,
	})
}
