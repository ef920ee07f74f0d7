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

type newsBody struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	CategoryID  uint   `json:"category_id" form:"category_id"`
	Author      string `json:"author" form:"author"`
}

func (a *API) validateNewsBody(data *newsBody) map[string][]string {
	errs := map[string][]string{}

	if strings.TrimSpace(data.Title) == "" {
		errs["title"] = append(errs["title"], "title is required")
	} else if len(data.Title) > 255 {
		errs["title"] = append(errs["title"], "title is too long")
	}

	if strings.TrimSpace(data.Description) == "" {
		errs["description"] = append(errs["description"], "description is required")
	}

	if data.CategoryID == 0 {
		errs["category_id"] = append(errs["category_id"], "category is required")
	} else {
		var count int64
		err := a.DB.Model(model.Category{}).Where("id = ?", data.CategoryID).Count(&count).Error
		if err != nil || count == 0 {
			errs["category_id"] = append(errs["category_id"], "the selected category does not exist")
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (a *API) NewsCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	var data newsBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  gin.H{"body": []string{"invalid request body"}},
		})
		return
	}

	if errs := a.validateNewsBody(&data); errs != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  errs,
		})
		return
	}

	image, code, err := a.storeImage(c)
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

	// The author column is a display-name snapshot taken now, not a
	// live join against the user
	author := strings.TrimSpace(data.Author)
	if author == "" {
		author = user.Name
	}

	article := model.Article{
		Title:       data.Title,
		Description: data.Description,
		Image:       image,
		Author:      author,
		CategoryID:  data.CategoryID,
		UserID:      user.ID,
	}

	if err := a.DB.Create(&article).Error; err != nil {
		a.releaseImage(image, requestID)

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create newspaper",
		})

		zap.L().Error("Failed to create article", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.DB.Preload("Category").Preload("User").First(&article, article.ID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Warn("Failed to reload article relations", zap.Error(err), zap.String("requestID", requestID))
	}
	a.resolveImageURL(&article)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Newspaper created successfully",
		"data":    article,
	})
}
