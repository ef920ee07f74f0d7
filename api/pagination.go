package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// page mirrors the paginator shape API consumers already parse:
// the rows under data plus position bookkeeping around them
type page struct {
	CurrentPage int   `json:"current_page"`
	Data        any   `json:"data"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// pageParam reads ?page= with 1 as the first page
func pageParam(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("page", "1")

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}

	return n, true
}

// idParam reads a numeric :id route parameter. Rejecting garbage here
// keeps it out of the database entirely, postgres would error on a
// non-numeric comparison where sqlite shrugs
func idParam(c *gin.Context) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}

	return n, true
}

// paginate runs the query twice, once counting and once fetching the
// requested window, and wraps the result
func paginate(q *gorm.DB, pageN int, out any) (*page, error) {
	perPage := viper.GetInt("app.page_size")

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	err := q.Session(&gorm.Session{}).
		Offset((pageN - 1) * perPage).
		Limit(perPage).
		Find(out).
		Error
	if err != nil {
		return nil, err
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	return &page{
		CurrentPage: pageN,
		Data:        out,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}, nil
}
