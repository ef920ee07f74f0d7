package api

import (
	"context"
	"errors"
	"net/http"
	"path"
	"strings"

	"newshub/news-api/model"
	"newshub/news-api/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const imageKeyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// storeImage validates and stores an uploaded article image when the
// request carries one. Returns the storage reference, or "" when the
// image field is absent
func (a *API) storeImage(c *gin.Context) (string, int, error) {
	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		return "", 0, nil
	}

	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", 0, nil
		}
		return "", http.StatusBadRequest, validators.ErrNoImage
	}

	code, f, err := validators.ImageValidator(fh)
	if err != nil {
		return "", code, err
	}
	defer f.Close()

	key := "news-image-" + gonanoid.MustGenerate(imageKeyAlphabet, 12) + strings.ToLower(path.Ext(fh.Filename))

	ref, err := a.Store.Put(c.Request.Context(), key, fh.Header.Get("Content-Type"), f, fh.Size)
	if err != nil {
		return "", http.StatusInternalServerError, err
	}

	return ref, 0, nil
}

// resolveImageURL fills in the public location of an article's stored
// image before the record goes out
func (a *API) resolveImageURL(article *model.Article) {
	if article.Image != "" {
		article.ImageURL = a.Store.URL(article.Image)
	}
}

func (a *API) resolveImageURLs(articles []model.Article) {
	for i := range articles {
		a.resolveImageURL(&articles[i])
	}
}

// releaseImage deletes a stored image reference. Cleanup is best-effort,
// a failure is logged and never blocks the record mutation that
// triggered it
func (a *API) releaseImage(ref, requestID string) {
	if ref == "" {
		return
	}

	if err := a.Store.Delete(context.Background(), ref); err != nil {
		zap.L().Warn("Failed to release image",
			zap.Error(err),
			zap.String("image", ref),
			zap.String("requestID", requestID))
	}
}
