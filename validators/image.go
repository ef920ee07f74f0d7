package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

var (
	ErrNoImage              = errors.New("no image provided")
	ErrImageTooLarge        = errors.New("image too large")
	ErrImageTypeUnsupported = errors.New("unsupported image type")
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// ImageValidator checks the declared type, the size and the actual
// magic bytes of an uploaded article image. Returns the open file with
// the read offset rewound
func ImageValidator(fh *multipart.FileHeader) (int, multipart.File, error) {
	if fh == nil {
		return http.StatusBadRequest, nil, ErrNoImage
	}

	// Check headers first which is easy to spoof, but faster for legit clients
	ct := fh.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "image/") {
		return http.StatusBadRequest, nil, ErrImageTypeUnsupported
	}

	ext := strings.ToLower(path.Ext(fh.Filename))
	if !slices.Contains([]string{".jpg", ".jpeg", ".png", ".gif", ".webp"}, ext) {
		return http.StatusBadRequest, nil, ErrImageTypeUnsupported
	}

	if fh.Size > viper.GetInt64("upload.max_size") {
		return http.StatusRequestEntityTooLarge, nil, ErrImageTooLarge
	}

	// And now do the checks on the actual file to avoid
	// malicious clients
	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, nil, err
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, err
	}

	ok := false
	for _, t := range allowedImageTypes {
		if mime.Is(t) {
			ok = true
			break
		}
	}

	if !ok {
		f.Close()
		return http.StatusBadRequest, nil, ErrImageTypeUnsupported
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, err
	}

	return 0, f, nil
}
