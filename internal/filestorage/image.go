package filestorage

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotImage rejects uploads whose content is not one of the allowed raster formats.
var ErrNotImage = errors.New("upload is not a supported image")

// allowedImageTypes are served back from the app's own origin, so scriptable
// formats such as SVG or HTML never make it to disk.
var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
	"image/webp": {},
}

// ValidateImage sniffs the upload's bytes and accepts only allowed image types.
// The client's content type is replaced with the detected one and the file name
// extension is rewritten to match it.
func ValidateImage(upload *Upload) error {
	detected := mimetype.Detect(upload.Data)
	if _, ok := allowedImageTypes[detected.String()]; !ok {
		return ErrNotImage
	}
	upload.ContentType = detected.String()
	upload.Filename = strings.TrimSuffix(upload.Filename, filepath.Ext(upload.Filename)) + detected.Extension()
	return nil
}
