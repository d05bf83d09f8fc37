package filestorage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
)

// UploadFieldName is the multipart field carrying the avatar.
const UploadFieldName = "file"

var (
	ErrNotMultipart = errors.New("request is not multipart/form-data")
	ErrPartTooLarge = errors.New("multipart part exceeds the size limit")
)

// Upload is a file part read fully into memory.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ParseUpload streams every part of a multipart request, holding at most
// maxPartSize bytes per part. Any oversized part fails the whole request.
// It returns the first part named "file" that carries a file name, or nil when
// there is none.
func ParseUpload(r *http.Request, maxPartSize int64) (*Upload, error) {
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.EqualFold(mediaType, "multipart/form-data") {
		return nil, ErrNotMultipart
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, ErrNotMultipart
	}

	reader := multipart.NewReader(r.Body, boundary)
	var found *Upload
	for {
		part, err := reader.NextPart()
		// A clean end is a bare io.EOF; a truncated body wraps it.
		if err == io.EOF { //nolint:errorlint
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read multipart: %w", err)
		}

		data, err := readPart(part, maxPartSize)
		part.Close()
		if err != nil {
			return nil, err
		}

		if found == nil && part.FormName() == UploadFieldName && part.FileName() != "" {
			found = &Upload{
				Filename:    part.FileName(),
				ContentType: part.Header.Get("Content-Type"),
				Data:        data,
			}
		}
	}
	return found, nil
}

func readPart(part *multipart.Part, maxPartSize int64) ([]byte, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(part, maxPartSize+1))
	if err != nil {
		return nil, fmt.Errorf("read part %q: %w", part.FormName(), err)
	}
	if n > maxPartSize {
		return nil, ErrPartTooLarge
	}
	return buf.Bytes(), nil
}
