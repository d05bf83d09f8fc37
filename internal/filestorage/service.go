package filestorage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

const (
	// UploadsDir is the directory under the public dir holding avatars.
	UploadsDir = "uploads"
	// URLPrefix is the public path the uploads directory is served from.
	URLPrefix = "/uploads/"
)

// StoredFile describes a file in the uploads directory.
type StoredFile struct {
	Name    string
	URL     string
	ModTime time.Time
}

// FileStorageService provides operations for storing and deleting uploaded files.
type FileStorageService struct {
	uploadsPath string // e.g. "public/uploads"
	logger      *zap.Logger
}

// NewFileStorageService creates a new FileStorageService rooted at publicDir/uploads.
func NewFileStorageService(publicDir string, logger *zap.Logger) (*FileStorageService, error) {
	if publicDir == "" {
		return nil, fmt.Errorf("public directory cannot be empty")
	}
	uploadsPath := filepath.Join(publicDir, UploadsDir)
	if err := os.MkdirAll(uploadsPath, 0o755); err != nil {
		logger.Error("Failed to create uploads directory", zap.String("path", uploadsPath), zap.Error(err))
		return nil, fmt.Errorf("failed to create uploads directory %s: %w", uploadsPath, err)
	}
	logger.Info("FileStorageService initialized", zap.String("uploadsPath", uploadsPath))
	return &FileStorageService{uploadsPath: uploadsPath, logger: logger}, nil
}

// UploadsPath is the directory served under URLPrefix.
func (s *FileStorageService) UploadsPath() string {
	return s.uploadsPath
}

// SaveAvatar writes upload to the uploads directory and returns its public URL.
func (s *FileStorageService) SaveAvatar(upload *Upload) (string, error) {
	if upload == nil {
		return "", fmt.Errorf("upload cannot be nil")
	}

	name := uuid.New().String() + "-" + sanitizeFilename(upload.Filename)
	destinationPath := filepath.Join(s.uploadsPath, name)

	if err := os.WriteFile(destinationPath, upload.Data, 0o644); err != nil {
		s.logger.Error("Failed to write uploaded file", zap.String("path", destinationPath), zap.Error(err))
		// Attempt to remove partially written file
		_ = os.Remove(destinationPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	s.logger.Info("File saved successfully", zap.String("path", destinationPath), zap.Int("bytes", len(upload.Data)))
	return URLPrefix + name, nil
}

// DeleteByURL removes the file behind a URL returned by SaveAvatar.
// URLs outside the uploads prefix are refused; missing files are not an error.
func (s *FileStorageService) DeleteByURL(url string) error {
	if !strings.HasPrefix(url, URLPrefix) {
		return fmt.Errorf("not an upload url: %q", url)
	}
	return s.DeleteFile(strings.TrimPrefix(url, URLPrefix))
}

// DeleteFile deletes a file by its name inside the uploads directory.
func (s *FileStorageService) DeleteFile(name string) error {
	if name == "" {
		return fmt.Errorf("file name cannot be empty")
	}
	clean := path.Clean(name)
	if clean != name || strings.ContainsAny(clean, `/\`) || strings.HasPrefix(clean, ".") {
		s.logger.Warn("Attempt to delete file with path traversal", zap.String("name", name))
		return fmt.Errorf("invalid file name for deletion")
	}

	fullPath := filepath.Join(s.uploadsPath, clean)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Attempt to delete non-existent file", zap.String("path", fullPath))
			return nil
		}
		s.logger.Error("Failed to delete file", zap.String("path", fullPath), zap.Error(err))
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}

	s.logger.Info("File deleted successfully", zap.String("path", fullPath))
	return nil
}

// List returns every regular file in the uploads directory.
func (s *FileStorageService) List() ([]StoredFile, error) {
	entries, err := os.ReadDir(s.uploadsPath)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	files := make([]StoredFile, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, StoredFile{Name: e.Name(), URL: URLPrefix + e.Name(), ModTime: info.ModTime()})
	}
	return files, nil
}

// sanitizeFilename keeps the original name recognisable while making it safe as a
// single path element: the stem is slugified and the extension reduced to [a-z0-9].
func sanitizeFilename(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if !isSafeStem(stem) {
		stem = slug.Make(stem)
	}
	if stem == "" {
		stem = "upload"
	}
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	ext = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, ext)
	if ext == "" {
		return stem
	}
	return stem + "." + ext
}

// isSafeStem reports whether a name is already a plain path element that needs no slugging.
func isSafeStem(stem string) bool {
	if stem == "" {
		return false
	}
	for _, r := range stem {
		if !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
