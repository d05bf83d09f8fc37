// Package avatar serves POST /avatar.
package avatar

import (
	"context"
	"errors"
	"net/http"

	"kudos_web/internal/common"
	"kudos_web/internal/config"
	"kudos_web/internal/filestorage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Storage persists avatar files.
type Storage interface {
	SaveAvatar(upload *filestorage.Upload) (string, error)
	DeleteByURL(url string) error
}

// PictureSetter records the avatar URL on the user's profile and returns the old one.
type PictureSetter interface {
	SetProfilePicture(ctx context.Context, id uuid.UUID, url string) (string, error)
}

// Handler accepts avatar uploads.
type Handler struct {
	storage     Storage
	users       PictureSetter
	maxPartSize int64
	logger      *zap.Logger
}

// NewHandler creates a new avatar handler.
func NewHandler(storage Storage, users PictureSetter, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		storage:     storage,
		users:       users,
		maxPartSize: cfg.UploadMaxPartBytes,
		logger:      logger,
	}
}

// RegisterRoutes mounts POST /avatar on a router that already requires a user.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST("/avatar", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)

	upload, err := filestorage.ParseUpload(c.Request, h.maxPartSize)
	if err != nil {
		level := zap.WarnLevel
		if !errors.Is(err, filestorage.ErrPartTooLarge) && !errors.Is(err, filestorage.ErrNotMultipart) {
			level = zap.ErrorLevel
		}
		h.log(c).Check(level, "Avatar upload: parse failed").Write(zap.Error(err), zap.String("userID", userID.String()))
		common.RespondJSONError(c, http.StatusBadRequest, "Upload failed")
		return
	}
	if upload == nil {
		common.RespondJSONError(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	if err := filestorage.ValidateImage(upload); err != nil {
		h.log(c).Warn("Avatar upload: rejected content", zap.String("filename", upload.Filename), zap.String("userID", userID.String()))
		common.RespondJSONError(c, http.StatusBadRequest, "File must be an image")
		return
	}

	url, err := h.storage.SaveAvatar(upload)
	if err != nil {
		common.RespondJSONError(c, http.StatusInternalServerError, "Upload failed")
		return
	}

	previous, err := h.users.SetProfilePicture(c.Request.Context(), userID, url)
	if err != nil {
		h.log(c).Error("Avatar upload: profile update failed, removing file", zap.Error(err), zap.String("url", url))
		if delErr := h.storage.DeleteByURL(url); delErr != nil {
			h.log(c).Error("Avatar upload: could not remove orphaned file", zap.Error(delErr), zap.String("url", url))
		}
		common.RespondJSONError(c, http.StatusInternalServerError, "Upload failed")
		return
	}

	if previous != "" && previous != url {
		if err := h.storage.DeleteByURL(previous); err != nil {
			h.log(c).Warn("Avatar upload: could not remove previous avatar", zap.Error(err), zap.String("url", previous))
		}
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}

// log returns the request-scoped logger so entries carry the request id.
func (h *Handler) log(c *gin.Context) *zap.Logger {
	return common.GetLoggerFromContext(c, h.logger)
}
