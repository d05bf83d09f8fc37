package app

import (
	"time"

	"kudos_web/internal/auth"
	"kudos_web/internal/config"
	"kudos_web/internal/filestorage"

	"go.uber.org/zap"
)

const blocklistCleanupInterval = 10 * time.Minute

// NewBlocklist provides the session revocation list.
func NewBlocklist() *auth.InMemoryBlocklist {
	return auth.NewInMemoryBlocklist(blocklistCleanupInterval)
}

// NewSessionManager wires the session manager from configuration.
func NewSessionManager(cfg *config.Config, blocklist auth.Blocklist, logger *zap.Logger) (*auth.SessionManager, error) {
	return auth.NewSessionManager(auth.NewSessionOptions(cfg), blocklist, logger.Named("Session"))
}

// NewFileStorage roots avatar storage in PUBLIC_DIR.
func NewFileStorage(cfg *config.Config, logger *zap.Logger) (*filestorage.FileStorageService, error) {
	return filestorage.NewFileStorageService(cfg.PublicDir, logger.Named("FileStorage"))
}
