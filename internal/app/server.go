// File: internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"kudos_web/internal/auth"
	"kudos_web/internal/avatar"
	"kudos_web/internal/config"
	"kudos_web/internal/filestorage"
	"kudos_web/internal/jobs"
	"kudos_web/internal/kudo"
	"kudos_web/internal/middleware"
	"kudos_web/internal/user"
	"kudos_web/internal/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	uploadSweepJob *jobs.UploadSweepJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	sessions *auth.SessionManager,
	userService user.Service,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	kudoHandler *kudo.Handler,
	avatarHandler *avatar.Handler,
	storage *filestorage.FileStorageService,
	uploadSweepJob *jobs.UploadSweepJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())
	router.NoRoute(middleware.NotFound())
	router.NoMethod(middleware.MethodNotAllowed())

	if err := web.Load(router); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/home")
	})
	router.Group("/uploads", middleware.UserContentHeaders()).Static("/", storage.UploadsPath())

	authHandler.RegisterRoutes(router)

	requireUser := auth.RequireUser(sessions, userService, logger.Named("RequireUser"))

	home := router.Group("/home", requireUser)
	kudoHandler.RegisterRoutes(home)
	userHandler.RegisterRoutes(home)

	avatarMW := []gin.HandlerFunc{requireUser}
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		corsConfig.AllowMethods = []string{http.MethodPost, http.MethodOptions}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
		corsConfig.AllowCredentials = true
		corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
		corsMW := cors.New(corsConfig)
		router.OPTIONS("/avatar", corsMW)
		avatarMW = append([]gin.HandlerFunc{corsMW}, avatarMW...)
	}
	avatarHandler.RegisterRoutes(router.Group("", avatarMW...))

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ServerTimeout,
		WriteTimeout:      cfg.ServerTimeout,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{
		httpServer:     httpServer,
		router:         router,
		cfg:            cfg,
		logger:         logger,
		uploadSweepJob: uploadSweepJob,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	if s.uploadSweepJob != nil {
		if err := s.uploadSweepJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start upload sweep job", zap.Error(err))
		}
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.uploadSweepJob != nil {
		s.uploadSweepJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
