// File: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log" // Standard log for critical startup/shutdown messages before/after zap is active
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kudos_web/internal/config"
)

func main() {
	sweepUploadsCmd := flag.NewFlagSet("sweep-uploads", flag.ExitOnError)
	grace := sweepUploadsCmd.Duration("grace", 0, "Override UPLOAD_SWEEP_GRACE_MINUTES for this run (e.g. 10m)")

	if len(os.Args) > 1 && os.Args[1] == "sweep-uploads" {
		if err := sweepUploadsCmd.Parse(os.Args[2:]); err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		runSweep(*grace)
		return
	}

	startServer()
}

func runSweep(grace time.Duration) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration for sweep: %v", err)
	}
	if grace > 0 {
		cfg.UploadSweepGrace = grace
	}

	job, cleanup, err := initializeSweeper(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize upload sweeper: %v", err)
	}
	defer cleanup()

	removed, err := job.Sweep(context.Background())
	if err != nil {
		log.Printf("ERROR: Upload sweep failed: %v", err)
		return
	}
	log.Printf("INFO: Upload sweep removed %d file(s).", removed)
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}
