package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/handsoff/console/internal/apiclient"
	"github.com/handsoff/console/internal/repositories"
	"github.com/handsoff/console/internal/workers"
	"github.com/handsoff/console/pkg/config"
	"github.com/handsoff/console/pkg/database"
	"github.com/handsoff/console/pkg/logger"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.Server.Mode)
	if cfg.InsecureSecret() {
		logger.Warnf("SESSION_SECRET is unset; session cookies are signed with the public default key")
	}

	// Initialize database
	if err := database.Init(cfg.Database.Path); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	client, err := apiclient.New(cfg.API.BaseURL, cfg.APITimeout())
	if err != nil {
		logger.Fatalf("Invalid API_BASE_URL: %v", err)
	}

	sessionRepo := repositories.NewSessionRepository(database.DB)
	workerManager := workers.NewWorkerManager(
		workers.NewSessionSweeper("session-sweeper", sessionRepo, cfg.SessionIdleTTL(), cfg.SessionSweepInterval()),
	)

	a := newApp(client, sessionRepo, cfg)
	a.workerStatus = workerManager.GetWorkerStatus

	router, err := setupRouter(a)
	if err != nil {
		logger.Fatalf("Failed to set up router: %v", err)
	}

	if err := workerManager.StartAll(); err != nil {
		logger.Fatalf("Failed to start workers: %v", err)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Infof("Console starting on :%s, backend %s", cfg.Server.Port, client.BaseURL())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("server forced to shut down")
	}
	workerManager.StopAll()
	logger.Info("Server stopped")
}
