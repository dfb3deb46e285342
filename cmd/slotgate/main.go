package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/slotgate/internal/config"
	logpkg "github.com/kailas-cloud/slotgate/internal/logger"
	"github.com/kailas-cloud/slotgate/internal/metrics"
	chiTransport "github.com/kailas-cloud/slotgate/internal/transport/chi"
	"github.com/kailas-cloud/slotgate/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting slotgate API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("match_strategy", cfg.Gate.MatchStrategy),
		zap.Bool("auth_enabled", len(cfg.Auth.APIKeys) > 0),
	)

	// Register gate metrics explicitly (no init())
	metrics.RegisterGateMetrics()

	matcher, err := cfg.Gate.Matcher()
	if err != nil {
		logger.Fatal("Invalid gate configuration", zap.Error(err))
	}

	server := chiTransport.NewServer(chiTransport.Config{
		Matcher:          matcher,
		FuzzyMaxDistance: cfg.Gate.FuzzyMaxDistance,
		MaxBatchSize:     cfg.Gate.MaxBatchSize,
		MaxBodyBytes:     cfg.HTTP.MaxBodyBytes,
		MockScore:        cfg.Compare.MockScore,
		MinScore:         cfg.Compare.MinScore,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
