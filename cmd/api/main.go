package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"energy-measures/internal/api"
	"energy-measures/internal/api/middleware"
	"energy-measures/internal/measures"
	"energy-measures/internal/tariff"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.Fatalf("Invalid LOG_LEVEL: %s", lvl)
		}
		logrus.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lib, err := tariff.Default()
	if err != nil {
		logrus.Fatalf("Failed to open tariff library: %v", err)
	}
	cache := tariff.CacheFromEnv()
	lib = lib.WithCache(cache)
	go cache.RunCleanup(ctx, 10*time.Minute)
	logrus.WithFields(logrus.Fields{
		"source":  lib.Source(),
		"tariffs": len(lib.Entries()),
	}).Info("tariff library loaded")

	registry, err := measures.NewRegistry(lib)
	if err != nil {
		logrus.Fatalf("Failed to register measures: %v", err)
	}

	router := api.NewRouter(api.Options{
		Registry:    registry,
		Tariffs:     lib,
		ModelsDir:   os.Getenv("MODELS_DIR"),
		CORSOrigins: middleware.CORSOrigins(),
	})

	// Start server
	addr := fmt.Sprintf(":%s", port)
	srv := &http.Server{Addr: addr, Handler: router}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}

	logrus.Infof("Starting API server on %s", addr)
	if err := serve(ctx, srv, ln, 5*time.Second); err != nil {
		logrus.Fatalf("Server stopped: %v", err)
	}
}

// serve runs srv on ln until ctx is done, then shuts it down and returns once
// in-flight requests have drained or grace has passed.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, grace time.Duration) error {
	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		logrus.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-done; err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
