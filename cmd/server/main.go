package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rkaranja/facility-registry/internal/config"
	"github.com/rkaranja/facility-registry/internal/db"
	"github.com/rkaranja/facility-registry/internal/export"
	"github.com/rkaranja/facility-registry/internal/ingestion"
	"github.com/rkaranja/facility-registry/internal/logger"
	"github.com/rkaranja/facility-registry/internal/middleware"
	"github.com/rkaranja/facility-registry/internal/query"
	"github.com/rkaranja/facility-registry/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	// Create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	// Setup database connection
	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	if err := db.EnsureSchema(ctx, conn.Pool); err != nil {
		zapLogger.Fatal("failed to ensure schema", zap.Error(err))
	}

	// Create repositories
	facilityRepo := repository.NewFacilityRepository(conn.Pool)
	stagingRepo := repository.NewStagingRepository(conn)

	// Create services and handlers
	queryHandler := query.NewHTTPHandler(query.NewService(facilityRepo, stagingRepo, zapLogger))
	uploadHandler := ingestion.NewHTTPHandler(ingestion.NewService(stagingRepo, zapLogger), zapLogger)
	exportHandler := export.NewHTTPHandler(export.NewService(facilityRepo, zapLogger))

	// Setup CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	router := chi.NewRouter()
	router.Use(middleware.Recover(zapLogger))
	router.Use(middleware.Logging(zapLogger))
	router.Use(corsHandler.Handler)

	router.Route("/api", func(r chi.Router) {
		r.Mount("/", queryHandler.Routes())
		r.Method(http.MethodPost, "/upload-csv", uploadHandler)
		r.Method(http.MethodGet, "/export/facilities", exportHandler)
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("starting facility registry server", zap.String("addr", cfg.ServerAddr))

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server exited")
}
