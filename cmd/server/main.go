package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/pandaschool/internal/api"
	"github.com/vytor/pandaschool/internal/auth"
	"github.com/vytor/pandaschool/internal/config"
	"github.com/vytor/pandaschool/internal/db"
	"github.com/vytor/pandaschool/internal/logger"
	"github.com/vytor/pandaschool/internal/repository/sqldb"
	"github.com/vytor/pandaschool/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Panda School Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_driver=%s", cfg.DBDriver)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("token_ttl=%s", cfg.TokenTTL)
	log.Debug("cors_origin=%s", cfg.CORSOrigin)

	// Open database
	database, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize services
	userRepo := sqldb.NewUserRepository(database)
	kvRepo := sqldb.NewKVRepository(database)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	srv := &api.Server{
		DB:           database,
		AuthService:  services.NewAuthService(userRepo, kvRepo, tokens),
		StoreService: services.NewStoreService(kvRepo),
		Validator:    api.NewValidator(),
		CORSOrigin:   cfg.CORSOrigin,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Panda School Server Stopped")
	log.Info("===========================================")
}
