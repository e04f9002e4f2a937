// Package main is the entry point for the offerstock API server.
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

	"offerstock/internal/domain/auth"
	"offerstock/internal/domain/material"
	"offerstock/internal/domain/modification"
	"offerstock/internal/domain/variation"
	v1 "offerstock/internal/infrastructure/http/v1"
	"offerstock/internal/infrastructure/storage/postgres"
	"offerstock/internal/infrastructure/storage/postgres/material_repo"
	"offerstock/internal/infrastructure/storage/postgres/modification_repo"
	"offerstock/internal/infrastructure/storage/postgres/variation_repo"
	"offerstock/pkg/config"
	"offerstock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Development: cfg.App.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting offerstock server", "env", cfg.App.Env)

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.PoolConfigFrom(cfg.DB))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	pool.LogStats(ctx)

	audit, err := postgres.NewAuditService(pool, cfg.Audit.CompressThreshold)
	if err != nil {
		log.Fatalw("failed to initialize audit", "error", err)
	}

	// --- Services ---
	variations := variation.NewService(variation_repo.NewVariationRepo(pool))
	materials := material.NewService(material_repo.NewQuantityRepo(pool))
	modifications := modification.NewService(
		modification_repo.NewQuantityRepo(pool),
		modification_repo.NewAuditAdapter(audit),
	)

	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(cfg.JWT.Secret, cfg.JWT.Issuer))

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Database:      pool,
		Logger:        log,
		JWTValidator:  jwtService,
		Variations:    variations,
		Materials:     materials,
		Modifications: modifications,
		Development:   cfg.App.IsDevelopment(),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		log.Infow("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
