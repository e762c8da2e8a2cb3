package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlenaMolokova/gamehub/internal/config"
	"github.com/AlenaMolokova/gamehub/internal/expiry"
	"github.com/AlenaMolokova/gamehub/internal/logger"
	"github.com/AlenaMolokova/gamehub/internal/router"
	"github.com/AlenaMolokova/gamehub/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)
	log.WithField("addr", cfg.RunAddr).Info("Starting gamehub")

	if err := storage.ApplyMigrations(cfg.DatabaseURI, cfg.MigrationsPath); err != nil {
		log.WithError(err).Fatal("Failed to apply migrations")
	}
	log.Info("Database migrations applied successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pgxpool.New(ctx, cfg.DatabaseURI)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	store, err := storage.NewStorage(db)
	if err != nil {
		log.WithError(err).Fatal("Failed to create storage")
	}

	go func() {
		if err := expiry.NewSweeper(store, cfg.VIPSweepEvery, log).Run(ctx); err != nil {
			log.WithError(err).Error("VIP expiry sweeper failed")
		}
	}()

	srv := &http.Server{
		Addr:    cfg.RunAddr,
		Handler: router.SetupRoutes(store, cfg, log),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Failed to shut down server")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("Failed to start server")
	}
	log.Info("Server stopped")
}
