package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devjournal/cmd/internal/config"
	"devjournal/cmd/internal/http/handler"
	"devjournal/cmd/internal/routes"
	"devjournal/cmd/internal/service"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loads env vars depending on environment
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	log.SetLevel(cfg.Logging.Level)

	store, err := openStore(ctx, cfg.Database, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.Database.Driver, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Errorf("failed to close store: %v", err)
		}
	}()

	entryService := service.NewEntryService(store.Entries, service.NewValidator())
	entryRoutes := handler.NewEntryDefault(entryService)

	e := routes.New(routes.Options{
		BodyLimit:    cfg.Server.BodyLimit,
		AllowOrigins: cfg.CORS.AllowedOrigins,
		LogRequests:  true,
	}, entryRoutes)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s (%s, %s store)", cfg.Server.Addr(), cfg.Server.Env, cfg.Database.Driver)
		errCh <- e.Start(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("server stopped: %v", err)
		}
		return
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
}
