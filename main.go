// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/bonfire/cliparse"
	"github.com/danielhkuo/bonfire/db"
	"github.com/danielhkuo/bonfire/roster"
	"github.com/danielhkuo/bonfire/router"
	"github.com/danielhkuo/bonfire/sheets"
	"github.com/danielhkuo/bonfire/store"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	backend, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		slog.Error("backend setup failed", "backend", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer backend.Close()
	slog.Info("Backend ready", "backend", cfg.DatabaseType)

	svc := roster.NewService(backend)
	defer svc.Close()

	// Create server
	server := http.Server{
		Handler:           router.NewRouter(svc, cfg),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	<-ctrlc
	slog.Info("Shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shut down", "error", err)
	}
	slog.Info("Server closed")
}

// openStore connects the configured backend and brings its schema up to date
func openStore(ctx context.Context, cfg cliparse.Config) (store.Store, error) {
	switch cfg.DatabaseType {
	case cliparse.BackendSheets:
		client, err := sheets.NewGoogleClient(ctx, cfg.SheetID, cfg.ServiceAccount())
		if err != nil {
			return nil, err
		}
		report, err := sheets.Migrate(ctx, client, cfg.SeedDefaultItems)
		if err != nil {
			return nil, fmt.Errorf("spreadsheet migration failed: %w", err)
		}
		slog.Info("Spreadsheet ready",
			"created_tabs", report.CreatedTabs,
			"backfilled_rows", report.Backfilled,
			"seeded", report.Seeded,
		)
		return sheets.NewStore(client), nil
	case cliparse.BackendSQLite:
		return db.Setup(ctx, db.DriverSQLite, cfg.DatabaseURL, cfg.SeedDefaultItems)
	case cliparse.BackendPostgres:
		return db.Setup(ctx, db.DriverPostgres, cfg.DatabaseURL, cfg.SeedDefaultItems)
	default:
		return nil, fmt.Errorf("unsupported backend %q", cfg.DatabaseType)
	}
}
