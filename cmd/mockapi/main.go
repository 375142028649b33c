package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anhqhe/orderfood/internal/config"
	"github.com/anhqhe/orderfood/internal/logging"
	"github.com/anhqhe/orderfood/internal/mockapi"
	"github.com/jonboulle/clockwork"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadMockAPI()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	srv, err := mockapi.NewServer(cfg, clockwork.NewRealClock())
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		slog.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Failed to shut down cleanly", "error", err)
		}
	}()

	slog.Info("Development API server listening", "port", cfg.Port)
	if err := srv.Start(cfg.Port); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
