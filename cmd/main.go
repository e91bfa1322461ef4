package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/abossard/functions-quickstart-go-http-azd/config"
	"github.com/abossard/functions-quickstart-go-http-azd/internal/httpserver"
	"github.com/abossard/functions-quickstart-go-http-azd/internal/metrics"
	"github.com/abossard/functions-quickstart-go-http-azd/pkg/logging"
)

func main() {
	log := logging.Setup("functions")

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	collector := metrics.NewCollector(1000, logging.Logger("metrics"))
	collector.Start(ctx)

	mux := setupRouter(cfg, log, collector)

	srv, err := httpserver.New(cfg.Server.Address, mux)
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("Listening",
		slog.String("address", cfg.Server.Address),
		slog.String("environment", cfg.Server.Environment))

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
		if err := <-srvErrCh; err != nil {
			log.Error("Server exited with error", slog.Any("err", err))
		}
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting server", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func demoClient(cfg *config.Config) *http.Client {
	if len(cfg.Demo.URLs) == 0 {
		return nil
	}

	return &http.Client{Timeout: cfg.DemoTimeout()}
}
