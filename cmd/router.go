package main

import (
	"log/slog"
	"net/http"

	"github.com/abossard/functions-quickstart-go-http-azd/config"
	"github.com/abossard/functions-quickstart-go-http-azd/internal/handler"
	"github.com/abossard/functions-quickstart-go-http-azd/internal/metrics"
)

func setupRouter(cfg *config.Config, log *slog.Logger, collector *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()

	greet := handler.NewGreetHandler(log, demoClient(cfg), cfg.Demo.URLs)
	hello := handler.NewHelloHandler(log)

	mux.Handle("/api/httpget", collector.Middleware("httpget", greet))
	mux.Handle("/api/httppost", collector.Middleware("httppost", hello))
	mux.HandleFunc("/api/metrics", collector.Handler())

	return mux
}
