package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// GreetHandler serves GET /api/httpget. It greets the caller by the "name"
// query parameter and, when demo URLs are configured, performs a round of
// outbound requests to show request logging at different severities.
type GreetHandler struct {
	logger   *slog.Logger
	client   *http.Client
	demoURLs []string
}

func NewGreetHandler(logger *slog.Logger, client *http.Client, demoURLs []string) *GreetHandler {
	return &GreetHandler{
		logger:   logger,
		client:   client,
		demoURLs: demoURLs,
	}
}

func (h *GreetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "World"
	}

	h.logger.Info("Processing GET request", slog.String("name", name))

	h.runDemoRequests(r.Context())

	fmt.Fprintf(w, "Hello, %s!", name)
}

// runDemoRequests never fails the caller's request; outbound problems are
// logged at WARNING and skipped.
func (h *GreetHandler) runDemoRequests(ctx context.Context) {
	if h.client == nil {
		return
	}

	for _, demoURL := range h.demoURLs {
		h.logger.Debug("Requesting demo URL", slog.String("url", demoURL))

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, demoURL, nil)
		if err != nil {
			h.logger.Warn("Failed to build demo request",
				slog.String("url", demoURL),
				slog.String("error", err.Error()))
			continue
		}

		resp, err := h.client.Do(req)
		if err != nil {
			h.logger.Warn("Demo request failed",
				slog.String("url", demoURL),
				slog.String("error", err.Error()))
			continue
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		h.logger.Info("Demo request completed",
			slog.String("url", demoURL),
			slog.Int("status", resp.StatusCode))
	}
}
