package metrics

import (
	"net/http"
	"time"
)

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records one RequestReceived and one ResponseCompleted event per
// request under the given route name. Emission is non-blocking; a nil
// collector disables recording.
func (c *Collector) Middleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			next.ServeHTTP(w, r)
			return
		}

		c.emit(MetricEvent{
			Type:      EventRequestReceived,
			Timestamp: time.Now(),
			Route:     route,
		})

		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		c.emit(MetricEvent{
			Type:       EventResponseCompleted,
			Timestamp:  time.Now(),
			Route:      route,
			Duration:   time.Since(start),
			StatusCode: wrapped.statusCode,
		})
	})
}

func (c *Collector) emit(event MetricEvent) {
	select {
	case c.eventCh <- event:
	default:
	}
}
