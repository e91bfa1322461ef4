// Package metrics provides real-time request metrics for the quickstart
// endpoints.
//
// It uses a channel-based event pipeline to asynchronously collect, per route:
//   - Request counts
//   - Response times with percentile calculations (P50, P95, P99)
//   - HTTP status code distribution
//
// The collector runs in a dedicated goroutine and processes events without
// blocking the request path. Events are sent via buffered channels with
// non-blocking semantics, so a full buffer drops events instead of stalling
// a request. On shutdown the collector drains remaining events.
package metrics
