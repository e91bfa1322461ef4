// Loadtest is a concurrent HTTP load testing tool that measures throughput,
// latency percentiles, and status code distribution for the quickstart
// endpoints.
//
// Usage:
//
//	go run ./scripts/loadtest -url http://localhost:8080/api/httpget -concurrency 10 -requests 1000
//	go run ./scripts/loadtest -url http://localhost:8080/api/httppost -method POST -requests 500 -out summary.json
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

func main() {
	var (
		url         = flag.String("url", "http://localhost:8080/api/httpget", "Target URL")
		concurrency = flag.Int("concurrency", 10, "Number of concurrent workers")
		requests    = flag.Int("requests", 100, "Total number of requests to send")
		method      = flag.String("method", "GET", "HTTP method")
		body        = flag.String("body", `{"name":"Load","age":30}`, "Request body for non-GET methods")
		contentType = flag.String("content-type", "application/json", "Content-Type header")
		timeoutSec  = flag.Int("timeout", 10, "Per-request timeout in seconds")
		outJSON     = flag.String("out", "", "Write JSON summary to this file (optional)")
		verbose     = flag.Bool("v", false, "Verbose per-request logging to stdout")
	)
	flag.Parse()

	client := &http.Client{Timeout: time.Duration(*timeoutSec) * time.Second}

	jobs := make(chan int)
	var wg sync.WaitGroup

	var total, success, failure int32

	var latencies []time.Duration
	var latMu sync.Mutex

	statusCodes := make(map[int]int32)
	var statusMu sync.Mutex

	testStart := time.Now()

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range jobs {
				atomic.AddInt32(&total, 1)
				start := time.Now()

				var reqBody io.Reader
				if *method != http.MethodGet {
					reqBody = bytes.NewBufferString(*body)
				}

				req, err := http.NewRequest(*method, *url, reqBody)
				if err != nil {
					atomic.AddInt32(&failure, 1)
					continue
				}
				req.Header.Set("Content-Type", *contentType)

				resp, err := client.Do(req)
				dur := time.Since(start)

				latMu.Lock()
				latencies = append(latencies, dur)
				latMu.Unlock()

				if err != nil {
					atomic.AddInt32(&failure, 1)
					if *verbose {
						fmt.Printf("[%d] idx=%d error=%v\n", workerID, idx, err)
					}
					continue
				}

				statusMu.Lock()
				statusCodes[resp.StatusCode]++
				statusMu.Unlock()

				if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
					atomic.AddInt32(&success, 1)
				} else {
					atomic.AddInt32(&failure, 1)
				}

				if *verbose {
					fmt.Printf("[%d] idx=%d status=%d duration=%s\n", workerID, idx, resp.StatusCode, dur)
				}

				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
			}
		}(i)
	}

	for idx := 0; idx < *requests; idx++ {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	elapsed := time.Since(testStart)

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	summary := map[string]any{
		"url":          *url,
		"method":       *method,
		"requests":     atomic.LoadInt32(&total),
		"success":      atomic.LoadInt32(&success),
		"failure":      atomic.LoadInt32(&failure),
		"elapsed":      elapsed.String(),
		"rps":          float64(*requests) / elapsed.Seconds(),
		"status_codes": statusCodes,
		"p50":          percentile(latencies, 0.50).String(),
		"p90":          percentile(latencies, 0.90).String(),
		"p95":          percentile(latencies, 0.95).String(),
		"p99":          percentile(latencies, 0.99).String(),
	}

	b, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(b))

	if *outJSON != "" {
		if err := os.WriteFile(*outJSON, b, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write summary: %v\n", err)
			os.Exit(1)
		}
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
