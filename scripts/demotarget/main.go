// Demotarget is a local stand-in for the public endpoints the GET handler
// calls when demo URLs are configured. It mimics the httpbin routes the
// quickstart points at by default.
//
// Usage:
//
//	go run ./scripts/demotarget -port 8081
//
// Routes:
//
//	/get              JSON echo of the request with a unique id
//	/status/{code}    responds with the given status code
//	/delay/{seconds}  sleeps before responding (capped at 10s)
//	/health           liveness probe
package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// newUUID generates a random v4 UUID per RFC 4122.
func newUUID() string {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		return ""
	}
	// set version (4) and variant bits per RFC 4122
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	// format as hex groups
	return fmt.Sprintf("%s-%s-%s-%s-%s",
		hex.EncodeToString(b[0:4]),
		hex.EncodeToString(b[4:6]),
		hex.EncodeToString(b[6:8]),
		hex.EncodeToString(b[8:10]),
		hex.EncodeToString(b[10:16]),
	)
}

func main() {
	port := flag.Int("port", 8081, "port to listen on")
	flag.Parse()

	mux := http.NewServeMux()

	mux.HandleFunc("/get", func(w http.ResponseWriter, r *http.Request) {
		log.Printf("request: method=%s path=%s from=%s", r.Method, r.URL.Path, r.RemoteAddr)

		resp := map[string]any{
			"id":      newUUID(),
			"method":  r.Method,
			"headers": r.Header,
			"args":    r.URL.Query(),
		}
		b, _ := json.Marshal(resp)
		w.Header().Set("Content-Type", "application/json")
		w.Write(b)
	})

	mux.HandleFunc("/status/", func(w http.ResponseWriter, r *http.Request) {
		code, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/status/"))
		if err != nil || code < 100 || code > 599 {
			http.Error(w, "invalid status code", http.StatusBadRequest)
			return
		}
		log.Printf("request: path=%s from=%s -> %d", r.URL.Path, r.RemoteAddr, code)
		w.WriteHeader(code)
	})

	mux.HandleFunc("/delay/", func(w http.ResponseWriter, r *http.Request) {
		seconds, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/delay/"))
		if err != nil || seconds < 0 {
			http.Error(w, "invalid delay", http.StatusBadRequest)
			return
		}
		if seconds > 10 {
			seconds = 10
		}
		log.Printf("request: path=%s from=%s delay=%ds", r.URL.Path, r.RemoteAddr, seconds)
		time.Sleep(time.Duration(seconds) * time.Second)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("starting demo target on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
