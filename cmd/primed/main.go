// Package main implements primed, an HTTP service that answers prime
// enumeration requests and caches the results in memory.
//
// Configuration:
//   - PRIMED_ADDR: Listen address (default: ":8090")
//   - PRIMED_MAX_FULL_RANGE: Largest end the full sieve accepts (default: 1<<30)
//   - PRIMED_MAX_END: Largest end accepted in any mode (default: 100000000)
//   - PRIMED_CACHE_BUDGET: Total primes held by the result cache (default: 20000000)
//
// Example usage:
//
//	PRIMED_ADDR=:8090 ./primed
//	curl 'localhost:8090/primes?end=30'
//	curl 'localhost:8090/primes?end=1000000&mode=carried&segment=4096&count_only=1'
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/dreamware/primegen/internal/api"
	"github.com/dreamware/primegen/internal/cache"
	"github.com/dreamware/primegen/internal/config"
	"github.com/dreamware/primegen/internal/driver"
	"github.com/dreamware/primegen/internal/sieve"
)

// logFatal is a variable to allow mocking log.Fatal in tests.
var logFatal = log.Fatalf

const (
	defaultMaxEnd      uint64 = 100_000_000
	defaultCacheBudget        = 20_000_000
)

func main() {
	addr := getenv("PRIMED_ADDR", ":8090")
	maxFull := mustParseUint("PRIMED_MAX_FULL_RANGE", sieve.DefaultMaxFullRange)
	maxEnd := mustParseUint("PRIMED_MAX_END", defaultMaxEnd)
	budget := mustParseUint("PRIMED_CACHE_BUDGET", defaultCacheBudget)

	srv := newServer(cache.NewMemoryStore(int(budget)), maxFull, maxEnd)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("primed listening on %s (max end %d, full sieve up to %d)", addr, maxEnd, maxFull)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logFatal("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	log.Println("primed stopped")
}

type server struct {
	store    cache.Store
	maxFull  uint64
	maxEnd   uint64
	requests atomic.Uint64
	failures atomic.Uint64
}

func newServer(store cache.Store, maxFull, maxEnd uint64) *server {
	return &server{
		store:   store,
		maxFull: maxFull,
		maxEnd:  maxEnd,
	}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/primes", s.handlePrimes)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/info", s.handleInfo)
	return mux
}

// handlePrimes serves GET /primes. The generator runs on the request
// goroutine; results are cached per (mode, end, segment).
func (s *server) handlePrimes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.requests.Add(1)

	req, err := parsePrimesRequest(r)
	if err != nil {
		s.fail(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.End > s.maxEnd {
		s.fail(w, "end exceeds service limit "+strconv.FormatUint(s.maxEnd, 10), http.StatusRequestEntityTooLarge)
		return
	}

	cfg := config.Build(req.End)
	cfg.Progress = false
	cfg.MaxFullRange = s.maxFull
	if req.SegmentSize != 0 {
		cfg.SegmentSize = req.SegmentSize
	}
	if req.Mode != "" {
		mode, err := config.ParseMode(req.Mode)
		if err != nil {
			s.fail(w, err.Error(), http.StatusBadRequest)
			return
		}
		cfg.Mode = mode
	}
	if err := cfg.Validate(); err != nil {
		s.fail(w, err.Error(), http.StatusBadRequest)
		return
	}

	mode := cfg.Effective()
	key := cache.Key{Mode: string(mode), End: cfg.RangeEnd}
	if mode != config.ModeFull {
		key.SegmentSize = cfg.SegmentSize
	}

	primes, err := s.store.Get(key)
	cached := err == nil
	if !cached {
		res, err := driver.Generate(cfg, nil)
		switch {
		case errors.Is(err, sieve.ErrRangeTooLarge):
			s.fail(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		case errors.Is(err, config.ErrInvalidConfig):
			s.fail(w, err.Error(), http.StatusBadRequest)
			return
		case err != nil:
			s.fail(w, err.Error(), http.StatusInternalServerError)
			return
		}
		primes = res.Primes
		if err := s.store.Put(key, primes); err != nil {
			log.Printf("not caching %s: %v", key, err)
		}
		log.Printf("generated %s: %d primes in %s", key, len(primes), res.Elapsed)
	}

	window := driver.Window(primes, req.From)
	resp := api.PrimesResponse{
		Mode:        string(mode),
		Start:       cfg.RangeStart,
		End:         cfg.RangeEnd,
		SegmentSize: key.SegmentSize,
		From:        req.From,
		Count:       len(window),
		Digest:      driver.Digest(window),
		Cached:      cached,
	}
	if !req.CountOnly {
		resp.Primes = window
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// handleStats returns request counters and cache statistics
func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(api.StatsResponse{
		Requests: s.requests.Load(),
		Failures: s.failures.Load(),
		Cache:    s.store.Stats(),
	})
}

// handleInfo returns details about the host processor
func (s *server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(driver.Host())
}

func (s *server) fail(w http.ResponseWriter, msg string, code int) {
	s.failures.Add(1)
	http.Error(w, msg, code)
}

// parsePrimesRequest reads the /primes query parameters. end is required.
func parsePrimesRequest(r *http.Request) (api.PrimesRequest, error) {
	q := r.URL.Query()
	var req api.PrimesRequest
	var err error

	if q.Get("end") == "" {
		return req, errors.New("missing end")
	}
	if req.End, err = queryUint(q.Get("end"), "end"); err != nil {
		return req, err
	}
	if v := q.Get("segment"); v != "" {
		if req.SegmentSize, err = queryUint(v, "segment"); err != nil {
			return req, err
		}
	}
	if v := q.Get("from"); v != "" {
		if req.From, err = queryUint(v, "from"); err != nil {
			return req, err
		}
	}
	req.Mode = q.Get("mode")
	if v := q.Get("count_only"); v != "" {
		if req.CountOnly, err = strconv.ParseBool(v); err != nil {
			return req, errors.New("invalid count_only")
		}
	}
	return req, nil
}

func queryUint(v, name string) (uint64, error) {
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return n, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// mustParseUint reads an unsigned integer from the environment, falling back
// to def when unset and terminating on a malformed value.
func mustParseUint(k string, def uint64) uint64 {
	v := getenv(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		logFatal("invalid %s=%q: %v", k, v, err)
		return def
	}
	return n
}
