package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/primegen/internal/api"
	"github.com/dreamware/primegen/internal/cache"
	"github.com/dreamware/primegen/internal/driver"
	"github.com/dreamware/primegen/internal/sieve"
)

func newTestServer() *server {
	return newServer(cache.NewMemoryStore(0), 1_000_000, 10_000_000)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodePrimes(t *testing.T, w *httptest.ResponseRecorder) api.PrimesResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp api.PrimesResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

// TestHandlePrimes tests the prime enumeration handler
func TestHandlePrimes(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantMode  string
		wantCount int
		wantFirst uint64
	}{
		{
			name:      "default mode",
			target:    "/primes?end=30",
			wantMode:  "full",
			wantCount: 10,
			wantFirst: 2,
		},
		{
			name:      "segmented drops tail",
			target:    "/primes?end=950&mode=segmented&segment=100",
			wantMode:  "segmented",
			wantCount: 154,
			wantFirst: 2,
		},
		{
			name:      "carried keeps tail",
			target:    "/primes?end=950&mode=carried&segment=100",
			wantMode:  "carried",
			wantCount: 161,
			wantFirst: 2,
		},
		{
			name:      "window from",
			target:    "/primes?end=100&from=90",
			wantMode:  "full",
			wantCount: 1,
			wantFirst: 97,
		},
		{
			name:      "auto above full limit",
			target:    "/primes?end=2000000&mode=auto&segment=65536",
			wantMode:  "carried",
			wantCount: 148933,
			wantFirst: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer()
			resp := decodePrimes(t, get(t, srv.routes(), tt.target))

			assert.Equal(t, tt.wantMode, resp.Mode)
			assert.Equal(t, tt.wantCount, resp.Count)
			require.Len(t, resp.Primes, tt.wantCount)
			assert.Equal(t, tt.wantFirst, resp.Primes[0])
			assert.Equal(t, driver.Digest(resp.Primes), resp.Digest)
			assert.False(t, resp.Cached)
		})
	}
}

func TestHandlePrimesCountOnly(t *testing.T) {
	srv := newTestServer()
	resp := decodePrimes(t, get(t, srv.routes(), "/primes?end=1000000&count_only=1"))

	assert.Equal(t, 78498, resp.Count)
	assert.Nil(t, resp.Primes)
	assert.Equal(t, driver.Digest(sieve.Eratosthenes(1_000_000)), resp.Digest)
}

func TestHandlePrimesCaches(t *testing.T) {
	srv := newTestServer()
	h := srv.routes()

	first := decodePrimes(t, get(t, h, "/primes?end=500&mode=carried&segment=64"))
	second := decodePrimes(t, get(t, h, "/primes?end=500&mode=carried&segment=64"))
	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Primes, second.Primes)

	// A different segment size is a different result.
	third := decodePrimes(t, get(t, h, "/primes?end=500&mode=carried&segment=32"))
	assert.False(t, third.Cached)

	// Segment size does not matter to the full sieve.
	decodePrimes(t, get(t, h, "/primes?end=500&segment=10"))
	again := decodePrimes(t, get(t, h, "/primes?end=500&segment=20"))
	assert.True(t, again.Cached)

	stats := srv.store.Stats()
	assert.Equal(t, 3, stats.Entries)
}

func TestHandlePrimesErrors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantCode int
	}{
		{name: "missing end", target: "/primes", wantCode: http.StatusBadRequest},
		{name: "negative end", target: "/primes?end=-1", wantCode: http.StatusBadRequest},
		{name: "bad segment", target: "/primes?end=10&segment=x", wantCode: http.StatusBadRequest},
		{name: "narrow segment", target: "/primes?end=10&mode=segmented&segment=1", wantCode: http.StatusBadRequest},
		{name: "unknown mode", target: "/primes?end=10&mode=wheel", wantCode: http.StatusBadRequest},
		{name: "bad count_only", target: "/primes?end=10&count_only=maybe", wantCode: http.StatusBadRequest},
		{name: "bad from", target: "/primes?end=10&from=x", wantCode: http.StatusBadRequest},
		{name: "full above limit", target: "/primes?end=2000000&mode=full", wantCode: http.StatusRequestEntityTooLarge},
		{name: "above service limit", target: "/primes?end=20000000&mode=carried", wantCode: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer()
			w := get(t, srv.routes(), tt.target)
			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
			assert.Equal(t, uint64(1), srv.failures.Load())
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer()
	h := srv.routes()

	for _, path := range []string{"/primes?end=10", "/stats", "/info"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, path)
	}
}

func TestHandleStats(t *testing.T) {
	srv := newTestServer()
	h := srv.routes()

	get(t, h, "/primes?end=100")
	get(t, h, "/primes?end=100")
	get(t, h, "/primes")

	w := get(t, h, "/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var stats api.StatsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, uint64(3), stats.Requests)
	assert.Equal(t, uint64(1), stats.Failures)
	assert.Equal(t, 1, stats.Cache.Entries)
	assert.Equal(t, 25, stats.Cache.Primes)
	assert.Equal(t, uint64(1), stats.Cache.Hits)
}

func TestHandleInfo(t *testing.T) {
	srv := newTestServer()
	w := get(t, srv.routes(), "/info")
	require.Equal(t, http.StatusOK, w.Code)

	var info driver.HostInfo
	require.NoError(t, json.NewDecoder(w.Body).Decode(&info))
	assert.Equal(t, driver.Host(), info)
}

func TestHealth(t *testing.T) {
	srv := newTestServer()
	w := get(t, srv.routes(), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestMustParseUint tests environment parsing with a mocked logFatal
func TestMustParseUint(t *testing.T) {
	original := logFatal
	defer func() { logFatal = original }()

	var fatal string
	logFatal = func(format string, v ...any) {
		fatal = fmt.Sprintf(format, v...)
	}

	assert.Equal(t, uint64(7), mustParseUint("PRIMED_TEST_UNSET", 7))

	os.Setenv("PRIMED_TEST_VALUE", "42")
	defer os.Unsetenv("PRIMED_TEST_VALUE")
	assert.Equal(t, uint64(42), mustParseUint("PRIMED_TEST_VALUE", 7))
	assert.Empty(t, fatal)

	os.Setenv("PRIMED_TEST_BAD", "lots")
	defer os.Unsetenv("PRIMED_TEST_BAD")
	assert.Equal(t, uint64(7), mustParseUint("PRIMED_TEST_BAD", 7))
	assert.Contains(t, fatal, "PRIMED_TEST_BAD")
}
