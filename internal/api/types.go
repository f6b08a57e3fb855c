package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dreamware/primegen/internal/cache"
)

// PrimesRequest holds the query parameters of GET /primes.
type PrimesRequest struct {
	End         uint64 `json:"end"`
	Mode        string `json:"mode,omitempty"`
	SegmentSize uint64 `json:"segment_size,omitempty"`
	From        uint64 `json:"from,omitempty"`
	CountOnly   bool   `json:"count_only,omitempty"`
}

// Query encodes r as URL query parameters, omitting zero values.
func (r PrimesRequest) Query() url.Values {
	q := url.Values{}
	q.Set("end", strconv.FormatUint(r.End, 10))
	if r.Mode != "" {
		q.Set("mode", r.Mode)
	}
	if r.SegmentSize != 0 {
		q.Set("segment", strconv.FormatUint(r.SegmentSize, 10))
	}
	if r.From != 0 {
		q.Set("from", strconv.FormatUint(r.From, 10))
	}
	if r.CountOnly {
		q.Set("count_only", "1")
	}
	return q
}

// PrimesResponse is the body of GET /primes.
// Count and Digest describe the primes >= From; Primes is omitted when the
// request asked for the count only.
type PrimesResponse struct {
	Mode        string   `json:"mode"`
	Start       uint64   `json:"start"`
	End         uint64   `json:"end"`
	SegmentSize uint64   `json:"segment_size,omitempty"`
	From        uint64   `json:"from,omitempty"`
	Count       int      `json:"count"`
	Digest      string   `json:"digest"`
	Cached      bool     `json:"cached"`
	Primes      []uint64 `json:"primes,omitempty"`
}

// StatsResponse is the body of GET /stats.
type StatsResponse struct {
	Requests uint64           `json:"requests"`
	Failures uint64           `json:"failures"`
	Cache    cache.StoreStats `json:"cache"`
}

var httpClient = &http.Client{Timeout: 5 * time.Second}

// GetJSON issues a GET to url and decodes the JSON response into out.
func GetJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("http %s: %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchPrimes asks the primed service at base for the primes described by r.
func FetchPrimes(ctx context.Context, base string, r PrimesRequest) (PrimesResponse, error) {
	var out PrimesResponse
	err := GetJSON(ctx, base+"/primes?"+r.Query().Encode(), &out)
	return out, err
}
