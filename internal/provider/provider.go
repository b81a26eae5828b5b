// Package provider is the HTTP client for the upstream timing-data
// service. The upstream is treated as a black box returning materialized
// session documents; no retries are attempted here.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pitwall-data/pitwall.report/internal/f1"
	"github.com/pitwall-data/pitwall.report/internal/httputil"
	"github.com/pitwall-data/pitwall.report/internal/monitoring"
)

// Session types accepted by the upstream.
var sessionTypes = map[string]bool{
	"FP1": true, "FP2": true, "FP3": true,
	"Q": true, "S": true, "R": true,
}

// ValidSessionType reports whether s names a session the upstream serves.
func ValidSessionType(s string) bool { return sessionTypes[s] }

// Client talks to the timing-data provider.
type Client struct {
	baseURL string
	http    httputil.HTTPClient
}

// NewClient creates a provider client. hc may be nil, in which case the
// default HTTP client is used.
func NewClient(baseURL string, hc httputil.HTTPClient) *Client {
	if hc == nil {
		hc = httputil.NewStandardClient(nil)
	}
	return &Client{baseURL: baseURL, http: hc}
}

// get fetches path with query params and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("provider: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("provider: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("provider: %s returned %d: %s", path, resp.StatusCode, snippet)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("provider: decode %s response: %w", path, err)
	}
	return nil
}

// LoadSession fetches the full session document for one
// (year, round, session) key.
func (c *Client) LoadSession(ctx context.Context, year, round int, session string) (*f1.Session, error) {
	if !ValidSessionType(session) {
		return nil, fmt.Errorf("provider: unknown session type %q", session)
	}
	params := url.Values{}
	params.Set("year", strconv.Itoa(year))
	params.Set("round", strconv.Itoa(round))
	params.Set("session", session)

	monitoring.Logf("provider: loading session year=%d round=%d session=%s", year, round, session)
	var doc f1.Session
	if err := c.get(ctx, "/v1/session", params, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Schedule fetches the race schedule for a season.
func (c *Client) Schedule(ctx context.Context, year int) ([]f1.RaceInfo, error) {
	params := url.Values{}
	params.Set("year", strconv.Itoa(year))

	var races []f1.RaceInfo
	if err := c.get(ctx, "/v1/schedule", params, &races); err != nil {
		return nil, err
	}
	return races, nil
}
