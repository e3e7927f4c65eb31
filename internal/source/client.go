// Package source fetches the user aggregates collection the dashboard renders.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/user-dashboard/internal/models"
)

// ErrFetch wraps every failure to obtain the users response
var ErrFetch = errors.New("fetch users")

// maxBodyBytes caps how much of a response body is read
const maxBodyBytes = 32 << 20

// Response is the envelope returned by the users endpoint.
// Metadata is kept raw so a malformed collection can degrade to empty.
type Response struct {
	Message    string          `json:"message"`
	StatusCode int             `json:"statusCode"`
	Metadata   json.RawMessage `json:"metadata"`
}

// Records decodes Metadata, returning an empty collection if it is not an array
func (r *Response) Records() []models.UserAggregateRecord {
	if r == nil {
		return []models.UserAggregateRecord{}
	}
	return models.DecodeCollection(r.Metadata)
}

// Fetcher retrieves the users response
type Fetcher interface {
	FetchUsers(ctx context.Context) (*Response, error)
}

// Client fetches the users endpoint over HTTP
type Client struct {
	url     string
	timeout time.Duration
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a Client for the given endpoint URL
func NewClient(url string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		url:     url,
		timeout: timeout,
		http:    &http.Client{},
		log:     log.With().Str("component", "source").Logger(),
	}
}

// WithHTTPClient replaces the underlying http.Client
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// FetchUsers performs one GET against the endpoint. It does not retry.
func (c *Client) FetchUsers(ctx context.Context) (*Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrFetch, err)
	}

	c.log.Debug().
		Str("url", c.url).
		Int("status", resp.StatusCode).
		Int("metadata_bytes", len(out.Metadata)).
		Dur("duration", time.Since(start)).
		Msg("Fetched users")

	return &out, nil
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context) (*Response, error)

// FetchUsers calls f(ctx)
func (f FetcherFunc) FetchUsers(ctx context.Context) (*Response, error) {
	return f(ctx)
}
