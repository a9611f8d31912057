// Package api is the HTTP client for the icebreaker gamecard and rating services.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/icebreaker-games/icebreaker/internal/cache"
	"github.com/icebreaker-games/icebreaker/internal/logging"
)

// Header names sent on every request.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

const (
	defaultTimeout = 10 * time.Second
	// maxBodyBytes bounds how much of a response body is read.
	maxBodyBytes = 4 << 20
)

// Client talks to the gamecard and rating APIs.
type Client struct {
	baseURL   string
	ratingURL string
	token     string
	http      *http.Client
	store     *cache.Store

	inflight singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithRatingURL sets the rating API root.
func WithRatingURL(u string) Option {
	return func(c *Client) { c.ratingURL = strings.TrimRight(u, "/") }
}

// WithToken sets the bearer token sent on write requests.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithCache caches list responses in store.
func WithCache(store *cache.Store) Option {
	return func(c *Client) { c.store = store }
}

// New creates a client for the gamecard API rooted at baseURL
// (e.g. http://localhost:8080/api/gamecard).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the gamecard API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes one API call. payload is the encoded body, if any.
type request struct {
	method  string
	url     string
	payload []byte
	auth    bool
}

// newRequest encodes body once so the same bytes key the cache and go on the wire.
func newRequest(method, url string, body any, auth bool) (request, error) {
	req := request{method: method, url: url, auth: auth}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return request{}, fmt.Errorf("encoding request body: %w", err)
		}
		req.payload = payload
	}
	return req, nil
}

// do executes req and returns the raw success body. Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	var body io.Reader
	if req.payload != nil {
		body = bytes.NewReader(req.payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	httpReq.Header.Set(HeaderRequestID, requestID)
	if traceID := logging.TraceIDFromContext(ctx); traceID != "" {
		httpReq.Header.Set(HeaderTraceID, traceID)
	}
	if req.auth && c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	log := logging.FromContext(ctx)
	start := time.Now()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Debug().Ctx(ctx).
			Str("component", "api").
			Str("method", req.method).
			Str("url", req.url).
			Str("request_id", requestID).
			Err(err).
			Msg("request failed")
		return nil, fmt.Errorf("%s %s: %w", req.method, req.url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	log.Debug().Ctx(ctx).
		Str("component", "api").
		Str("method", req.method).
		Str("url", req.url).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, data)
	}
	return data, nil
}

// newAPIError extracts the server message from an error body.
func newAPIError(status int, data []byte) *APIError {
	var msg struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(data, &msg); err == nil {
		apiErr.Message = msg.Message
		if apiErr.Message == "" {
			apiErr.Message = msg.Error
		}
	}
	return apiErr
}

// get performs a GET, sharing the response between identical concurrent calls.
// The shared call runs detached from any one caller so a cancelled caller
// cannot fail the others; each caller stops waiting when its own ctx is done.
// The HTTP client timeout still bounds the shared call.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(http.MethodGet+" "+url, func() (any, error) {
		return c.do(detached, request{method: http.MethodGet, url: url})
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%s %s: %w", http.MethodGet, url, ctx.Err())
	}
}

// cached serves req from the store when possible and stores fresh responses.
func (c *Client) cached(ctx context.Context, req request, fetch func() ([]byte, error)) ([]byte, error) {
	if !c.store.IsEnabled() {
		return fetch()
	}

	key := cache.Key(req.method, req.url, req.payload)
	log := logging.FromContext(ctx)

	if entry, err := c.store.Get(key); err == nil {
		log.Debug().Ctx(ctx).
			Str("component", "api").
			Str("url", req.url).
			Dur("age", entry.Age()).
			Msg("cache hit")
		return entry.Data, nil
	} else if !errors.Is(err, cache.ErrNotFound) && !errors.Is(err, cache.ErrExpired) {
		log.Warn().Ctx(ctx).Str("component", "api").Err(err).Msg("cache read failed")
	}

	data, err := fetch()
	if err != nil {
		return nil, err
	}
	if setErr := c.store.Set(key, data); setErr != nil {
		log.Warn().Ctx(ctx).Str("component", "api").Err(setErr).Msg("cache write failed")
	}
	return data, nil
}

// Invalidate drops every cached list response so the next list call hits the server.
func (c *Client) Invalidate() error {
	if !c.store.IsEnabled() {
		return nil
	}
	if _, err := c.store.Clear(); err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	return nil
}

func decode[T any](data []byte) (T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decoding response: %w", err)
	}
	return out, nil
}
