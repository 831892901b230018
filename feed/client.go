package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/odp-amsterdam/apperr"
	"golang.org/x/time/rate"
)

// Version of the client, sent in the User-Agent header.
const Version = "1.0.0"

const (
	// DefaultTimeout bounds a request to the open-data platform.
	DefaultTimeout = 15 * time.Second
	// LegacyTimeout was used by the retired garages endpoint on opd.it-t.nl.
	LegacyTimeout = 10 * time.Second

	acceptHeader = "application/json, text/plain, application/geo+json"
)

// DefaultUserAgent identifies the client and version.
var DefaultUserAgent = "GoODPAmsterdam/" + Version

// allowedContentTypes are accepted response content types; the body is JSON regardless.
var allowedContentTypes = []string{"application/json", "text/plain", "application/geo+json"}

// Client fetches and decodes JSON documents from the open-data platform.
type Client struct {
	mu             sync.Mutex
	httpClient     *http.Client
	ownsHTTPClient bool

	timeout   time.Duration
	userAgent string
	limiter   *rate.Limiter
	log       *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient uses a caller owned HTTP client. Close never releases it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
		c.ownsHTTPClient = false
	}
}

// WithTimeout sets the per-request timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRateLimit spaces requests to at most rps per second. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a new feed client.
func New(opts ...Option) *Client {
	c := &Client{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// session returns the HTTP client, creating an owned one on first use.
func (c *Client) session() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.httpClient == nil {
		c.httpClient = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
		c.ownsHTTPClient = true
	}
	return c.httpClient
}

// Fetch issues a GET to rawURL and returns the decoded JSON document.
func (c *Client) Fetch(ctx context.Context, rawURL string, params url.Values) (any, error) {
	return c.Request(ctx, http.MethodGet, rawURL, params)
}

// Request sends one request to the open-data platform and decodes the JSON body.
// Numbers are decoded as json.Number.
func (c *Client) Request(ctx context.Context, method, rawURL string, params url.Values) (any, error) {
	body, err := c.do(ctx, method, rawURL, params)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		c.log.Error("odp decode failed", "error", err, "url", rawURL)
		return nil, apperr.Wrap(apperr.KindData, "Failed to decode the Open Data Platform API response", err).WithOp("feed.Request")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level JSON value")
		}
		c.log.Error("odp decode failed", "error", err, "url", rawURL)
		return nil, apperr.Wrap(apperr.KindData, "Failed to decode the Open Data Platform API response", err).WithOp("feed.Request")
	}
	return doc, nil
}

func (c *Client) do(ctx context.Context, method, rawURL string, params url.Values) ([]byte, error) {
	reqURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, apperr.Connection("Invalid Open Data Platform API URL", err).WithOp("feed.Request")
	}
	if len(params) > 0 {
		q := reqURL.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		reqURL.RawQuery = q.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, c.connectionError(err, reqURL.String())
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return nil, apperr.Connection("Failed to create Open Data Platform API request", err).WithOp("feed.Request")
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.session().Do(req)
	if err != nil {
		return nil, c.connectionError(err, reqURL.String())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("odp upstream error", "status", resp.StatusCode, "url", reqURL.String())
		return nil, apperr.New(apperr.KindConnection,
			fmt.Sprintf("Error occurred while communicating with the Open Data Platform API: status %d", resp.StatusCode)).
			WithOp("feed.Request").
			WithDetails(map[string]any{"status": resp.StatusCode, "url": reqURL.String()})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.connectionError(err, reqURL.String())
	}

	contentType := resp.Header.Get("Content-Type")
	if !allowedContentType(contentType) {
		c.log.Error("odp unexpected content type", "content_type", contentType, "url", reqURL.String())
		return nil, apperr.Data("Unexpected content type response from the Open Data Platform API").
			WithOp("feed.Request").
			WithDetails(map[string]string{"Content-Type": contentType, "response": string(body)})
	}

	c.log.Debug("odp request",
		"method", method,
		"url", reqURL.String(),
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return body, nil
}

func (c *Client) connectionError(err error, reqURL string) *apperr.Error {
	c.log.Error("odp request failed", "error", err, "url", reqURL)
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Connection("Timeout occurred while connecting to the Open Data Platform API", err).WithOp("feed.Request")
	}
	return apperr.Connection("Error occurred while communicating with the Open Data Platform API", err).WithOp("feed.Request")
}

func allowedContentType(contentType string) bool {
	for _, t := range allowedContentTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}

// Close releases the HTTP client if it was created by this Client.
// Caller supplied clients are left untouched.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.httpClient != nil && c.ownsHTTPClient {
		c.httpClient.CloseIdleConnections()
		c.httpClient = nil
		c.ownsHTTPClient = false
	}
	return nil
}

// OwnsHTTPClient reports whether the current HTTP client was created internally.
func (c *Client) OwnsHTTPClient() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ownsHTTPClient
}
