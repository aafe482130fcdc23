// Package fetch provides the rate-limited HTTP client shared by all crawl
// drivers. Every request from one Client is paced through a token bucket so
// that at least the configured delay elapses between request starts, and
// failures come back as typed errors callers can branch on.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMaxBodySize caps response bodies at 5 MB
const DefaultMaxBodySize = 5 << 20

// Options configures a Client
type Options struct {
	// Timeout is the per-request timeout (default 30s)
	Timeout time.Duration
	// Delay is the minimum gap between request starts (0 disables pacing)
	Delay time.Duration
	// UserAgent is sent on every request
	UserAgent string
	// RespectRobots gates requests on each host's robots.txt
	RespectRobots bool
	// MaxBodySize caps how many response bytes are read (default 5 MB)
	MaxBodySize int64
}

// Client fetches pages with a minimum delay between request starts. The
// limiter is owned by the Client, so every caller sharing one Client shares
// one pace; separate Clients pace independently.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	robots    *robotsCache // nil when robots checks are disabled
	maxBody   int64
}

// New creates a Client from opts
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = DefaultMaxBodySize
	}

	httpClient := &http.Client{Timeout: opts.Timeout}

	c := &Client{
		http: httpClient,
		// burst of one: the first request goes out immediately, every
		// later one waits for the bucket to refill
		limiter:   rate.NewLimiter(rate.Every(opts.Delay), 1),
		userAgent: opts.UserAgent,
		maxBody:   opts.MaxBodySize,
	}

	if opts.RespectRobots {
		c.robots = newRobotsCache(httpClient, opts.UserAgent)
	}

	return c
}

// Get fetches rawURL and returns the response body. Non-2xx responses,
// timeouts, and transport failures return a *Error; robots.txt denials
// return a *Error with KindRobots before any page request is sent.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if c.robots != nil && !c.robots.allowed(ctx, rawURL) {
		return nil, &Error{Kind: KindRobots, URL: rawURL}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting to fetch %s: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", rawURL, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classify(rawURL, err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: KindStatus, URL: rawURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, classify(rawURL, err)
	}

	return body, nil
}

// classify maps a transport error to a typed fetch error
func classify(url string, err error) *Error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, URL: url, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, URL: url, Err: err}
	}
	return &Error{Kind: KindNetwork, URL: url, Err: err}
}
