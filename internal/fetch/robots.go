package fetch

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// robotsTTL is how long cached robots.txt rules stay fresh
const robotsTTL = 24 * time.Hour

// robotsCache lazily fetches and caches per-host robots.txt rules with a TTL.
// Retrieval and parse failures fail open: a host whose robots.txt cannot be
// read is treated as allowing everything, like a missing file would.
type robotsCache struct {
	client *http.Client
	agent  string
	ttl    time.Duration

	mu      sync.Mutex
	entries map[string]*robotsEntry // keyed by host
}

type robotsEntry struct {
	data      *robotstxt.RobotsData // nil when the fetch failed
	fetchedAt time.Time
}

func newRobotsCache(client *http.Client, agent string) *robotsCache {
	return &robotsCache{
		client:  client,
		agent:   agent,
		ttl:     robotsTTL,
		entries: make(map[string]*robotsEntry),
	}
}

// allowed reports whether rawURL may be fetched under its host's robots.txt
func (rc *robotsCache) allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return true
	}

	data := rc.lookup(ctx, u)
	if data == nil {
		return true
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	return data.TestAgent(path, rc.agent)
}

func (rc *robotsCache) lookup(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	rc.mu.Lock()
	entry, ok := rc.entries[u.Host]
	if ok && time.Since(entry.fetchedAt) <= rc.ttl {
		rc.mu.Unlock()
		return entry.data
	}
	rc.mu.Unlock()

	data := rc.fetch(ctx, u)

	// Failures are cached too, so an unreachable robots.txt is not
	// re-requested before every page.
	rc.mu.Lock()
	rc.entries[u.Host] = &robotsEntry{data: data, fetchedAt: time.Now()}
	rc.mu.Unlock()

	return data
}

func (rc *robotsCache) fetch(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	if rc.agent != "" {
		req.Header.Set("User-Agent", rc.agent)
	}

	resp, err := rc.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close() // nolint:errcheck

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return data
}
