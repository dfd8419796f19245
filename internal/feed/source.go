package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// SourceKind distinguishes how a feed payload is obtained.
type SourceKind string

const (
	// SourceURL means Payload is a fetchable address.
	SourceURL SourceKind = "url"
	// SourceFile means Payload is raw calendar-feed text supplied directly.
	SourceFile SourceKind = "file"
)

// Source describes one external calendar feed.
type Source struct {
	Kind    SourceKind
	Payload string
}

// RawEvent is the intermediate event shape produced by the adapter before
// normalization. Times are already concrete; no string timestamps leave this
// package.
type RawEvent struct {
	Title       string
	Start       time.Time
	End         time.Time
	Location    string
	Description string
}

// Fetcher retrieves the body behind a feed URL. It is injected so callers can
// route through a proxy or stub the network entirely in tests.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// HTTPFetcher fetches feeds over plain HTTP with a bounded timeout. When a
// proxy prefix is configured the target URL is passed through it, which is
// how feeds hosted behind access restrictions stay reachable.
type HTTPFetcher struct {
	client      *http.Client
	proxyPrefix string
}

// NewHTTPFetcher builds an HTTPFetcher. A non-positive timeout falls back to
// ten seconds.
func NewHTTPFetcher(proxyPrefix string, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPFetcher{
		client:      &http.Client{Timeout: timeout},
		proxyPrefix: proxyPrefix,
	}
}

// Fetch downloads the feed body. Timeouts surface as ordinary errors; the
// adapter treats every failure the same way.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	target := rawURL
	if f.proxyPrefix != "" {
		target = f.proxyPrefix + url.QueryEscape(rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}
	return body, nil
}
