package imagecache

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrNotImage is returned when a resource loads but does not decode as an
// image.
var ErrNotImage = errors.New("imagecache: resource is not a decodable image")

// maxHeaderBytes caps how much of a resource is read to decode its header.
const maxHeaderBytes = 1 << 20

// BreakerConfig tunes the HTTP circuit breaker.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig trips after most of a handful of requests fail, so a
// dead image host stops costing a round trip per rendered entry.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "image-fetch",
		MaxRequests:      2,
		Interval:         30 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// HTTPFetcher fetches images over http(s) behind a circuit breaker.
type HTTPFetcher struct {
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker
	userAgent string
}

// NewHTTPFetcher returns a fetcher using client (http.DefaultClient when nil).
func NewHTTPFetcher(client *http.Client, cfg BreakerConfig, log *zap.Logger) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return &HTTPFetcher{client: client, breaker: cb, userAgent: "daybook"}
}

// Fetch downloads url and checks that it decodes as an image.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) error {
	_, err := f.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", f.userAgent)
		resp, err := f.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return nil, decodeHeader(resp.Body)
	})
	return err
}

// State reports the breaker state, e.g. for the debug log.
func (f *HTTPFetcher) State() gobreaker.State { return f.breaker.State() }

// FileFetcher loads images from local paths or file:// URLs.
type FileFetcher struct{}

// Fetch opens the file and checks that it decodes as an image.
func (FileFetcher) Fetch(ctx context.Context, raw string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := raw
	if strings.HasPrefix(raw, "file://") {
		u, err := url.Parse(raw)
		if err != nil {
			return err
		}
		path = u.Path
	}
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fh.Close()
	return decodeHeader(fh)
}

// Auto dispatches http(s) URLs to HTTP and everything else to File.
type Auto struct {
	HTTP Fetcher
	File Fetcher
}

// Fetch implements Fetcher.
func (a Auto) Fetch(ctx context.Context, raw string) error {
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		if a.HTTP == nil {
			return fmt.Errorf("imagecache: no http fetcher for %s", raw)
		}
		return a.HTTP.Fetch(ctx, raw)
	}
	if a.File == nil {
		return fmt.Errorf("imagecache: no file fetcher for %s", raw)
	}
	return a.File.Fetch(ctx, raw)
}

func decodeHeader(r io.Reader) error {
	if _, _, err := image.DecodeConfig(io.LimitReader(r, maxHeaderBytes)); err != nil {
		return fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return nil
}
