// Package imagecache tracks which images have been preloaded and bounds how
// many stay resident.
//
// Eviction is strict FIFO by insertion order: asking for a URL that is already
// loaded does not move it to the back of the queue. This is a deliberate
// simplification and not an LRU.
package imagecache

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultCapacity    = 50
	DefaultEvictBatch  = 10
	DefaultTimeout     = 10 * time.Second
	DefaultConcurrency = 4
)

// Fetcher loads one image. A nil error means the image is usable.
type Fetcher interface {
	Fetch(ctx context.Context, url string) error
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) error

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) error { return f(ctx, url) }

// Recorder receives cache statistics. metrics.Collector implements it.
type Recorder interface {
	CacheHit()
	CacheMiss()
	CacheFailed()
	CacheEvicted(n int)
	CacheResident(n int)
}

// Options configures a Cache.
type Options struct {
	Capacity    int
	EvictBatch  int
	Timeout     time.Duration
	Concurrency int
	Logger      *zap.Logger
	Recorder    Recorder
}

// Usage is a point-in-time view of the cache size.
type Usage struct {
	Count int
	Cap   int
}

// Cache is the loaded set. It is safe for concurrent use: preloads complete on
// command goroutines while the UI reads usage from its event loop.
type Cache struct {
	fetcher Fetcher
	opts    Options
	log     *zap.Logger
	group   singleflight.Group

	mu    sync.Mutex
	order *list.List
	index map[string]*list.Element
}

// New returns an empty cache backed by fetcher.
func New(fetcher Fetcher, opts Options) *Cache {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.EvictBatch <= 0 {
		opts.EvictBatch = DefaultEvictBatch
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Cache{
		fetcher: fetcher,
		opts:    opts,
		log:     opts.Logger,
		order:   list.New(),
		index:   make(map[string]*list.Element),
	}
}

// Preload makes sure url is loaded. Concurrent calls for the same URL share
// one fetch and observe the same result. A failed fetch leaves the URL
// unmarked so a later call retries it. Cancelling ctx stops the wait but not
// the shared fetch, which is bounded by Options.Timeout.
func (c *Cache) Preload(ctx context.Context, url string) error {
	if url == "" {
		return fmt.Errorf("imagecache: empty url")
	}
	if c.Loaded(url) {
		c.hit()
		return nil
	}

	ch := c.group.DoChan(url, func() (any, error) {
		if c.Loaded(url) {
			return nil, nil
		}
		if c.opts.Recorder != nil {
			c.opts.Recorder.CacheMiss()
		}
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opts.Timeout)
		defer cancel()
		if err := c.fetcher.Fetch(fctx, url); err != nil {
			if c.opts.Recorder != nil {
				c.opts.Recorder.CacheFailed()
			}
			c.log.Debug("image preload failed", zap.String("url", url), zap.Error(err))
			return nil, fmt.Errorf("imagecache: preload %s: %w", url, err)
		}
		c.mark(url)
		return nil, nil
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

// PreloadAll preloads every URL with bounded concurrency and waits for all of
// them to settle. The returned slice holds one error (or nil) per URL.
func (c *Cache) PreloadAll(ctx context.Context, urls []string) []error {
	errs := make([]error, len(urls))
	var g errgroup.Group
	g.SetLimit(c.opts.Concurrency)
	for i, url := range urls {
		g.Go(func() error {
			errs[i] = c.Preload(ctx, url)
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

func (c *Cache) hit() {
	if c.opts.Recorder != nil {
		c.opts.Recorder.CacheHit()
	}
}

// mark appends url and evicts the oldest batch when the set exceeds capacity.
func (c *Cache) mark(url string) {
	c.mu.Lock()
	if _, ok := c.index[url]; !ok {
		c.index[url] = c.order.PushBack(url)
	}
	evicted := 0
	for c.order.Len() > c.opts.Capacity {
		for i := 0; i < c.opts.EvictBatch && c.order.Len() > 0; i++ {
			front := c.order.Front()
			delete(c.index, front.Value.(string))
			c.order.Remove(front)
			evicted++
		}
	}
	size := c.order.Len()
	c.mu.Unlock()

	c.record(evicted, size)
	if evicted > 0 {
		c.log.Debug("image cache evicted", zap.Int("evicted", evicted), zap.Int("resident", size))
	}
}

func (c *Cache) record(evicted, size int) {
	if c.opts.Recorder == nil {
		return
	}
	if evicted > 0 {
		c.opts.Recorder.CacheEvicted(evicted)
	}
	c.opts.Recorder.CacheResident(size)
}

// UnloadDistant evicts every loaded URL that is not in keep and reports how
// many were dropped.
func (c *Cache) UnloadDistant(keep map[string]struct{}) int {
	c.mu.Lock()
	evicted := 0
	for e := c.order.Front(); e != nil; {
		next := e.Next()
		url := e.Value.(string)
		if _, ok := keep[url]; !ok {
			delete(c.index, url)
			c.order.Remove(e)
			evicted++
		}
		e = next
	}
	size := c.order.Len()
	c.mu.Unlock()

	c.record(evicted, size)
	return evicted
}

// Loaded reports whether url is resident.
func (c *Cache) Loaded(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.index[url]
	return ok
}

// Usage reports the resident count and capacity.
func (c *Cache) Usage() Usage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Usage{Count: c.order.Len(), Cap: c.opts.Capacity}
}

// Snapshot returns the resident URLs oldest first.
func (c *Cache) Snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, c.order.Len())
	for e := c.order.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(string))
	}
	return out
}

// Clear empties the loaded set.
func (c *Cache) Clear() {
	c.mu.Lock()
	evicted := c.order.Len()
	c.order.Init()
	c.index = make(map[string]*list.Element)
	c.mu.Unlock()

	c.record(evicted, 0)
}
