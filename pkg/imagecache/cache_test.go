package imagecache

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func urls(from, to int) []string {
	out := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, fmt.Sprintf("u%d", i))
	}
	return out
}

func okFetcher(calls *int32) Fetcher {
	return FetcherFunc(func(ctx context.Context, url string) error {
		atomic.AddInt32(calls, 1)
		return nil
	})
}

func TestConcurrentPreloadSharesFetch(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	c := New(FetcherFunc(func(ctx context.Context, url string) error {
		atomic.AddInt32(&calls, 1)
		once.Do(func() { close(started) })
		<-release
		return errors.New("boom")
	}), Options{Logger: zaptest.NewLogger(t)})

	ctx := context.Background()
	errs := make(chan error, 2)
	go func() { errs <- c.Preload(ctx, "u1") }()
	<-started
	go func() { errs <- c.Preload(ctx, "u1") }()
	// Give the second caller time to join the in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)

	first, second := <-errs, <-errs
	if first == nil || second == nil || first.Error() != second.Error() {
		t.Fatalf("expected both callers to see the same failure, got %v and %v", first, second)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected one fetch, got %d", n)
	}
	if c.Loaded("u1") {
		t.Fatalf("failed preload marked loaded")
	}
}

func TestPreloadIsIdempotent(t *testing.T) {
	var calls int32
	c := New(okFetcher(&calls), Options{})
	for i := 0; i < 3; i++ {
		if err := c.Preload(context.Background(), "u1"); err != nil {
			t.Fatalf("preload: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one fetch, got %d", calls)
	}
}

func TestFIFOEviction(t *testing.T) {
	var calls int32
	c := New(okFetcher(&calls), Options{})
	for _, u := range urls(1, 60) {
		if err := c.Preload(context.Background(), u); err != nil {
			t.Fatalf("preload %s: %v", u, err)
		}
	}
	if got := c.Snapshot(); !reflect.DeepEqual(got, urls(11, 60)) {
		t.Fatalf("expected u11..u60, got %v", got)
	}
	if u := c.Usage(); u.Count != 50 || u.Cap != 50 {
		t.Fatalf("unexpected usage %+v", u)
	}
}

func TestRepeatDoesNotRefreshPosition(t *testing.T) {
	var calls int32
	c := New(okFetcher(&calls), Options{Capacity: 3, EvictBatch: 1})
	ctx := context.Background()
	for _, u := range []string{"a", "b", "c", "a", "d"} {
		if err := c.Preload(ctx, u); err != nil {
			t.Fatalf("preload %s: %v", u, err)
		}
	}
	if got := c.Snapshot(); !reflect.DeepEqual(got, []string{"b", "c", "d"}) {
		t.Fatalf("expected a evicted first, got %v", got)
	}
}

func TestUnloadDistant(t *testing.T) {
	var calls int32
	c := New(okFetcher(&calls), Options{})
	for _, u := range urls(1, 10) {
		_ = c.Preload(context.Background(), u)
	}
	n := c.UnloadDistant(map[string]struct{}{"u5": {}, "u6": {}})
	if n != 8 {
		t.Fatalf("expected 8 evicted, got %d", n)
	}
	if got := c.Snapshot(); !reflect.DeepEqual(got, []string{"u5", "u6"}) {
		t.Fatalf("expected u5 and u6, got %v", got)
	}
}

func TestFailureAllowsRetry(t *testing.T) {
	fail := true
	c := New(FetcherFunc(func(ctx context.Context, url string) error {
		if fail {
			return ErrNotImage
		}
		return nil
	}), Options{})
	if err := c.Preload(context.Background(), "u1"); !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
	fail = false
	if err := c.Preload(context.Background(), "u1"); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if !c.Loaded("u1") {
		t.Fatalf("expected u1 loaded after retry")
	}
}

func TestPreloadTimeout(t *testing.T) {
	c := New(FetcherFunc(func(ctx context.Context, url string) error {
		<-ctx.Done()
		return ctx.Err()
	}), Options{Timeout: 20 * time.Millisecond})
	err := c.Preload(context.Background(), "slow")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestPreloadAllAndClear(t *testing.T) {
	c := New(FetcherFunc(func(ctx context.Context, url string) error {
		if url == "bad" {
			return errors.New("nope")
		}
		return nil
	}), Options{Concurrency: 2})
	errs := c.PreloadAll(context.Background(), []string{"a", "bad", "c"})
	if errs[0] != nil || errs[1] == nil || errs[2] != nil {
		t.Fatalf("unexpected results %v", errs)
	}
	if c.Usage().Count != 2 {
		t.Fatalf("expected 2 resident, got %d", c.Usage().Count)
	}
	c.Clear()
	if c.Usage().Count != 0 || c.Loaded("a") {
		t.Fatalf("clear left entries behind")
	}
}
