package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventMonthChanged indicates entries in Event.Month were added, edited
	// or removed.
	EventMonthChanged EventType = iota

	// EventInvalidated means the change could not be attributed to one month
	// and callers should reload everything.
	EventInvalidated
)

// Event is emitted by Persistence.Watch when underlying storage changes.
// Month is a window key such as "2025-8".
type Event struct {
	Type  EventType
	Month string
}

// watchThrottle is how long a burst of writes is coalesced before emitting.
const watchThrottle = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. The channel is closed
// once ctx is done or the watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				p.log.Warn("watcher close", zap.Error(err))
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		var sendMu sync.Mutex
		closed := false
		send := func(ev Event) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if closed {
				return
			}
			select {
			case events <- ev:
			default:
				// A slow consumer misses the event; the next one triggers the
				// same reload.
			}
		}
		defer func() {
			sendMu.Lock()
			closed = true
			sendMu.Unlock()
		}()

		throttle := newEventThrottle(watchThrottle, send)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.log.Debug("watch error", zap.Error(err))
				throttle.Enqueue(Event{Type: EventInvalidated})
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						dir := filepath.Clean(evt.Name)
						if _, found := watched[dir]; !found {
							// New year/month/day directories must be watched
							// to see the entry written into them.
							if err := p.watchTree(watcher, dir, watched); err != nil {
								p.log.Warn("watch new directory", zap.String("dir", dir), zap.Error(err))
							}
						}
					}
				}
				if key := p.monthForPath(evt.Name); key != "" {
					throttle.Enqueue(Event{Type: EventMonthChanged, Month: key})
					continue
				}
				throttle.Enqueue(Event{Type: EventInvalidated})
			}
		}
	}()

	return events, nil
}

func (p *persistence) watchTree(watcher *fsnotify.Watcher, root string, watched map[string]struct{}) error {
	dirs, err := collectDirs(root)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if _, found := watched[dir]; found {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return err
		}
		watched[dir] = struct{}{}
	}
	return nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{filepath.Clean(base)}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, filepath.Clean(path))
		}
		return nil
	})
	return dirs, err
}

// monthForPath derives the window key from a yyyy/mm/... path.
func (p *persistence) monthForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) < 2 {
		return ""
	}
	key, ok := monthKeyFromPath(parts[0], parts[1])
	if !ok {
		return ""
	}
	return key
}

// eventThrottle coalesces rapid change notifications so the UI reloads once
// per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[Event]struct{}
	delay   time.Duration
	send    func(Event)
}

func newEventThrottle(delay time.Duration, send func(Event)) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		send:    send,
		pending: make(map[Event]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[ev] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, t.flush)
	}
}

func (t *eventThrottle) flush() {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[Event]struct{})
	t.timer = nil
	t.mu.Unlock()

	// An invalidation supersedes every per-month change in the burst.
	if _, ok := pending[Event{Type: EventInvalidated}]; ok {
		t.send(Event{Type: EventInvalidated})
		return
	}
	for ev := range pending {
		t.send(ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
