package store

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"tableflip.dev/daybook/pkg/entry"
)

func TestPersistenceWatchEmitsMonthChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(Path(base), WithLogger(zaptest.NewLogger(t)))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	e := &entry.Dated{Date: time.Date(2025, time.September, 14, 0, 0, 0, 0, time.Local), Rating: 4}
	if err := p.Store(e); err != nil {
		t.Fatalf("store entry: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Month != "2025-8" {
				t.Fatalf("expected month 2025-8, got %q", evt.Month)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for month change event")
		}
	}
}

func TestThrottleCoalesces(t *testing.T) {
	got := make(chan Event, 8)
	th := newEventThrottle(20*time.Millisecond, func(ev Event) { got <- ev })
	defer th.Stop()

	th.Enqueue(Event{Type: EventMonthChanged, Month: "2025-8"})
	th.Enqueue(Event{Type: EventMonthChanged, Month: "2025-8"})
	th.Enqueue(Event{Type: EventMonthChanged, Month: "2025-8"})

	select {
	case ev := <-got:
		if ev.Month != "2025-8" {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("throttle never flushed")
	}
	select {
	case ev := <-got:
		t.Fatalf("expected a single event, got extra %+v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}
