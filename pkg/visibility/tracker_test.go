package visibility

import (
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"tableflip.dev/daybook/pkg/month"
)

var (
	unitA = month.Must(8, 2025)
	unitB = month.Must(9, 2025)
	unitC = month.Must(10, 2025)
)

func newTracker(t *testing.T) *Tracker {
	t.Helper()
	tr := New(DefaultConfig(), zaptest.NewLogger(t))
	tr.Reset([]month.Unit{unitA, unitB, unitC}, time.Date(2025, time.September, 14, 0, 0, 0, 0, time.UTC))
	return tr
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name            string
		top, bottom, vh int
		want            int
	}{
		{"fully inside", 100, 400, 800, 300},
		{"clipped above", -200, 150, 800, 150},
		{"clipped below", 700, 1200, 800, 100},
		{"covers viewport", -100, 1000, 800, 800},
		{"off screen", 900, 1200, 800, 0},
		{"above screen", -500, -10, 800, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlap(tt.top, tt.bottom, tt.vh); got != tt.want {
				t.Fatalf("Overlap(%d, %d, %d) = %d, want %d", tt.top, tt.bottom, tt.vh, got, tt.want)
			}
		})
	}
}

func TestBestPrefersLargestThenEarliest(t *testing.T) {
	_, rec, ok := Best([]Rect{{unitA, 0, 300}, {unitB, 300, 450}}, 800)
	if !ok || rec.Key != unitA.Key || rec.Overlap != 300 {
		t.Fatalf("expected A with 300, got %+v", rec)
	}
	_, rec, _ = Best([]Rect{{unitA, 0, 200}, {unitB, 200, 400}}, 800)
	if rec.Key != unitA.Key {
		t.Fatalf("tie must go to the earliest unit, got %s", rec.Key)
	}
}

func TestInitialFocus(t *testing.T) {
	tr := newTracker(t)
	if f, ok := tr.Focus(); !ok || f.Unit != unitA {
		t.Fatalf("expected current month focus, got %+v", f)
	}
	tr.Reset([]month.Unit{unitA, unitB, unitC}, time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC))
	if f, _ := tr.Focus(); f.Unit != unitB {
		t.Fatalf("expected middle unit, got %+v", f)
	}
}

func TestFocusChangeIsDebounced(t *testing.T) {
	tr := newTracker(t)

	frame := tr.OnScroll(400)
	res := tr.OnFrame(frame, []Rect{{unitA, -400, 50}, {unitB, 50, 600}}, 800)
	if !res.Accepted || !res.Schedule || res.Winner.Key != unitB.Key {
		t.Fatalf("expected B candidate, got %+v", res)
	}
	if f, _ := tr.Focus(); f.Unit != unitA {
		t.Fatalf("focus published before debounce")
	}
	f, ok := tr.OnDebounce(res.Debounce)
	if !ok || f.Unit != unitB || f.Direction != Down {
		t.Fatalf("expected B published scrolling down, got %+v %v", f, ok)
	}
}

func TestBelowFloorKeepsFocus(t *testing.T) {
	tr := newTracker(t)
	frame := tr.OnScroll(100)
	res := tr.OnFrame(frame, []Rect{{unitB, 760, 1200}, {unitC, 1200, 1500}}, 800)
	if res.Accepted || res.Schedule {
		t.Fatalf("below-floor winner accepted: %+v", res)
	}
	if f, _ := tr.Focus(); f.Unit != unitA {
		t.Fatalf("focus changed to %+v", f)
	}
}

func TestPreemptedDebounceDoesNotPublish(t *testing.T) {
	tr := newTracker(t)

	res := tr.OnFrame(tr.OnScroll(400), []Rect{{unitA, -400, 50}, {unitB, 50, 600}}, 800)
	stale := res.Debounce

	// Scrolling on to C replaces the pending B.
	res = tr.OnFrame(tr.OnScroll(900), []Rect{{unitB, -450, 100}, {unitC, 100, 700}}, 800)
	if !res.Schedule || res.Winner.Key != unitC.Key {
		t.Fatalf("expected C candidate, got %+v", res)
	}
	if _, ok := tr.OnDebounce(stale); ok {
		t.Fatalf("superseded debounce published")
	}

	// Back on A before the timer fires cancels the change entirely.
	pending := res.Debounce
	res = tr.OnFrame(tr.OnScroll(0), []Rect{{unitA, 0, 500}, {unitB, 500, 1000}}, 800)
	if res.Schedule {
		t.Fatalf("returning to the published unit must not arm a timer")
	}
	if _, ok := tr.OnDebounce(pending); ok {
		t.Fatalf("cancelled debounce published")
	}
	if f, _ := tr.Focus(); f.Unit != unitA {
		t.Fatalf("expected A retained, got %+v", f)
	}
}

func TestFramesCoalesce(t *testing.T) {
	tr := newTracker(t)
	first := tr.OnScroll(100)
	second := tr.OnScroll(200)
	rects := []Rect{{unitB, 0, 500}}
	if res := tr.OnFrame(first, rects, 800); res.Accepted {
		t.Fatalf("superseded frame ran")
	}
	if res := tr.OnFrame(second, rects, 800); !res.Accepted {
		t.Fatalf("latest frame dropped")
	}
}

func TestDirectionUp(t *testing.T) {
	tr := newTracker(t)
	tr.OnFrame(tr.OnScroll(2000), []Rect{{unitA, 0, 500}}, 800)
	res := tr.OnFrame(tr.OnScroll(1500), []Rect{{unitB, 0, 500}}, 800)
	f, ok := tr.OnDebounce(res.Debounce)
	if !ok || f.Direction != Up {
		t.Fatalf("expected upward focus change, got %+v", f)
	}
}
