package anchor

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/window"
)

func newLoader(t *testing.T, cfg Config, before, after int) (*Loader, *window.Manager) {
	t.Helper()
	w := window.New(window.Options{Logger: zaptest.NewLogger(t)})
	if err := w.Seed(8, 2025, before, after); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return New(w, cfg, zaptest.NewLogger(t)), w
}

func TestBottomExpansionIsSingleFlight(t *testing.T) {
	l, w := newLoader(t, DefaultConfig(), 3, 3)
	near := Metrics{ScrollTop: 2000, ScrollHeight: 2600, ClientHeight: 400}

	step := l.OnScroll(near)
	if !step.Expanded || step.Edit.Edge != window.EdgeBottom || !step.ScheduleSettle {
		t.Fatalf("expected bottom expansion with settle timer, got %+v", step)
	}
	if w.Len() != 13 {
		t.Fatalf("expected 13 units, got %d", w.Len())
	}
	if again := l.OnScroll(near); again.Expanded {
		t.Fatalf("expansion ran while loading")
	}
	if !l.Settle(step.Settle) {
		t.Fatalf("expected live settle token")
	}
	if l.Loading() {
		t.Fatalf("guard not released")
	}
	if l.Settle(step.Settle) {
		t.Fatalf("settle token fired twice")
	}
	if next := l.OnScroll(near); !next.Expanded {
		t.Fatalf("expected expansion after release")
	}
}

func TestTopExpansionBootstrapGuard(t *testing.T) {
	l, w := newLoader(t, DefaultConfig(), 3, 3)
	top := Metrics{ScrollTop: 10, ScrollHeight: 5000, ClientHeight: 400}
	if step := l.OnScroll(top); step.Expanded {
		t.Fatalf("top expansion ran on a %d unit window", w.Len())
	}

	l, w = newLoader(t, DefaultConfig(), 12, 12)
	step := l.OnScroll(top)
	if !step.Expanded || step.Edit.Edge != window.EdgeTop {
		t.Fatalf("expected top expansion, got %+v", step)
	}
	if w.Len() != 31 || w.IndexOf("2025-8") != 18 {
		t.Fatalf("unexpected window after top expansion: len=%d pivot=%d", w.Len(), w.IndexOf("2025-8"))
	}
}

func TestBottomCheckedFirst(t *testing.T) {
	l, _ := newLoader(t, DefaultConfig(), 12, 12)
	// A short surface is near both edges at once.
	step := l.OnScroll(Metrics{ScrollTop: 0, ScrollHeight: 600, ClientHeight: 400})
	if !step.Expanded || step.Edit.Edge != window.EdgeBottom {
		t.Fatalf("expected bottom expansion only, got %+v", step)
	}
}

func TestReleaseOnCommit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReleaseOnCommit = true
	l, _ := newLoader(t, cfg, 3, 3)
	step := l.OnScroll(Metrics{ScrollTop: 0, ScrollHeight: 100, ClientHeight: 100})
	if !step.Expanded || step.ScheduleSettle {
		t.Fatalf("expected expansion without a settle timer, got %+v", step)
	}
	if !l.Loading() {
		t.Fatalf("expected guard held")
	}
	l.Committed()
	if l.Loading() {
		t.Fatalf("expected guard released on commit")
	}
}

func TestCorrection(t *testing.T) {
	heights := func(u month.Unit) int { return 100 + u.Month }
	top := window.Edit{
		Edge:  window.EdgeTop,
		Added: []month.Unit{month.Must(0, 2025), month.Must(1, 2025)},
	}
	if got := Correction(top, heights); got != 201 {
		t.Fatalf("expected +201, got %d", got)
	}
	bottom := window.Edit{
		Edge:        window.EdgeBottom,
		Added:       []month.Unit{month.Must(5, 2026)},
		Trimmed:     []month.Unit{month.Must(3, 2024)},
		TrimmedEdge: window.EdgeTop,
	}
	if got := Correction(bottom, heights); got != -103 {
		t.Fatalf("expected -103, got %d", got)
	}
	opposite := window.Edit{
		Edge:        window.EdgeTop,
		Added:       []month.Unit{month.Must(0, 2025)},
		Trimmed:     []month.Unit{month.Must(9, 2026)},
		TrimmedEdge: window.EdgeBottom,
	}
	if got := Correction(opposite, heights); got != 100 {
		t.Fatalf("bottom trims must not shift the offset, got %d", got)
	}
}
