package anchor

import (
	"testing"

	"tableflip.dev/daybook/pkg/sched"
)

type fakeLayout map[string][2]int

func (f fakeLayout) UnitBounds(key string) (int, int, bool) {
	b, ok := f[key]
	return b[0], b[1], ok
}

func TestGotoSubtractsHeader(t *testing.T) {
	l, _ := newLoader(t, DefaultConfig(), 3, 3)
	layout := fakeLayout{"2025-8": {1500, 400}, "2025-5": {30, 400}}

	res := l.Goto(3, true, layout)
	if !res.Ready || res.Scroll.Offset != 1420 || !res.Scroll.Smooth {
		t.Fatalf("unexpected result %+v", res)
	}
	res = l.Goto(0, false, layout)
	if !res.Ready || res.Scroll.Offset != 0 {
		t.Fatalf("expected offset clamped to 0, got %+v", res)
	}
}

func TestGotoRetriesUntilLaidOut(t *testing.T) {
	l, _ := newLoader(t, DefaultConfig(), 3, 3)
	layout := fakeLayout{}

	res := l.Goto(4, false, layout)
	if !res.Pending {
		t.Fatalf("expected pending retry, got %+v", res)
	}
	res = l.Retry(res.Retry, layout)
	if !res.Pending {
		t.Fatalf("expected second retry, got %+v", res)
	}
	layout["2025-9"] = [2]int{900, 300}
	res = l.Retry(res.Retry, layout)
	if !res.Ready || res.Scroll.Offset != 820 {
		t.Fatalf("expected resolved scroll, got %+v", res)
	}
	if l.GotoPending() {
		t.Fatalf("retry loop still pending")
	}
}

func TestGotoGivesUpSilently(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RetryAttempts = 5
	l, _ := newLoader(t, cfg, 3, 3)
	layout := fakeLayout{}

	res := l.Goto(2, false, layout)
	attempts := 1
	for res.Pending {
		res = l.Retry(res.Retry, layout)
		attempts++
	}
	if attempts != 5 {
		t.Fatalf("expected 5 attempts, got %d", attempts)
	}
	if res.Ready || l.GotoPending() {
		t.Fatalf("expected abandoned goto, got %+v", res)
	}
}

func TestNewGotoSupersedesRetry(t *testing.T) {
	l, _ := newLoader(t, DefaultConfig(), 3, 3)
	layout := fakeLayout{"2025-6": {700, 300}}

	first := l.Goto(0, false, layout)
	if !first.Pending {
		t.Fatalf("expected pending retry")
	}
	second := l.Goto(1, false, layout)
	if !second.Ready || second.Key != "2025-6" {
		t.Fatalf("expected second goto to resolve, got %+v", second)
	}
	if res := l.Retry(first.Retry, layout); res.Ready || res.Pending {
		t.Fatalf("stale retry ran: %+v", res)
	}
	if res := l.Retry(sched.Token(999), layout); res.Ready || res.Pending {
		t.Fatalf("unknown token ran: %+v", res)
	}
}

func TestHandleCommand(t *testing.T) {
	l, _ := newLoader(t, DefaultConfig(), 3, 3)
	layout := fakeLayout{
		"2025-5": {0, 100}, "2025-7": {200, 100}, "2025-9": {400, 100}, "2025-11": {900, 100},
	}
	tests := []struct {
		cmd     Command
		focused bool
		key     string
	}{
		{CommandPrev, false, "2025-7"},
		{CommandNext, false, "2025-9"},
		{CommandFirst, false, "2025-5"},
		{CommandLast, false, "2025-11"},
		{CommandNext, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.String(), func(t *testing.T) {
			res := l.HandleCommand(tt.cmd, "2025-8", tt.focused, layout)
			if res.Key != tt.key {
				t.Fatalf("expected %q, got %+v", tt.key, res)
			}
		})
	}
	if _, ok := l.Target(CommandPrev, "2025-5"); ok {
		t.Fatalf("prev from the first unit must be a no-op")
	}
}
