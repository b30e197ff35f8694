package anchor

import (
	"go.uber.org/zap"

	"tableflip.dev/daybook/pkg/sched"
)

// Layout resolves where a unit was laid out on the scroll surface. ok is false
// until the unit has been measured.
type Layout interface {
	UnitBounds(key string) (top, height int, ok bool)
}

// ScrollTo asks the surface to move to Offset.
type ScrollTo struct {
	Offset int
	Smooth bool
}

// GotoResult is the outcome of Goto or Retry. Exactly one of Ready and
// Pending is set for an accepted target; both are false when the request was
// dropped.
type GotoResult struct {
	Key    string
	Scroll ScrollTo
	Ready  bool
	// Pending means the target is not laid out yet; schedule Retry after
	// RetryInterval.
	Pending bool
	Retry   sched.Token
}

// Goto scrolls to the unit at index, minus the header height. A new call
// supersedes any retry loop still in progress.
func (l *Loader) Goto(index int, smooth bool, layout Layout) GotoResult {
	l.gotoSlot.Cancel()
	u, ok := l.win.At(index)
	if !ok {
		l.log.Debug("goto ignored, index outside window", zap.Int("index", index), zap.Int("length", l.win.Len()))
		return GotoResult{}
	}
	l.gotoKey = u.Key
	l.gotoSmooth = smooth
	l.gotoAttempts = 0
	return l.resolve(layout)
}

// Retry re-attempts a pending Goto. Stale tokens are ignored.
func (l *Loader) Retry(tok sched.Token, layout Layout) GotoResult {
	if !l.gotoSlot.Fire(tok) {
		return GotoResult{}
	}
	return l.resolve(layout)
}

func (l *Loader) resolve(layout Layout) GotoResult {
	// The window may have shifted since Goto; follow the unit, not the index.
	if l.win.IndexOf(l.gotoKey) < 0 {
		l.log.Debug("goto abandoned, target left the window", zap.String("key", l.gotoKey))
		return GotoResult{}
	}
	if layout != nil {
		if top, _, ok := layout.UnitBounds(l.gotoKey); ok {
			offset := top - l.cfg.HeaderHeight
			if offset < 0 {
				offset = 0
			}
			return GotoResult{Key: l.gotoKey, Ready: true, Scroll: ScrollTo{Offset: offset, Smooth: l.gotoSmooth}}
		}
	}
	l.gotoAttempts++
	if l.gotoAttempts >= l.cfg.RetryAttempts {
		l.log.Debug("goto abandoned, target never laid out",
			zap.String("key", l.gotoKey),
			zap.Int("attempts", l.gotoAttempts))
		return GotoResult{}
	}
	return GotoResult{Key: l.gotoKey, Pending: true, Retry: l.gotoSlot.Arm()}
}

// GotoPending reports whether a retry loop is in progress.
func (l *Loader) GotoPending() bool { return l.gotoSlot.Pending() }
