// Package anchor drives window expansion from scroll metrics and keeps the
// visible content anchored while units are inserted or trimmed above the
// viewport.
package anchor

import (
	"time"

	"go.uber.org/zap"

	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/sched"
	"tableflip.dev/daybook/pkg/window"
)

// Config tunes the loader. Distances are in the scroll surface's units
// (pixels in a browser, rows in a terminal).
type Config struct {
	TopThreshold    int
	BottomThreshold int
	// BootstrapMin suppresses top expansion until the window holds more
	// than this many units.
	BootstrapMin int
	Batch        int
	SettleDelay  time.Duration
	// ReleaseOnCommit releases the loading guard on Committed instead of
	// waiting for the settle timer.
	ReleaseOnCommit bool
	HeaderHeight    int
	RetryAttempts   int
	RetryInterval   time.Duration
}

// DefaultConfig returns the pixel-based defaults.
func DefaultConfig() Config {
	return Config{
		TopThreshold:    500,
		BottomThreshold: 500,
		BootstrapMin:    10,
		Batch:           6,
		SettleDelay:     200 * time.Millisecond,
		HeaderHeight:    80,
		RetryAttempts:   30,
		RetryInterval:   50 * time.Millisecond,
	}
}

// Window is the part of window.Manager the loader drives.
type Window interface {
	ExpandTop(batch int) window.Edit
	ExpandBottom(batch int) window.Edit
	Len() int
	At(i int) (month.Unit, bool)
	IndexOf(key string) int
}

// Metrics is one scroll notification.
type Metrics struct {
	ScrollTop    int
	ScrollHeight int
	ClientHeight int
}

// Step is the outcome of OnScroll. When Expanded is set the caller must apply
// the correction for Edit before the next render and schedule Settle after
// SettleDelay (unless the loader releases on commit).
type Step struct {
	Expanded bool
	Edit     window.Edit
	Settle   sched.Token
	// ScheduleSettle is false when the guard is released by Committed.
	ScheduleSettle bool
}

// Loader is the single-flight expansion controller. Like the window it is
// driven from one event loop and holds no locks.
type Loader struct {
	win Window
	cfg Config
	log *zap.Logger

	loading       bool
	lastScrollTop int
	settle        sched.Slot

	gotoSlot     sched.Slot
	gotoKey      string
	gotoSmooth   bool
	gotoAttempts int
}

// New builds a Loader for win. A nil logger is replaced with a no-op one.
func New(win Window, cfg Config, log *zap.Logger) *Loader {
	def := DefaultConfig()
	if cfg.Batch <= 0 {
		cfg.Batch = def.Batch
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = def.RetryAttempts
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = def.RetryInterval
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = def.SettleDelay
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{win: win, cfg: cfg, log: log}
}

// Config returns the effective configuration.
func (l *Loader) Config() Config { return l.cfg }

// Loading reports whether an expansion is in flight.
func (l *Loader) Loading() bool { return l.loading }

// LastScrollTop reports the offset seen by the most recent notification.
func (l *Loader) LastScrollTop() int { return l.lastScrollTop }

// OnScroll evaluates one notification. The bottom edge is checked first and at
// most one expansion happens per call.
func (l *Loader) OnScroll(m Metrics) Step {
	l.lastScrollTop = m.ScrollTop
	if l.loading {
		return Step{}
	}

	if m.ScrollHeight-(m.ScrollTop+m.ClientHeight) < l.cfg.BottomThreshold {
		return l.expand(l.win.ExpandBottom)
	}
	if m.ScrollTop < l.cfg.TopThreshold && l.win.Len() > l.cfg.BootstrapMin {
		return l.expand(l.win.ExpandTop)
	}
	return Step{}
}

func (l *Loader) expand(fn func(int) window.Edit) Step {
	edit := fn(l.cfg.Batch)
	if edit.Empty() {
		return Step{}
	}
	l.loading = true
	step := Step{Expanded: true, Edit: edit}
	if !l.cfg.ReleaseOnCommit {
		step.Settle = l.settle.Arm()
		step.ScheduleSettle = true
	}
	l.log.Debug("expansion started",
		zap.String("edge", string(edit.Edge)),
		zap.Int("added", len(edit.Added)),
		zap.Int("trimmed", len(edit.Trimmed)))
	return step
}

// Settle releases the loading guard when tok is the live settle timer.
func (l *Loader) Settle(tok sched.Token) bool {
	if !l.settle.Fire(tok) {
		return false
	}
	l.loading = false
	return true
}

// Committed signals that the expansion has been laid out. It releases the
// guard when the loader is configured to release on commit.
func (l *Loader) Committed() {
	if !l.cfg.ReleaseOnCommit || !l.loading {
		return
	}
	l.settle.Cancel()
	l.loading = false
}

// Correction returns the scroll offset delta that keeps content in place
// after edit: the combined height of units inserted above the viewport minus
// the height of units trimmed from the top. height must still answer for
// trimmed units.
func Correction(edit window.Edit, height func(month.Unit) int) int {
	delta := 0
	for _, u := range edit.AddedAbove() {
		delta += height(u)
	}
	for _, u := range edit.TrimmedAbove() {
		delta -= height(u)
	}
	return delta
}
