// Package visibility decides which month unit is focused for the sticky
// header. Scroll notifications are coalesced to one recomputation per frame
// and the published focus is debounced so a fling does not flicker the header.
package visibility

import (
	"time"

	"go.uber.org/zap"

	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/sched"
)

// Config tunes the tracker.
type Config struct {
	// MinOverlap is the smallest winning overlap that may change focus.
	MinOverlap    int
	Debounce      time.Duration
	FrameInterval time.Duration
}

// DefaultConfig returns the pixel-based defaults.
func DefaultConfig() Config {
	return Config{
		MinOverlap:    100,
		Debounce:      150 * time.Millisecond,
		FrameInterval: 16 * time.Millisecond,
	}
}

// Direction hints which way the surface was moving when focus changed.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Rect is a mounted unit's extent relative to the viewport top.
type Rect struct {
	Unit   month.Unit
	Top    int
	Bottom int
}

// Record is one unit's visible extent for a frame.
type Record struct {
	Key     string
	Overlap int
}

// Focus is the published header value.
type Focus struct {
	Unit      month.Unit
	Direction Direction
}

// FrameResult reports what a frame recomputation decided.
type FrameResult struct {
	Winner Record
	// Accepted is false for stale frames and winners below MinOverlap.
	Accepted bool
	// Schedule asks the caller to deliver Debounce after Config.Debounce.
	Schedule bool
	Debounce sched.Token
}

// Tracker holds the focus state. It is driven from one event loop.
type Tracker struct {
	cfg Config
	log *zap.Logger

	frame     sched.Slot
	frameTop  int
	lastTop   int
	debounce  sched.Slot
	candidate Focus
	focus     Focus
	hasFocus  bool
}

// New returns a Tracker. Zero config fields take their defaults.
func New(cfg Config, log *zap.Logger) *Tracker {
	def := DefaultConfig()
	if cfg.MinOverlap <= 0 {
		cfg.MinOverlap = def.MinOverlap
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = def.Debounce
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = def.FrameInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{cfg: cfg, log: log}
}

// Config returns the effective configuration.
func (t *Tracker) Config() Config { return t.cfg }

// Reset sets the initial focus: the month containing now when it is in units,
// otherwise the middle unit. Pending frame and debounce requests are dropped.
func (t *Tracker) Reset(units []month.Unit, now time.Time) {
	t.frame.Cancel()
	t.debounce.Cancel()
	if len(units) == 0 {
		t.hasFocus = false
		t.focus = Focus{}
		return
	}
	pick := units[len(units)/2]
	for _, u := range units {
		if u.Contains(now) {
			pick = u
			break
		}
	}
	t.focus = Focus{Unit: pick, Direction: Down}
	t.candidate = t.focus
	t.hasFocus = true
}

// Focus returns the published focus.
func (t *Tracker) Focus() (Focus, bool) { return t.focus, t.hasFocus }

// OnScroll records the offset and requests a frame, superseding any frame
// still pending. Deliver the token after Config.FrameInterval.
func (t *Tracker) OnScroll(scrollTop int) sched.Token {
	t.frameTop = scrollTop
	return t.frame.Arm()
}

// Overlap is the visible extent of [top, bottom) inside [0, viewport).
func Overlap(top, bottom, viewport int) int {
	v := min(bottom, viewport) - max(top, 0)
	if v < 0 {
		return 0
	}
	return v
}

// Best returns the rect with the greatest overlap. Ties go to the earliest
// rect. ok is false when nothing is visible.
func Best(rects []Rect, viewport int) (Rect, Record, bool) {
	var (
		best   Rect
		winner Record
		found  bool
	)
	for _, r := range rects {
		o := Overlap(r.Top, r.Bottom, viewport)
		if o > winner.Overlap {
			best = r
			winner = Record{Key: r.Unit.Key, Overlap: o}
			found = true
		}
	}
	return best, winner, found
}

// OnFrame recomputes focus for the frame identified by tok.
func (t *Tracker) OnFrame(tok sched.Token, rects []Rect, viewport int) FrameResult {
	if !t.frame.Fire(tok) {
		return FrameResult{}
	}
	best, winner, ok := Best(rects, viewport)
	if !ok || winner.Overlap < t.cfg.MinOverlap {
		return FrameResult{Winner: winner}
	}

	dir := Up
	if t.frameTop > t.lastTop {
		dir = Down
	}
	t.lastTop = t.frameTop

	res := FrameResult{Winner: winner, Accepted: true}
	switch {
	case t.hasFocus && winner.Key == t.focus.Unit.Key:
		t.debounce.Cancel()
		t.candidate = t.focus
	case t.debounce.Pending() && winner.Key == t.candidate.Unit.Key:
		// already waiting to publish this unit
	default:
		t.candidate = Focus{Unit: best.Unit, Direction: dir}
		res.Debounce = t.debounce.Arm()
		res.Schedule = true
		t.log.Debug("focus candidate",
			zap.String("key", winner.Key),
			zap.Int("overlap", winner.Overlap),
			zap.String("direction", string(dir)))
	}
	return res
}

// OnDebounce publishes the candidate when tok is the live debounce timer.
func (t *Tracker) OnDebounce(tok sched.Token) (Focus, bool) {
	if !t.debounce.Fire(tok) {
		return Focus{}, false
	}
	t.focus = t.candidate
	t.hasFocus = true
	return t.focus, true
}
