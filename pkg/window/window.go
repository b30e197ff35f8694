// Package window owns the bounded, chronologically ordered sequence of month
// units backing the infinite calendar.
package window

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/daybook/pkg/month"
)

// DefaultCapacity is the maximum number of units held when none is configured.
const DefaultCapacity = 50

// Edge names one end of the window.
type Edge string

const (
	// EdgeTop is the chronologically earliest end.
	EdgeTop Edge = "top"
	// EdgeBottom is the chronologically latest end.
	EdgeBottom Edge = "bottom"
)

// TrimPolicy selects which edge loses units when an expansion overflows the
// capacity.
type TrimPolicy string

const (
	// TrimOpposite trims the edge opposite to the one just expanded, so the
	// units just added always survive.
	TrimOpposite TrimPolicy = "opposite"
	// TrimFront always trims the earliest units regardless of which edge grew.
	TrimFront TrimPolicy = "front"
)

// ParseTrimPolicy converts a config string to a TrimPolicy.
func ParseTrimPolicy(raw string) (TrimPolicy, error) {
	switch p := TrimPolicy(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return TrimOpposite, nil
	case TrimOpposite, TrimFront:
		return p, nil
	default:
		return TrimOpposite, fmt.Errorf("window: unknown trim policy %q", raw)
	}
}

// ErrInvalidMonth is returned by Seed for a pivot month outside 0-11.
var ErrInvalidMonth = month.ErrInvalidMonth

// ErrInvalidSpan is returned by Seed for negative before/after counts.
var ErrInvalidSpan = errors.New("window: seed span must not be negative")

// Recorder receives expansion statistics. metrics.Collector implements it.
type Recorder interface {
	WindowExpanded(edge string, added, trimmed, length int)
}

// Options configures a Manager.
type Options struct {
	Capacity int
	Policy   TrimPolicy
	Logger   *zap.Logger
	Recorder Recorder
}

// Edit describes the outcome of one expansion.
type Edit struct {
	Edge        Edge
	Added       []month.Unit
	Trimmed     []month.Unit
	TrimmedEdge Edge
}

// Empty reports whether the edit changed nothing.
func (e Edit) Empty() bool {
	return len(e.Added) == 0 && len(e.Trimmed) == 0
}

// AddedAbove reports the units that now sit above every unit that was
// present before the edit.
func (e Edit) AddedAbove() []month.Unit {
	if e.Edge != EdgeTop {
		return nil
	}
	return e.Added
}

// TrimmedAbove reports the units that were removed from the top.
func (e Edit) TrimmedAbove() []month.Unit {
	if e.TrimmedEdge != EdgeTop {
		return nil
	}
	return e.Trimmed
}

// Manager holds the window. It is not safe for concurrent use; callers mutate
// it from a single event loop.
type Manager struct {
	units    []month.Unit
	capacity int
	policy   TrimPolicy
	log      *zap.Logger
	recorder Recorder
}

// New constructs an empty Manager.
func New(opts Options) *Manager {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.Policy == "" {
		opts.Policy = TrimOpposite
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Manager{
		capacity: opts.Capacity,
		policy:   opts.Policy,
		log:      opts.Logger,
		recorder: opts.Recorder,
	}
}

// Seed replaces the window with before months preceding the pivot, the pivot
// itself, and after months following it. When the span exceeds the capacity
// the units farthest from the pivot are dropped first.
func (m *Manager) Seed(pivotMonth, pivotYear, before, after int) error {
	pivot, err := month.New(pivotMonth, pivotYear)
	if err != nil {
		return fmt.Errorf("window: seed: %w", err)
	}
	if before < 0 || after < 0 {
		return fmt.Errorf("%w: before=%d after=%d", ErrInvalidSpan, before, after)
	}
	for before+after+1 > m.capacity {
		if before >= after {
			before--
		} else {
			after--
		}
	}

	units := make([]month.Unit, 0, before+after+1)
	u := month.Add(pivot, -before)
	for i := 0; i < before+after+1; i++ {
		units = append(units, u)
		u = month.Next(u)
	}
	m.units = units
	m.log.Debug("window seeded",
		zap.String("pivot", pivot.Key),
		zap.Int("before", before),
		zap.Int("after", after),
		zap.Int("length", len(units)))
	return nil
}

// ExpandTop prepends batch predecessors of the first unit.
func (m *Manager) ExpandTop(batch int) Edit {
	batch = m.clampBatch(batch)
	if batch == 0 || len(m.units) == 0 {
		return Edit{Edge: EdgeTop}
	}
	added := make([]month.Unit, batch)
	u := m.units[0]
	for i := batch - 1; i >= 0; i-- {
		u = month.Prev(u)
		added[i] = u
	}
	units := make([]month.Unit, 0, len(added)+len(m.units))
	units = append(units, added...)
	units = append(units, m.units...)
	m.units = units
	return m.finish(Edit{Edge: EdgeTop, Added: added})
}

// ExpandBottom appends batch successors of the last unit.
func (m *Manager) ExpandBottom(batch int) Edit {
	batch = m.clampBatch(batch)
	if batch == 0 || len(m.units) == 0 {
		return Edit{Edge: EdgeBottom}
	}
	added := make([]month.Unit, batch)
	u := m.units[len(m.units)-1]
	for i := 0; i < batch; i++ {
		u = month.Next(u)
		added[i] = u
	}
	m.units = append(m.units, added...)
	return m.finish(Edit{Edge: EdgeBottom, Added: added})
}

func (m *Manager) finish(edit Edit) Edit {
	edit.Trimmed, edit.TrimmedEdge = m.trim(edit.Edge)
	if m.recorder != nil {
		m.recorder.WindowExpanded(string(edit.Edge), len(edit.Added), len(edit.Trimmed), len(m.units))
	}
	m.log.Debug("window expanded",
		zap.String("edge", string(edit.Edge)),
		zap.Int("added", len(edit.Added)),
		zap.Int("trimmed", len(edit.Trimmed)),
		zap.String("trimmed_edge", string(edit.TrimmedEdge)),
		zap.Int("length", len(m.units)))
	return edit
}

// trim drops the overflow from the edge chosen by the policy.
func (m *Manager) trim(expanded Edge) ([]month.Unit, Edge) {
	overflow := len(m.units) - m.capacity
	if overflow <= 0 {
		return nil, ""
	}
	edge := EdgeTop
	if m.policy == TrimOpposite && expanded == EdgeTop {
		edge = EdgeBottom
	}
	var trimmed []month.Unit
	if edge == EdgeTop {
		trimmed = append(trimmed, m.units[:overflow]...)
		m.units = append([]month.Unit(nil), m.units[overflow:]...)
	} else {
		keep := len(m.units) - overflow
		trimmed = append(trimmed, m.units[keep:]...)
		m.units = m.units[:keep:keep]
	}
	return trimmed, edge
}

func (m *Manager) clampBatch(batch int) int {
	if batch < 0 {
		return 0
	}
	if batch > m.capacity {
		return m.capacity
	}
	return batch
}

// Units returns a copy of the window in chronological order.
func (m *Manager) Units() []month.Unit {
	return append([]month.Unit(nil), m.units...)
}

// Len reports the number of units.
func (m *Manager) Len() int { return len(m.units) }

// Capacity reports the configured maximum length.
func (m *Manager) Capacity() int { return m.capacity }

// Policy reports the configured trim policy.
func (m *Manager) Policy() TrimPolicy { return m.policy }

// At returns the unit at index i.
func (m *Manager) At(i int) (month.Unit, bool) {
	if i < 0 || i >= len(m.units) {
		return month.Unit{}, false
	}
	return m.units[i], true
}

// IndexOf returns the position of key or -1.
func (m *Manager) IndexOf(key string) int {
	for i, u := range m.units {
		if u.Key == key {
			return i
		}
	}
	return -1
}

// First returns the earliest unit.
func (m *Manager) First() (month.Unit, bool) { return m.At(0) }

// Last returns the latest unit.
func (m *Manager) Last() (month.Unit, bool) { return m.At(len(m.units) - 1) }

// Validate checks the length bound and month adjacency of the window.
func (m *Manager) Validate() error {
	if len(m.units) == 0 {
		return errors.New("window: empty")
	}
	if len(m.units) > m.capacity {
		return fmt.Errorf("window: length %d exceeds capacity %d", len(m.units), m.capacity)
	}
	for i := 1; i < len(m.units); i++ {
		if !month.Adjacent(m.units[i-1], m.units[i]) {
			return fmt.Errorf("window: %s does not follow %s", m.units[i].Key, m.units[i-1].Key)
		}
	}
	return nil
}
