package app

import (
	"strings"

	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/tui/components/monthcard"
)

// relayout renders any unit without a cached card and recomputes the
// cumulative tops. Nothing is measured until the first WindowSizeMsg.
func (m *Model) relayout() {
	if m.width == 0 {
		return
	}
	now := m.now()
	top := 0
	tops := make(map[string]int, m.win.Len())
	for _, u := range m.win.Units() {
		card, ok := m.cards[u.Key]
		if !ok {
			card = monthcard.Render(u, m.index, now, m.theme.Month)
			m.cards[u.Key] = card
		}
		m.heights[u.Key] = card.Height()
		tops[u.Key] = top
		top += card.Height()
	}
	m.tops = tops
	m.total = top
}

// invalidateCards drops rendered cards so the next relayout picks up new
// entries or filters. Heights do not depend on entries, so offsets survive.
func (m *Model) invalidateCards() {
	m.cards = make(map[string]monthcard.Card, len(m.cards))
	m.relayout()
}

// UnitBounds implements anchor.Layout.
func (m *Model) UnitBounds(key string) (top, height int, ok bool) {
	if m.width == 0 {
		return 0, 0, false
	}
	top, ok = m.tops[key]
	if !ok {
		return 0, 0, false
	}
	return top, m.heights[key], true
}

// heightOf answers for current and just-trimmed units.
func (m *Model) heightOf(u month.Unit) int {
	return m.heights[u.Key]
}

// scrollHeight is the full content height including the loading skeleton.
func (m *Model) scrollHeight() int {
	h := m.total
	if m.loader.Loading() {
		h += len(monthcard.Skeleton(m.theme.Month))
	}
	return h
}

func (m *Model) clampOffset(offset int) int {
	maxOffset := max(0, m.scrollHeight()-m.viewportHeight())
	return min(max(0, offset), maxOffset)
}

// visibleRows slices the rows in [offset, offset+vh) out of the cards, each
// centred horizontally, padded to vh rows.
func (m *Model) visibleRows(vh int) []string {
	rows := make([]string, 0, vh)
	end := m.offset + vh
	indent := strings.Repeat(" ", max(0, (m.width-monthcard.Width)/2))
	for _, u := range m.win.Units() {
		top, ok := m.tops[u.Key]
		if !ok {
			continue
		}
		card := m.cards[u.Key]
		if top+card.Height() <= m.offset || top >= end {
			continue
		}
		for i, line := range card.Lines {
			if row := top + i; row >= m.offset && row < end {
				rows = append(rows, indent+line)
			}
		}
	}
	if m.loader.Loading() {
		row := m.total
		for _, line := range monthcard.Skeleton(m.theme.Month) {
			if row >= m.offset && row < end {
				rows = append(rows, indent+line)
			}
			row++
		}
	}
	for len(rows) < vh {
		rows = append(rows, "")
	}
	return rows
}
