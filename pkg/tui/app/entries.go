package app

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/month"
)

// setEntries replaces the journal. Card heights only depend on the month, so
// the offset stays put.
func (m *Model) setEntries(entries []entry.Dated) {
	m.entries = entries
	m.reindex()
}

// mergeMonth swaps in a freshly listed month.
func (m *Model) mergeMonth(mo, year int, fresh []entry.Dated) {
	kept := make([]entry.Dated, 0, len(m.entries)+len(fresh))
	for _, e := range m.entries {
		if e.Date.Year() == year && int(e.Date.Month())-1 == mo {
			continue
		}
		kept = append(kept, e)
	}
	kept = append(kept, fresh...)
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Date.Before(kept[j].Date) })
	m.entries = kept
	m.reindex()
}

func (m *Model) setFilters(f entry.Filters) {
	m.filters = f
	m.header.SetFilter(describeFilters(f))
	m.reindex()
}

func (m *Model) reindex() {
	m.index = entry.NewIndex(m.filters.Apply(m.entries))
	m.invalidateCards()
}

func describeFilters(f entry.Filters) string {
	if f.Empty() {
		return ""
	}
	var parts []string
	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, q)
	}
	if f.Category != "" {
		parts = append(parts, "cat:"+f.Category)
	}
	if f.MinRating > 0 {
		parts = append(parts, fmt.Sprintf("min:%g", f.MinRating))
	}
	return strings.Join(parts, " ")
}

// openViewer shows the focused month's entries, starting at today's when it
// is in that month.
func (m *Model) openViewer() tea.Cmd {
	f, ok := m.tracker.Focus()
	if !ok {
		return nil
	}
	entries := m.monthEntries(f.Unit)
	if len(entries) == 0 {
		m.command.SetStatus(fmt.Sprintf("No entries in %s", f.Unit.Name()))
		return nil
	}
	start := 0
	if today := m.now(); f.Unit.Contains(today) {
		for i, e := range sortedByDate(entries) {
			if entry.SameDay(e.Date, today) {
				start = i
				break
			}
		}
	}
	m.viewer.Show(entries, start)
	return nil
}

func sortedByDate(entries []entry.Dated) []entry.Dated {
	out := append([]entry.Dated(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// focusedUnit is the header's month, falling back to the current month.
func (m *Model) focusedUnit() month.Unit {
	if f, ok := m.tracker.Focus(); ok {
		return f.Unit
	}
	return month.FromTime(m.now())
}
