// Package entryviewer shows one journal entry at a time in a modal, with
// left/right to move between entries and esc to close.
package entryviewer

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/tui/events"
	"tableflip.dev/daybook/pkg/tui/theme"
	"tableflip.dev/daybook/pkg/tui/ui"
)

const (
	maxWidth  = 64
	titleDate = "January 2, 2006"
)

var _ ui.Modal = (*Model)(nil)

// Model is the viewer state.
type Model struct {
	id      events.ComponentID
	entries []entry.Dated
	index   int
	open    bool

	width  int
	height int
	styles theme.ViewerTheme
}

// NewModel builds a closed viewer.
func NewModel(id events.ComponentID, styles theme.ViewerTheme) *Model {
	if id == "" {
		id = "viewer"
	}
	return &Model{id: id, styles: styles}
}

// Show opens the viewer on entries, sorted by date, starting at the entry
// closest to start. An empty list leaves the viewer closed.
func (m *Model) Show(entries []entry.Dated, start int) bool {
	if len(entries) == 0 {
		m.open = false
		return false
	}
	sorted := append([]entry.Dated(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	m.entries = sorted
	m.index = clamp(start, 0, len(sorted)-1)
	m.open = true
	return true
}

// Open implements ui.Modal.
func (m *Model) Open() bool { return m.open }

// Current returns the entry on screen.
func (m *Model) Current() (entry.Dated, bool) {
	if !m.open || len(m.entries) == 0 {
		return entry.Dated{}, false
	}
	return m.entries[m.index], true
}

// Index reports the position of the entry on screen.
func (m *Model) Index() int { return m.index }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if !m.open {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "esc", "q":
		last, _ := m.Current()
		m.open = false
		return m, events.ViewerClosedCmd(m.id, last)
	case "left", "h":
		if m.index > 0 {
			m.index--
		}
	case "right", "l":
		if m.index < len(m.entries)-1 {
			m.index++
		}
	}
	return m, nil
}

// View renders the framed entry or "" while closed.
func (m *Model) View() string {
	e, ok := m.Current()
	if !ok {
		return ""
	}
	width := min(maxWidth, max(20, m.width-4))
	inner := max(1, width-m.styles.Frame.GetHorizontalFrameSize())

	rating := fmt.Sprintf("%s %.1f", entry.RatingDisplay(e.Rating), e.Rating)
	title := m.styles.Title.Render(e.Date.Format(titleDate))
	gap := max(1, inner-lipgloss.Width(title)-lipgloss.Width(rating))
	lines := []string{title + strings.Repeat(" ", gap) + m.styles.Meta.Render(rating)}

	if len(e.Categories) > 0 {
		tags := make([]string, len(e.Categories))
		for i, c := range e.Categories {
			tags[i] = "[" + c + "]"
		}
		lines = append(lines, m.styles.Meta.Render(wordwrap.String(strings.Join(tags, " "), inner)))
	}
	if e.ImgURL != "" {
		lines = append(lines, m.styles.Meta.Render(truncate.StringWithTail("▣ "+e.ImgURL, uint(inner), "…")))
	}
	lines = append(lines, "")
	if e.Description != "" {
		lines = append(lines, m.styles.Body.Render(wordwrap.String(e.Description, inner)))
	}
	lines = append(lines, "", m.pager(inner))

	return m.styles.Frame.Width(width).Render(strings.Join(lines, "\n"))
}

// pager renders the position dots with arrows for the available directions.
func (m *Model) pager(width int) string {
	dots := make([]string, len(m.entries))
	for i := range m.entries {
		dots[i] = "○"
		if i == m.index {
			dots[i] = "●"
		}
	}
	left, right := " ", " "
	if m.index > 0 {
		left = "←"
	}
	if m.index < len(m.entries)-1 {
		right = "→"
	}
	line := left + " " + strings.Join(dots, " ") + " " + right
	if lipgloss.Width(line) > width {
		line = fmt.Sprintf("%s %d/%d %s", left, m.index+1, len(m.entries), right)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, m.styles.Meta.Render(line))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
