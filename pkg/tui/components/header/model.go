// Package header renders the sticky month header pinned above the calendar.
package header

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/daybook/pkg/imagecache"
	"tableflip.dev/daybook/pkg/tui/events"
	"tableflip.dev/daybook/pkg/tui/theme"
	"tableflip.dev/daybook/pkg/tui/ui"
	"tableflip.dev/daybook/pkg/visibility"
)

// Height is the number of rows the header occupies.
const Height = 1

var _ ui.Component = (*Model)(nil)

// Model is the header state. It only changes through FocusChangedMsg and the
// setters; it never reads scroll state itself.
type Model struct {
	width   int
	focus   visibility.Focus
	has     bool
	usage   imagecache.Usage
	loading bool
	filter  string
	styles  theme.HeaderTheme
}

// NewModel builds a header.
func NewModel(styles theme.HeaderTheme) *Model {
	return &Model{styles: styles}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if msg, ok := msg.(events.FocusChangedMsg); ok {
		m.SetFocus(msg.Focus)
	}
	return m, nil
}

// SetSize implements ui.Component. Height is fixed.
func (m *Model) SetSize(width, _ int) { m.width = width }

// SetFocus replaces the displayed month.
func (m *Model) SetFocus(f visibility.Focus) {
	m.focus = f
	m.has = true
}

// Focus returns the displayed month.
func (m *Model) Focus() (visibility.Focus, bool) { return m.focus, m.has }

// SetUsage updates the image counter.
func (m *Model) SetUsage(u imagecache.Usage) { m.usage = u }

// SetLoading toggles the loading marker.
func (m *Model) SetLoading(loading bool) { m.loading = loading }

// SetFilter shows the active search query, "" hides it.
func (m *Model) SetFilter(query string) { m.filter = query }

// View renders a single line padded to the width.
func (m *Model) View() string {
	if m.width <= 0 {
		return ""
	}
	title := "…"
	if m.has {
		title = m.focus.Unit.String()
	}
	arrow := "▼"
	if m.focus.Direction == visibility.Up {
		arrow = "▲"
	}
	left := m.styles.Arrow.Render(arrow) + " " + m.styles.Title.Render(title)

	var meta []string
	if m.filter != "" {
		meta = append(meta, fmt.Sprintf("/%s", m.filter))
	}
	if m.loading {
		meta = append(meta, "loading")
	}
	if m.usage.Cap > 0 {
		meta = append(meta, fmt.Sprintf("img %d/%d", m.usage.Count, m.usage.Cap))
	}
	right := m.styles.Meta.Render(strings.Join(meta, " · "))

	inner := max(0, m.width-m.styles.Bar.GetHorizontalFrameSize())
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return m.styles.Bar.Width(m.width).MaxWidth(m.width).Render(left)
	}
	return m.styles.Bar.Width(m.width).MaxWidth(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
