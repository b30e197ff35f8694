// Package eventviewer is the ":debug" panel: a scrolling log of the messages
// flowing through the root model.
package eventviewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"go.uber.org/zap/zapcore"

	"tableflip.dev/daybook/pkg/tui/ui"
)

// Entry captures a rendered event.
type Entry struct {
	Timestamp time.Time
	Source    string
	Summary   string
	Detail    string
	Level     zapcore.Level
}

// Styles controls the log's presentation.
type Styles struct {
	Frame     lipgloss.Style
	Header    lipgloss.Style
	Debug     lipgloss.Style
	Info      lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
	Timestamp lipgloss.Style
	Source    lipgloss.Style
}

// DefaultStyles returns the stock styling.
func DefaultStyles() Styles {
	return Styles{
		Frame:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
		Debug:     lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB347")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Source:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

var _ ui.Component = (*Model)(nil)

// Model renders a streaming event log, newest entry last. The view follows
// the tail until the user scrolls up.
type Model struct {
	viewport   viewport.Model
	entries    []Entry
	maxEntries int
	follow     bool
	minLevel   zapcore.Level

	width  int
	height int
	styles Styles
}

// NewModel constructs a viewer that keeps at most maxEntries entries.
func NewModel(maxEntries int) *Model {
	if maxEntries <= 0 {
		maxEntries = 200
	}
	return &Model{
		viewport:   viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		maxEntries: maxEntries,
		follow:     true,
		minLevel:   zapcore.DebugLevel,
		styles:     DefaultStyles(),
	}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component. Up/down scroll the log; any upward move
// stops following the tail and "end" resumes it.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "end":
		m.follow = true
		m.viewport.GotoBottom()
		return m, nil
	case "up", "k", "pgup":
		m.follow = false
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	if m.viewport.AtBottom() {
		m.follow = true
	}
	return m, cmd
}

// SetSize resizes the viewport inside the border and header row.
func (m *Model) SetSize(width, height int) {
	width = max(width, 4)
	height = max(height, 3)
	if m.width == width && m.height == height {
		return
	}
	m.width, m.height = width, height
	m.viewport.SetWidth(max(1, width-2))
	m.viewport.SetHeight(max(1, height-3))
	m.refresh()
}

// SetMinLevel hides entries below level.
func (m *Model) SetMinLevel(level zapcore.Level) {
	m.minLevel = level
	m.refresh()
}

// View renders the bordered viewport.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	title := fmt.Sprintf("Events (%d)", len(m.entries))
	if !m.follow {
		title += " · paused"
	}
	body := lipgloss.JoinVertical(lipgloss.Left, m.styles.Header.Render(title), m.viewport.View())
	return m.styles.Frame.Width(m.width - 2).Render(body)
}

// Append adds an entry at the tail.
func (m *Model) Append(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	if e.Source == "" {
		e.Source = "tea"
	}
	if e.Summary == "" {
		e.Summary = "event"
	}
	m.entries = append(m.entries, e)
	if over := len(m.entries) - m.maxEntries; over > 0 {
		m.entries = append([]Entry(nil), m.entries[over:]...)
	}
	m.refresh()
}

// Entries returns a copy of the retained entries, oldest first.
func (m *Model) Entries() []Entry { return append([]Entry(nil), m.entries...) }

// Clear drops all logged entries.
func (m *Model) Clear() {
	m.entries = nil
	m.follow = true
	m.refresh()
}

func (m *Model) refresh() {
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		if e.Level < m.minLevel {
			continue
		}
		lines = append(lines, m.render(e))
	}
	if len(lines) == 0 {
		lines = append(lines, m.styles.Timestamp.Render("No events yet"))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	if m.follow {
		m.viewport.GotoBottom()
	}
}

func (m *Model) render(e Entry) string {
	ts := m.styles.Timestamp.Render(e.Timestamp.Format("15:04:05.000"))
	source := m.styles.Source.Render("[" + e.Source + "]")
	msg := e.Summary
	if e.Detail != "" {
		msg += " " + e.Detail
	}
	switch {
	case e.Level >= zapcore.ErrorLevel:
		msg = m.styles.Error.Render(msg)
	case e.Level == zapcore.WarnLevel:
		msg = m.styles.Warn.Render(msg)
	case e.Level == zapcore.DebugLevel:
		msg = m.styles.Debug.Render(msg)
	default:
		msg = m.styles.Info.Render(msg)
	}
	return ts + " " + source + " " + msg
}
