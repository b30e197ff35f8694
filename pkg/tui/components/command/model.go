// Package command is the bottom bar: a status line that turns into a ":"
// command prompt or a "/" search prompt.
package command

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/sahilm/fuzzy"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/tui/events"
	"tableflip.dev/daybook/pkg/tui/theme"
)

// Options configures the command bar.
type Options struct {
	ID          events.ComponentID
	Placeholder string
	StatusText  string
	Styles      theme.FooterTheme
}

// SuggestionOption is a command the prompt can complete.
type SuggestionOption struct {
	Name        string
	Description string
}

// Mode identifies the command bar operating state.
type Mode int

const (
	// ModePassive displays the status line.
	ModePassive Mode = iota
	// ModeCommand collects a ":" command.
	ModeCommand
	// ModeFilter collects a "/" search query and applies it as it is typed.
	ModeFilter
)

func (m Mode) event() events.CommandMode {
	switch m {
	case ModeCommand:
		return events.CommandModeCommand
	case ModeFilter:
		return events.CommandModeFilter
	default:
		return events.CommandModePassive
	}
}

func (m Mode) prefix() string {
	if m == ModeFilter {
		return "/"
	}
	return ":"
}

// Model renders the bar. The root model places it on the last row.
type Model struct {
	id    events.ComponentID
	mode  Mode
	width int

	status string
	prompt textinput.Model
	styles theme.FooterTheme

	// filter is the applied search, restored when a "/" edit is cancelled.
	filter      string
	suggestions []SuggestionOption
	matches     []SuggestionOption
	selected    int
	limit       int
}

// NewModel constructs a command bar with the provided options.
func NewModel(opts Options) *Model {
	prompt := textinput.New()
	prompt.Placeholder = opts.Placeholder
	prompt.Prompt = ""
	prompt.Blur()

	id := opts.ID
	if id == "" {
		id = "command"
	}
	return &Model{
		id:       id,
		status:   opts.StatusText,
		prompt:   prompt,
		styles:   opts.Styles,
		selected: -1,
		limit:    6,
	}
}

// ID exposes the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// SetWidth sizes the bar.
func (m *Model) SetWidth(width int) {
	m.width = max(1, width)
	m.prompt.SetWidth(max(1, m.width-2))
}

// SetStatus updates the passive status text.
func (m *Model) SetStatus(text string) { m.status = text }

// Status returns the passive status text.
func (m *Model) Status() string { return m.status }

// SetSuggestions configures the ":" command list.
func (m *Model) SetSuggestions(options []SuggestionOption) {
	m.suggestions = append([]SuggestionOption(nil), options...)
	m.match(m.prompt.Value())
}

// Mode reports the current mode.
func (m *Model) Mode() Mode { return m.mode }

// InInputMode reports whether the prompt holds keyboard focus.
func (m *Model) InInputMode() bool { return m.mode != ModePassive }

// Value returns the current prompt contents.
func (m *Model) Value() string { return m.prompt.Value() }

// Filter returns the applied search text.
func (m *Model) Filter() string { return m.filter }

// SetFilter replaces the applied search text without emitting a change.
func (m *Model) SetFilter(value string) { m.filter = value }

// BeginInput switches the bar into mode with an initial value.
func (m *Model) BeginInput(mode Mode, initial string) tea.Cmd {
	if mode == ModePassive {
		return m.ExitInput()
	}
	m.mode = mode
	m.prompt.SetValue(initial)
	m.prompt.CursorEnd()
	m.selected = -1
	m.match(initial)
	return tea.Batch(m.prompt.Focus(), events.CommandChangeCmd(m.id, initial, mode.event()))
}

// ExitInput returns the bar to passive mode.
func (m *Model) ExitInput() tea.Cmd {
	m.mode = ModePassive
	m.prompt.Blur()
	m.prompt.SetValue("")
	m.matches = nil
	m.selected = -1
	return events.CommandChangeCmd(m.id, "", events.CommandModePassive)
}

// Update routes key presses while the prompt is open and opens it on ":" or
// "/" while passive. The returned bool reports whether the key was consumed.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd, bool) {
	key, isKey := msg.(tea.KeyMsg)
	if m.mode == ModePassive {
		if !isKey {
			return m, nil, false
		}
		switch key.String() {
		case ":":
			return m, m.BeginInput(ModeCommand, ""), true
		case "/":
			return m, m.BeginInput(ModeFilter, m.filter), true
		}
		return m, nil, false
	}

	if isKey {
		switch key.String() {
		case "esc":
			mode := m.mode
			cmds := []tea.Cmd{m.ExitInput(), events.CommandCancelCmd(m.id, mode.event())}
			if mode == ModeFilter {
				cmds = append(cmds, events.FilterChangeCmd(m.id, ParseFilters(m.filter)))
			}
			return m, tea.Batch(cmds...), true
		case "enter":
			value := strings.TrimSpace(m.prompt.Value())
			mode := m.mode
			cmds := []tea.Cmd{m.ExitInput()}
			switch mode {
			case ModeCommand:
				if value != "" {
					cmds = append(cmds, events.CommandSubmitCmd(m.id, value))
				}
			case ModeFilter:
				m.filter = value
				cmds = append(cmds, events.FilterChangeCmd(m.id, ParseFilters(value)))
			}
			return m, tea.Batch(cmds...), true
		case "tab", "down":
			if m.mode == ModeCommand && m.cycle(1) {
				return m, events.CommandChangeCmd(m.id, m.prompt.Value(), m.mode.event()), true
			}
			return m, nil, true
		case "shift+tab", "up":
			if m.mode == ModeCommand && m.cycle(-1) {
				return m, events.CommandChangeCmd(m.id, m.prompt.Value(), m.mode.event()), true
			}
			return m, nil, true
		}
	}

	prev := m.prompt.Value()
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	cmds := []tea.Cmd{cmd}
	if value := m.prompt.Value(); value != prev {
		m.selected = -1
		m.match(value)
		cmds = append(cmds, events.CommandChangeCmd(m.id, value, m.mode.event()))
		if m.mode == ModeFilter {
			cmds = append(cmds, events.FilterChangeCmd(m.id, ParseFilters(value)))
		}
	}
	return m, tea.Batch(cmds...), isKey
}

// match ranks the suggestions against value with a fuzzy match.
func (m *Model) match(value string) {
	if m.mode != ModeCommand {
		m.matches = nil
		return
	}
	value = strings.TrimSpace(value)
	if value == "" {
		m.matches = append(m.matches[:0], m.suggestions...)
		return
	}
	names := make([]string, len(m.suggestions))
	for i, s := range m.suggestions {
		names[i] = s.Name
	}
	found := fuzzy.Find(strings.Fields(value)[0], names)
	m.matches = m.matches[:0]
	for _, f := range found {
		m.matches = append(m.matches, m.suggestions[f.Index])
	}
}

func (m *Model) cycle(delta int) bool {
	n := len(m.matches)
	if n == 0 {
		return false
	}
	if m.selected < 0 {
		if delta > 0 {
			m.selected = 0
		} else {
			m.selected = n - 1
		}
	} else {
		m.selected = ((m.selected+delta)%n + n) % n
	}
	m.prompt.SetValue(m.matches[m.selected].Name)
	m.prompt.CursorEnd()
	return true
}

// Suggestions renders the visible completion rows, or "" when there are none.
func (m *Model) Suggestions() string {
	if m.mode != ModeCommand || len(m.matches) == 0 {
		return ""
	}
	start := 0
	if m.selected >= m.limit {
		start = m.selected - m.limit + 1
	}
	end := min(len(m.matches), start+m.limit)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		opt := m.matches[i]
		name, desc := m.styles.CommandName, m.styles.CommandDescription
		marker := "  "
		if i == m.selected {
			name, desc = m.styles.CommandSelectedName, m.styles.CommandSelectedDesc
			marker = "→ "
		}
		rows = append(rows, marker+name.Render(opt.Name)+"  "+desc.Render(opt.Description))
	}
	return strings.Join(rows, "\n")
}

// View renders the bar line. The cursor is relative to the bar.
func (m *Model) View() (string, *tea.Cursor) {
	if m.mode == ModePassive {
		status := m.status
		if status == "" {
			status = "? keys · : command · / search"
		}
		line := lipgloss.NewStyle().Width(m.width).Align(lipgloss.Right).Render(m.styles.Status.Render(status))
		return line, nil
	}
	prefix := m.styles.Prompt.Render(m.mode.prefix())
	line := prefix + " " + m.prompt.View()
	var cursor *tea.Cursor
	if c := m.prompt.Cursor(); c != nil {
		cp := *c
		cp.X += 2
		cursor = &cp
	}
	return line, cursor
}

// ParseFilters turns a search line into filters. "cat:name" selects a
// category, "min:3.5" a minimum rating, and the remaining words form the
// fuzzy query.
func ParseFilters(value string) entry.Filters {
	var (
		f     entry.Filters
		query []string
	)
	for _, word := range strings.Fields(value) {
		switch {
		case strings.HasPrefix(word, "cat:"):
			f.Category = strings.TrimPrefix(word, "cat:")
		case strings.HasPrefix(word, "min:"):
			if r, err := strconv.ParseFloat(strings.TrimPrefix(word, "min:"), 64); err == nil {
				f.MinRating = r
			} else {
				query = append(query, word)
			}
		default:
			query = append(query, word)
		}
	}
	f.Query = strings.Join(query, " ")
	return f
}
