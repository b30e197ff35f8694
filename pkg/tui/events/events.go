// Package events defines the messages daybook components exchange through the
// Bubble Tea runtime. Every message implements Describe so the debug log can
// render it.
package events

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/imagecache"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/visibility"
	"tableflip.dev/daybook/pkg/window"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// Describer is implemented by every message in this package.
type Describer interface {
	Describe() string
}

// EntriesLoadedMsg carries a full reload of the journal.
type EntriesLoadedMsg struct {
	Entries []entry.Dated
	Err     error
}

// Describe implements the logging helper.
func (m EntriesLoadedMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf(`error:%q`, m.Err.Error())
	}
	return fmt.Sprintf(`entries:%d`, len(m.Entries))
}

// StoreChangedMsg is emitted when the store watcher reports a change on disk.
type StoreChangedMsg struct {
	Event store.Event
}

// Describe implements the logging helper.
func (m StoreChangedMsg) Describe() string {
	if m.Event.Type == store.EventInvalidated {
		return `scope:"all"`
	}
	return fmt.Sprintf(`scope:"month" month:%q`, m.Event.Month)
}

// StoreClosedMsg is emitted when the watch channel closes.
type StoreClosedMsg struct{}

// Describe implements the logging helper.
func (StoreClosedMsg) Describe() string { return `state:"closed"` }

// WindowExpandedMsg reports a window mutation and the offset correction
// applied with it.
type WindowExpandedMsg struct {
	Edit       window.Edit
	Correction int
	Length     int
}

// Describe implements the logging helper.
func (m WindowExpandedMsg) Describe() string {
	return fmt.Sprintf(`edge:%q added:%d trimmed:%d correction:%d length:%d`,
		m.Edit.Edge, len(m.Edit.Added), len(m.Edit.Trimmed), m.Correction, m.Length)
}

// WindowExpandedCmd wraps WindowExpandedMsg.
func WindowExpandedCmd(edit window.Edit, correction, length int) tea.Cmd {
	return func() tea.Msg {
		return WindowExpandedMsg{Edit: edit, Correction: correction, Length: length}
	}
}

// FocusChangedMsg announces a new published focus.
type FocusChangedMsg struct {
	Focus visibility.Focus
}

// Describe implements the logging helper.
func (m FocusChangedMsg) Describe() string {
	return fmt.Sprintf(`month:%q direction:%q`, m.Focus.Unit.Key, m.Focus.Direction)
}

// FocusChangedCmd wraps FocusChangedMsg.
func FocusChangedCmd(f visibility.Focus) tea.Cmd {
	return func() tea.Msg { return FocusChangedMsg{Focus: f} }
}

// ImagesPreloadedMsg reports a settled preload batch.
type ImagesPreloadedMsg struct {
	URLs   []string
	Failed []string
	Usage  imagecache.Usage
}

// Describe implements the logging helper.
func (m ImagesPreloadedMsg) Describe() string {
	return fmt.Sprintf(`urls:%d failed:%d usage:%d/%d`, len(m.URLs), len(m.Failed), m.Usage.Count, m.Usage.Cap)
}

// CommandMode represents the current state of the command prompt.
type CommandMode string

const (
	// CommandModePassive indicates the prompt is idle.
	CommandModePassive CommandMode = "passive"
	// CommandModeCommand collects a ":" command.
	CommandModeCommand CommandMode = "command"
	// CommandModeFilter collects a "/" search query.
	CommandModeFilter CommandMode = "filter"
)

// CommandChangeMsg is emitted when the prompt value changes.
type CommandChangeMsg struct {
	Component ComponentID
	Value     string
	Mode      CommandMode
}

// Describe implements the logging helper.
func (m CommandChangeMsg) Describe() string {
	return fmt.Sprintf(`value:%q mode:%q`, m.Value, m.Mode)
}

// CommandSubmitMsg is emitted when a ":" command is submitted.
type CommandSubmitMsg struct {
	Component ComponentID
	Value     string
}

// Describe implements the logging helper.
func (m CommandSubmitMsg) Describe() string {
	return fmt.Sprintf(`value:%q`, m.Value)
}

// Name returns the first word of the submitted command.
func (m CommandSubmitMsg) Name() string {
	fields := strings.Fields(m.Value)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// Args returns everything after the command name.
func (m CommandSubmitMsg) Args() []string {
	fields := strings.Fields(m.Value)
	if len(fields) < 2 {
		return nil
	}
	return fields[1:]
}

// FilterChangeMsg is emitted while the search query is edited and on submit.
type FilterChangeMsg struct {
	Component ComponentID
	Filters   entry.Filters
}

// Describe implements the logging helper.
func (m FilterChangeMsg) Describe() string {
	return fmt.Sprintf(`query:%q category:%q min_rating:%.1f`, m.Filters.Query, m.Filters.Category, m.Filters.MinRating)
}

// CommandCancelMsg is emitted when entry is cancelled.
type CommandCancelMsg struct {
	Component ComponentID
	Mode      CommandMode
}

// Describe implements the logging helper.
func (m CommandCancelMsg) Describe() string {
	return fmt.Sprintf(`component:%q mode:%q`, m.Component, m.Mode)
}

// CommandChangeCmd wraps CommandChangeMsg.
func CommandChangeCmd(component ComponentID, value string, mode CommandMode) tea.Cmd {
	return func() tea.Msg {
		return CommandChangeMsg{Component: component, Value: value, Mode: mode}
	}
}

// CommandSubmitCmd wraps CommandSubmitMsg.
func CommandSubmitCmd(component ComponentID, value string) tea.Cmd {
	return func() tea.Msg {
		return CommandSubmitMsg{Component: component, Value: value}
	}
}

// FilterChangeCmd wraps FilterChangeMsg.
func FilterChangeCmd(component ComponentID, filters entry.Filters) tea.Cmd {
	return func() tea.Msg {
		return FilterChangeMsg{Component: component, Filters: filters}
	}
}

// CommandCancelCmd wraps CommandCancelMsg.
func CommandCancelCmd(component ComponentID, mode CommandMode) tea.Cmd {
	return func() tea.Msg {
		return CommandCancelMsg{Component: component, Mode: mode}
	}
}

// ViewerClosedMsg is emitted when the entry viewer is dismissed.
type ViewerClosedMsg struct {
	Component ComponentID
	Last      entry.Dated
}

// Describe implements the logging helper.
func (m ViewerClosedMsg) Describe() string {
	return fmt.Sprintf(`component:%q last:%q`, m.Component, m.Last.DisplayDate)
}

// ViewerClosedCmd wraps ViewerClosedMsg.
func ViewerClosedCmd(component ComponentID, last entry.Dated) tea.Cmd {
	return func() tea.Msg {
		return ViewerClosedMsg{Component: component, Last: last}
	}
}

// DebugMsg captures optional diagnostic notes emitted by components.
type DebugMsg struct {
	Component ComponentID
	Context   string
	Detail    string
}

// Describe renders the debug message in a human-readable format.
func (m DebugMsg) Describe() string {
	return fmt.Sprintf(`component:%q context:%q detail:%q`, m.Component, m.Context, m.Detail)
}

// DebugCmd wraps DebugMsg creation in a tea.Cmd helper.
func DebugCmd(component ComponentID, context, detail string) tea.Cmd {
	return func() tea.Msg {
		return DebugMsg{Component: component, Context: context, Detail: detail}
	}
}
