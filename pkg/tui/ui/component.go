// Package ui holds the contracts shared by daybook's Bubble Tea components.
package ui

import tea "github.com/charmbracelet/bubbletea/v2"

// Component is implemented by the header, the entry viewer and the event log.
// The root model owns layout and passes sizes down.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Modal is a Component drawn over the calendar while it is open. Keys go to
// an open modal before the calendar sees them.
type Modal interface {
	Component
	Open() bool
}
