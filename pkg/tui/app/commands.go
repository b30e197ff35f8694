package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/tui/components/command"
	"tableflip.dev/daybook/pkg/tui/events"
)

var suggestions = []command.SuggestionOption{
	{Name: "goto", Description: "Jump to a month (goto 2025-09)"},
	{Name: "today", Description: "Jump to the current month"},
	{Name: "filter-clear", Description: "Drop the search filter"},
	{Name: "reload", Description: "Reload entries from disk"},
	{Name: "clear-images", Description: "Empty the image cache"},
	{Name: "debug", Description: "Toggle the event log"},
	{Name: "help", Description: "Toggle key help"},
	{Name: "quit", Description: "Exit daybook"},
}

// runCommand executes a submitted ":" command.
func (m *Model) runCommand(msg events.CommandSubmitMsg) tea.Cmd {
	args := msg.Args()
	switch msg.Name() {
	case "":
		return nil
	case "q", "quit", "exit":
		return tea.Quit
	case "today":
		return m.jumpToMonth(month.FromTime(m.now()))
	case "goto":
		if len(args) == 0 {
			m.command.SetStatus("Showing " + m.focusedUnit().String())
			return nil
		}
		u, err := parseGotoArg(strings.Join(args, " "))
		if err != nil {
			m.command.SetStatus("ERR: " + err.Error())
			return nil
		}
		return m.jumpToMonth(u)
	case "filter-clear":
		m.command.SetFilter("")
		m.setFilters(entry.Filters{})
		m.command.SetStatus("Filter cleared")
		return nil
	case "reload":
		m.command.SetStatus("Reloading")
		return m.loadEntriesCmd()
	case "clear-images":
		if m.cache != nil {
			m.cache.Clear()
			m.header.SetUsage(m.cache.Usage())
		}
		m.inflight = make(map[string]struct{})
		m.command.SetStatus("Image cache cleared")
		return nil
	case "debug":
		m.showEvents = !m.showEvents
		m.resize(m.width, m.height)
		m.offset = m.clampOffset(m.offset)
		return events.DebugCmd(commandID, "debug", fmt.Sprintf("events:%t", m.showEvents))
	case "help":
		m.showHelp = !m.showHelp
		return nil
	default:
		m.command.SetStatus(fmt.Sprintf("Unknown command %q", msg.Name()))
		return nil
	}
}

// parseGotoArg accepts "2025-09", "2025-9" or "Sep 2025".
func parseGotoArg(arg string) (month.Unit, error) {
	arg = strings.TrimSpace(arg)
	for _, layout := range []string{"2006-01", "2006-1", "Jan 2006", "January 2006"} {
		if t, err := time.Parse(layout, arg); err == nil {
			return month.FromTime(t), nil
		}
	}
	return month.Unit{}, fmt.Errorf("goto: cannot parse %q as a month", arg)
}
