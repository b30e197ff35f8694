package app

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/tui/events"
)

func startWatchCmd(parent context.Context, st store.Persistence) tea.Cmd {
	if st == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := st.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return events.StoreChangedMsg{Event: ev}
		}
		return events.StoreClosedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) loadEntriesCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		entries := st.ListAll(ctx)
		return events.EntriesLoadedMsg{Entries: entries, Err: ctx.Err()}
	}
}

// reloadFor reloads the month named by ev, or everything when the change
// could not be attributed.
func (m *Model) reloadFor(ev store.Event) tea.Cmd {
	if m.store == nil {
		return nil
	}
	if ev.Type == store.EventInvalidated {
		return m.loadEntriesCmd()
	}
	mo, year, ok := parseMonthKey(ev.Month)
	if !ok {
		m.log.Debug("unparseable month in store event, reloading all", zap.String("month", ev.Month))
		return m.loadEntriesCmd()
	}
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		return monthLoadedMsg{month: mo, year: year, entries: st.ListMonth(ctx, mo, year)}
	}
}

// parseMonthKey splits a window key like "2025-8" into month and year.
func parseMonthKey(key string) (mo, year int, ok bool) {
	y, m, found := strings.Cut(key, "-")
	if !found {
		return 0, 0, false
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return 0, 0, false
	}
	mo, err = strconv.Atoi(m)
	if err != nil || mo < 0 || mo > 11 {
		return 0, 0, false
	}
	return mo, year, true
}
