package entryviewer

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/tui/events"
	"tableflip.dev/daybook/pkg/tui/theme"
)

func day(d int) time.Time {
	return time.Date(2025, time.September, d, 0, 0, 0, 0, time.UTC)
}

func press(s string) tea.KeyPressMsg {
	r := []rune(s)
	return tea.KeyPressMsg{Text: s, Code: r[0]}
}

func newViewer(t *testing.T) *Model {
	t.Helper()
	m := NewModel("", theme.New(true).Viewer)
	m.SetSize(80, 24)
	ok := m.Show([]entry.Dated{
		{Date: day(20), Rating: 2, Description: "rain"},
		{Date: day(3), Rating: 4.5, Categories: []string{"walk"}, Description: "long walk"},
		{Date: day(11), Rating: 3, ImgURL: "https://example.com/a.png"},
	}, 0)
	if !ok {
		t.Fatalf("Show returned false")
	}
	return m
}

func TestShowEmptyStaysClosed(t *testing.T) {
	m := NewModel("", theme.New(true).Viewer)
	if m.Show(nil, 0) || m.Open() {
		t.Fatalf("an empty list must not open the viewer")
	}
	if m.View() != "" {
		t.Fatalf("closed viewer rendered %q", m.View())
	}
}

func TestShowSortsByDate(t *testing.T) {
	m := newViewer(t)
	e, ok := m.Current()
	if !ok || !e.Date.Equal(day(3)) {
		t.Fatalf("first entry is %v", e.Date)
	}
}

func TestNavigationClamps(t *testing.T) {
	m := newViewer(t)
	m.Update(press("h"))
	if m.Index() != 0 {
		t.Fatalf("left at the start moved to %d", m.Index())
	}
	for i := 0; i < 5; i++ {
		m.Update(press("l"))
	}
	if m.Index() != 2 {
		t.Fatalf("right past the end moved to %d", m.Index())
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if e, _ := m.Current(); !e.Date.Equal(day(11)) {
		t.Fatalf("left arrow landed on %v", e.Date)
	}
}

func TestEscCloses(t *testing.T) {
	m := newViewer(t)
	m.Update(press("l"))
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.Open() {
		t.Fatalf("esc did not close the viewer")
	}
	if cmd == nil {
		t.Fatalf("closing should emit a message")
	}
	msg, ok := cmd().(events.ViewerClosedMsg)
	if !ok || !msg.Last.Date.Equal(day(11)) {
		t.Fatalf("closed with %#v", msg)
	}
}

func TestViewShowsEntry(t *testing.T) {
	m := newViewer(t)
	view := m.View()
	for _, want := range []string{"September 3, 2025", "[walk]", "long walk", "→"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestStartIsClamped(t *testing.T) {
	m := NewModel("", theme.New(true).Viewer)
	m.Show([]entry.Dated{{Date: day(1)}, {Date: day(2)}}, 9)
	if m.Index() != 1 {
		t.Fatalf("Index() = %d, want 1", m.Index())
	}
}
