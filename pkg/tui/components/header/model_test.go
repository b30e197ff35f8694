package header

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/daybook/pkg/imagecache"
	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/tui/events"
	"tableflip.dev/daybook/pkg/tui/theme"
	"tableflip.dev/daybook/pkg/visibility"
)

func TestViewBeforeFocus(t *testing.T) {
	m := NewModel(theme.New(true).Header)
	if m.View() != "" {
		t.Fatalf("unsized header rendered %q", m.View())
	}
	m.SetSize(60, 1)
	if !strings.Contains(m.View(), "…") {
		t.Fatalf("header without focus should show a placeholder: %q", m.View())
	}
}

func TestFocusChangedUpdatesTitle(t *testing.T) {
	m := NewModel(theme.New(true).Header)
	m.SetSize(60, 1)
	m.Update(events.FocusChangedMsg{Focus: visibility.Focus{Unit: month.Must(8, 2025), Direction: visibility.Up}})

	f, ok := m.Focus()
	if !ok || f.Unit != month.Must(8, 2025) {
		t.Fatalf("Focus() = %+v, %v", f, ok)
	}
	view := m.View()
	for _, want := range []string{"September 2025", "▲"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q: %q", want, view)
		}
	}
	if w := lipgloss.Width(view); w != 60 {
		t.Fatalf("view is %d wide, want 60", w)
	}
}

func TestMetaSegments(t *testing.T) {
	m := NewModel(theme.New(false).Header)
	m.SetSize(80, 1)
	m.SetFocus(visibility.Focus{Unit: month.Must(0, 2026), Direction: visibility.Down})
	m.SetLoading(true)
	m.SetFilter("walk")
	m.SetUsage(imagecache.Usage{Count: 3, Cap: 50})

	view := m.View()
	for _, want := range []string{"▼", "/walk", "loading", "img 3/50"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q: %q", want, view)
		}
	}

	m.SetLoading(false)
	if strings.Contains(m.View(), "loading") {
		t.Fatalf("loading marker should clear")
	}
}
