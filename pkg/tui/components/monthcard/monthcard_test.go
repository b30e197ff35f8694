package monthcard

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/tui/theme"
)

var now = time.Date(2025, time.September, 14, 9, 0, 0, 0, time.UTC)

func TestRenderMatchesPredictedHeight(t *testing.T) {
	th := theme.New(true).Month
	u := month.Must(0, 2025)
	for i := 0; i < 24; i++ {
		card := Render(u, nil, now, th)
		if card.Height() != Height(u) {
			t.Errorf("%s: rendered %d rows, predicted %d", u, card.Height(), Height(u))
		}
		u = month.Next(u)
	}
}

func TestRenderLinesAreCardWidth(t *testing.T) {
	th := theme.New(false).Month
	idx := entry.NewIndex([]entry.Dated{
		{Date: time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC), Rating: 4.5, Categories: []string{"extraordinarily-long"}, ImgURL: "a.png"},
	})
	card := Render(month.Must(8, 2025), idx, now, th)
	for i, line := range card.Lines {
		if strings.Contains(line, "\n") {
			t.Fatalf("line %d contains a newline", i)
		}
		if w := lipgloss.Width(line); w != Width {
			t.Errorf("line %d is %d cells wide, want %d", i, w, Width)
		}
	}
}

func TestRenderCountsOnlyOwnEntries(t *testing.T) {
	th := theme.New(true).Month
	idx := entry.NewIndex([]entry.Dated{
		{Date: time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC), Rating: 3},
		{Date: time.Date(2025, time.September, 20, 0, 0, 0, 0, time.UTC), Rating: 5},
		// spills into September's first row
		{Date: time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC), Rating: 1},
	})
	card := Render(month.Must(8, 2025), idx, now, th)
	if card.Entries != 2 {
		t.Fatalf("Entries = %d, want 2", card.Entries)
	}
}

func TestHeightIgnoresEntries(t *testing.T) {
	th := theme.New(true).Month
	u := month.Must(8, 2025)
	empty := Render(u, nil, now, th)
	full := Render(u, entry.NewIndex([]entry.Dated{{Date: now, Rating: 5, Categories: []string{"x"}}}), now, th)
	if empty.Height() != full.Height() {
		t.Fatalf("entries changed the card height: %d vs %d", empty.Height(), full.Height())
	}
}

func TestSkeleton(t *testing.T) {
	lines := Skeleton(theme.New(true).Month)
	if len(lines) != 4 {
		t.Fatalf("skeleton has %d lines", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != Width {
			t.Errorf("skeleton line %d is %d wide", i, w)
		}
	}
}
