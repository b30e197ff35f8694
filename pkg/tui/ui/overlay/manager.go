// Package overlay draws a foreground block on top of a rendered background
// without disturbing the background cells around it.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// Placement controls overlay alignment and sizing.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
	Width      int
	Height     int
}

// Centered places the overlay in the middle of the background.
func Centered() Placement {
	return Placement{Horizontal: lipgloss.Center, Vertical: lipgloss.Center}
}

// Compose overlays foreground atop background. The result is exactly height
// lines of width cells.
func Compose(background string, width, height int, foreground string, placement Placement) string {
	bgLines := normalize(background, width, height)
	if foreground == "" || width <= 0 || height <= 0 {
		return strings.Join(bgLines, "\n")
	}
	fgLines := strings.Split(foreground, "\n")

	ow := placement.Width
	if ow <= 0 {
		for _, line := range fgLines {
			ow = max(ow, lipgloss.Width(line))
		}
	}
	ow = min(ow, width)
	oh := placement.Height
	if oh <= 0 {
		oh = len(fgLines)
	}
	oh = min(oh, height)
	if ow <= 0 || oh <= 0 {
		return strings.Join(bgLines, "\n")
	}

	x, y := offsets(width, height, ow, oh, placement)
	for row := 0; row < oh; row++ {
		dest := y + row
		fg := ""
		if row < len(fgLines) {
			fg = fgLines[row]
		}
		base := bgLines[dest]
		bgLines[dest] = truncate.String(base, uint(x)) + "\x1b[0m" + Pad(fg, ow) + "\x1b[0m" + skip(base, x+ow)
	}
	return strings.Join(bgLines, "\n")
}

func normalize(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = Pad(lines[i], width)
	}
	return lines
}

// Pad pads or truncates s to exactly width printable cells.
func Pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.PrintableRuneWidth(s)
	if w > width {
		s = truncate.String(s, uint(width))
		w = ansi.PrintableRuneWidth(s)
	}
	return s + strings.Repeat(" ", width-w)
}

// skip drops the first n printable cells of s. Escape sequences are kept so
// styling that started before the cut still applies.
func skip(s string, n int) string {
	var (
		b     strings.Builder
		seen  int
		inEsc bool
	)
	for _, r := range s {
		switch {
		case r == ansi.Marker:
			inEsc = true
			b.WriteRune(r)
		case inEsc:
			if ansi.IsTerminator(r) {
				inEsc = false
			}
			b.WriteRune(r)
		default:
			w := ansi.PrintableRuneWidth(string(r))
			if seen >= n {
				b.WriteRune(r)
			} else if seen+w > n {
				// a wide rune straddles the cut
				b.WriteString(strings.Repeat(" ", seen+w-n))
			}
			seen += w
		}
	}
	return b.String()
}

func offsets(width, height, ow, oh int, p Placement) (int, int) {
	x := p.MarginX
	switch p.Horizontal {
	case lipgloss.Right:
		x = width - ow - p.MarginX
	case lipgloss.Center:
		x = (width - ow) / 2
	}
	y := p.MarginY
	switch p.Vertical {
	case lipgloss.Bottom:
		y = height - oh - p.MarginY
	case lipgloss.Center:
		y = (height - oh) / 2
	}
	return clamp(x, 0, width-ow), clamp(y, 0, height-oh)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
