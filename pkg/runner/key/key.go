// Package key prints the legend for the glyphs daybook draws.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daybook/pkg/entry"
)

// Glyph is one legend row.
type Glyph struct {
	Symbol  string
	Meaning string
}

// Calendar lists the markers drawn inside month cards.
func Calendar() []Glyph {
	return []Glyph{
		{Symbol: "•", Meaning: "day has an entry"},
		{Symbol: "▣", Meaning: "entry has an image"},
		{Symbol: "…", Meaning: "category truncated"},
		{Symbol: "▼ ▲", Meaning: "header follows scrolling down or up"},
	}
}

// Ratings lists sample rating renderings.
func Ratings() []Glyph {
	rows := make([]Glyph, 0, 6)
	for _, r := range []float64{5, 4.5, 3, 1, 0} {
		rows = append(rows, Glyph{Symbol: entry.RatingDisplay(r), Meaning: fmt.Sprintf("%g", r)})
	}
	return rows
}

// Key prints the calendar and rating legends.
type Key struct {
	Out io.Writer
}

// Do renders the legends.
func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintln(out, "")
	k.Key(ctx, out, "Markers", Calendar())
	_, _ = fmt.Fprintln(out, "")
	k.Key(ctx, out, "Ratings", Ratings())
	_, _ = fmt.Fprintln(out, "")
	return nil
}

// Key renders one legend table under title.
func (k *Key) Key(_ context.Context, out io.Writer, title string, glyphs []Glyph) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint(title), bold.Sprint("Meaning"))
	for _, g := range glyphs {
		tbl.AddRow(g.Symbol, g.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, tbl)
}
