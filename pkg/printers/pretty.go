// Package printers renders months and entries for the non-interactive
// commands.
package printers

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/entry"
)

// PrettyPrint writes colored output to Out (color.Output when nil).
type PrettyPrint struct {
	Out io.Writer
	// Now marks today in month grids. time.Now when nil.
	Now func() time.Time
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now == nil {
		return time.Now()
	}
	return pp.Now()
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	_, _ = color.New(color.Bold, color.Underline).Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Entries prints a table of entries.
func (pp *PrettyPrint) Entries(entries ...entry.Dated) {
	entry.PrettyPrint(pp.out(), "", entries...)
}
