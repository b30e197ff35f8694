package entry

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// Row returns the columns shown for e in tables.
func (d Dated) Row() (string, string, string, string) {
	return d.DisplayDate, RatingDisplay(d.Rating), strings.Join(d.Categories, ", "), d.Description
}

// PrettyPrint writes entries as an aligned table under a bold title.
func PrettyPrint(w io.Writer, title string, entries ...Dated) {
	if w == nil {
		w = color.Output
	}
	if title != "" {
		_, _ = fmt.Fprintln(w, color.New(color.Bold, color.Underline).Sprint(title))
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, color.New(color.Faint).Sprint("no entries"))
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	for _, e := range entries {
		tbl.AddRow(e.Row())
	}
	_, _ = fmt.Fprintln(w, tbl)
}
