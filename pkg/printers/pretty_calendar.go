package printers

import (
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/month"
)

const width = len(calendar.WeekdayHeader)

// Month prints a compact grid. Days with an entry are bold, today is
// underlined.
func (pp *PrettyPrint) Month(u month.Unit, entries ...entry.Dated) {
	w := pp.out()
	idx := entry.NewIndex(entries)

	tf := color.New(color.FgWhite, color.Italic)
	title := u.String()
	mid := (width - len(title)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(w, "%s%s\n", strings.Repeat(" ", mid), title)
	_, _ = color.New(color.Faint).Fprintln(w, calendar.WeekdayHeader)

	outside := color.New(color.Faint, color.FgWhite)
	plain := color.New(color.FgWhite)
	marked := color.New(color.Bold, color.FgHiWhite)

	for _, week := range calendar.Weeks(calendar.EnumerateDays(u.Month, u.Year, pp.now())) {
		for i, d := range week {
			printer := plain
			switch {
			case !d.IsCurrentMonth:
				printer = outside
			default:
				if _, ok := idx.Lookup(d.Date); ok {
					printer = marked
				}
			}
			if d.IsToday {
				printer = color.New(color.Underline, color.Bold)
			}
			_, _ = printer.Fprintf(w, "%2d", d.DayNumber)
			if i < len(week)-1 {
				_, _ = plain.Fprint(w, " ")
			}
		}
		_, _ = plain.Fprint(w, "\n")
	}
	_, _ = plain.Fprint(w, "\n")
}

// MonthLong prints one line per day with the entry for that day, if any.
func (pp *PrettyPrint) MonthLong(u month.Unit, entries ...entry.Dated) {
	w := pp.out()
	idx := entry.NewIndex(entries)
	p := color.New()
	b := color.New(color.Bold)
	s := color.New(color.Underline)
	faint := color.New(color.Faint)

	pp.Title(u.String())
	for _, d := range calendar.EnumerateDays(u.Month, u.Year, pp.now()) {
		if !d.IsCurrentMonth {
			continue
		}
		printer := p
		if d.Date.Weekday() == 0 {
			printer = s
		}
		if d.IsToday {
			printer = b
		}
		_, _ = printer.Fprintf(w, "%2d %s", d.DayNumber, d.Date.Weekday().String()[0:1])
		if e, ok := idx.Lookup(d.Date); ok {
			_, _ = p.Fprintf(w, "  %s %s", entry.RatingDisplay(e.Rating), e.Description)
			if c := e.FirstCategory(); c != "" {
				_, _ = faint.Fprintf(w, " #%s", c)
			}
		}
		_, _ = p.Fprint(w, "\n")
	}
}
