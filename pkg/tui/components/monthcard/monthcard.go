// Package monthcard renders one month of the infinite calendar as a fixed
// width block of terminal rows.
package monthcard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/tui/theme"
)

const (
	// CellWidth is the printable width of one day column.
	CellWidth = 6
	// Width is the printable width of a card.
	Width = 7 * CellWidth
	// RowsPerWeek is the number of terminal rows a week occupies.
	RowsPerWeek = 3

	imageMarker = "▣"
	entryMarker = "•"
)

var weekdays = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Card is a rendered month. Lines never contain newlines.
type Card struct {
	Unit  month.Unit
	Lines []string
	// Entries counts the days in the month that have an entry.
	Entries int
}

// Height is the number of rows the card occupies, including the trailing gap.
func (c Card) Height() int { return len(c.Lines) }

// String joins the card lines.
func (c Card) String() string { return strings.Join(c.Lines, "\n") }

// Height predicts the rendered height of u without rendering it.
func Height(u month.Unit) int {
	weeks := len(calendar.EnumerateDays(u.Month, u.Year, time.Now())) / 7
	return 2 + weeks*RowsPerWeek + 1
}

// Render lays out u. Entries are matched to cells by calendar day, so days
// spilling over from neighbouring months show their entries too.
func Render(u month.Unit, idx entry.Index, now time.Time, th theme.MonthTheme) Card {
	days := calendar.EnumerateDays(u.Month, u.Year, now)
	card := Card{Unit: u}

	title := u.String()
	pad := max(0, (Width-lipgloss.Width(title))/2)
	card.Lines = append(card.Lines, fit(strings.Repeat(" ", pad)+theme.GradientText(title, th.TitleFrom, th.TitleTo, lipgloss.NewStyle().Bold(true))))

	var header strings.Builder
	for _, w := range weekdays {
		header.WriteString(th.Weekday.Render(center(w, CellWidth)))
	}
	card.Lines = append(card.Lines, fit(header.String()))

	for _, week := range calendar.Weeks(days) {
		var number, rating, category strings.Builder
		for _, d := range week {
			e, has := idx.Lookup(d.Date)
			if has && d.IsCurrentMonth {
				card.Entries++
			}
			number.WriteString(renderNumber(d, has, e, th))
			if has {
				rating.WriteString(th.Rating.Render(padRight(entry.RatingDisplay(e.Rating), CellWidth)))
				category.WriteString(th.Category.Render(padRight(truncate.StringWithTail(e.FirstCategory(), CellWidth-1, "…"), CellWidth)))
			} else {
				rating.WriteString(strings.Repeat(" ", CellWidth))
				category.WriteString(strings.Repeat(" ", CellWidth))
			}
		}
		card.Lines = append(card.Lines, fit(number.String()), fit(rating.String()), fit(category.String()))
	}
	card.Lines = append(card.Lines, strings.Repeat(" ", Width))
	return card
}

func renderNumber(d calendar.Day, has bool, e entry.Dated, th theme.MonthTheme) string {
	style := th.Day
	if !d.IsCurrentMonth {
		style = th.OtherMonth
	}
	if d.IsToday {
		style = th.Today
	}
	num := style.Render(fmt.Sprintf("%2d", d.DayNumber))

	marker := " "
	if has {
		marker = th.Rating.Render(entryMarker)
	}
	img := " "
	if has && e.ImgURL != "" {
		img = th.Image.Render(imageMarker)
	}
	return num + marker + img + "  "
}

// Skeleton renders the placeholder shown while an expansion is in flight.
func Skeleton(th theme.MonthTheme) []string {
	bar := func(n int) string {
		return th.Skeleton.Render(padRight(strings.Repeat("░", n), Width))
	}
	return []string{bar(Width / 2), bar(Width), bar(Width - CellWidth), strings.Repeat(" ", Width)}
}

func center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// fit pads or truncates a styled line to exactly Width cells.
func fit(s string) string {
	if lipgloss.Width(s) > Width {
		return truncate.String(s, Width)
	}
	return padRight(s, Width)
}
