// Package calendar enumerates the day cells of a month grid.
package calendar

import "time"

// Day is one cell of a month grid.
type Day struct {
	Date           time.Time
	IsCurrentMonth bool
	IsToday        bool
	DayNumber      int
}

// WeekdayHeader labels the grid columns, Sunday first.
const WeekdayHeader = "Su Mo Tu We Th Fr Sa"

// EnumerateDays returns full Sunday-first weeks covering the zero-based month
// of year. Cells outside the month are included with IsCurrentMonth false.
func EnumerateDays(month, year int, now time.Time) []Day {
	loc := now.Location()
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	days := make([]Day, 0, 42)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, Day{
			Date:           d,
			IsCurrentMonth: d.Month() == first.Month(),
			IsToday:        sameDay(d, now),
			DayNumber:      d.Day(),
		})
	}
	return days
}

// Weeks splits days into rows of seven.
func Weeks(days []Day) [][]Day {
	rows := make([][]Day, 0, len(days)/7)
	for i := 0; i+7 <= len(days); i += 7 {
		rows = append(rows, days[i:i+7])
	}
	return rows
}

// DaysIn reports the number of days in the zero-based month.
func DaysIn(month, year int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthName returns the English name of a zero-based month.
func MonthName(month int) string {
	return time.Month(month + 1).String()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
