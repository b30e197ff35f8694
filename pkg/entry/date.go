package entry

import (
	"fmt"
	"strings"
	"time"
)

// ParseDate parses a dd/MM/yyyy date in the local time zone.
func ParseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(v), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("entry: parse date %q: %w", v, err)
	}
	return t, nil
}

// DisplayDate formats t as "Sep 14, 2025".
func DisplayDate(t time.Time) string {
	return t.Format(DisplayLayout)
}

// SameDay compares calendar days, ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FindForDate returns the first entry on the same calendar day as date.
func FindForDate(entries []Dated, date time.Time) (Dated, bool) {
	for _, e := range entries {
		if SameDay(e.Date, date) {
			return e, true
		}
	}
	return Dated{}, false
}

// InMonth returns the entries falling in the given zero-based month, in input
// order.
func InMonth(entries []Dated, month, year int) []Dated {
	var out []Dated
	for _, e := range entries {
		if e.Date.Year() == year && int(e.Date.Month())-1 == month {
			out = append(out, e)
		}
	}
	return out
}

// Index groups entries by day so renderers can look them up without a scan.
type Index map[string]Dated

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

// NewIndex builds an Index. The first entry for a day wins, matching
// FindForDate.
func NewIndex(entries []Dated) Index {
	idx := make(Index, len(entries))
	for _, e := range entries {
		k := dayKey(e.Date)
		if _, ok := idx[k]; !ok {
			idx[k] = e
		}
	}
	return idx
}

// Lookup returns the entry for date's calendar day.
func (i Index) Lookup(date time.Time) (Dated, bool) {
	e, ok := i[dayKey(date)]
	return e, ok
}
