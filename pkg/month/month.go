// Package month implements the calendar-month arithmetic used by the scroll
// window. Next and Prev are the only places that know how months roll over.
package month

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidMonth is returned when a month index falls outside 0-11.
var ErrInvalidMonth = errors.New("month: index must be within 0-11")

// Unit is one calendar month slot in the window. Month is zero based
// (January == 0) so keys match "{year}-{month}".
type Unit struct {
	Month int
	Year  int
	Key   string
}

// New builds a Unit, rejecting month indexes outside 0-11.
func New(m, year int) (Unit, error) {
	if m < 0 || m > 11 {
		return Unit{}, fmt.Errorf("%w: got %d", ErrInvalidMonth, m)
	}
	return Unit{Month: m, Year: year, Key: Key(m, year)}, nil
}

// Must is New for inputs that are already known to be valid.
func Must(m, year int) Unit {
	u, err := New(m, year)
	if err != nil {
		panic(err)
	}
	return u
}

// FromTime returns the unit containing t.
func FromTime(t time.Time) Unit {
	return Must(int(t.Month())-1, t.Year())
}

// Key renders the deterministic window key for a month.
func Key(m, year int) string {
	return fmt.Sprintf("%d-%d", year, m)
}

// Next returns the month after u, rolling December into January of the
// following year.
func Next(u Unit) Unit {
	m, y := u.Month+1, u.Year
	if m > 11 {
		m = 0
		y++
	}
	return Unit{Month: m, Year: y, Key: Key(m, y)}
}

// Prev returns the month before u, rolling January back into December of the
// previous year.
func Prev(u Unit) Unit {
	m, y := u.Month-1, u.Year
	if m < 0 {
		m = 11
		y--
	}
	return Unit{Month: m, Year: y, Key: Key(m, y)}
}

// Add steps n months forward (or backward when n is negative) using Next and
// Prev.
func Add(u Unit, n int) Unit {
	for ; n > 0; n-- {
		u = Next(u)
	}
	for ; n < 0; n++ {
		u = Prev(u)
	}
	return u
}

// Adjacent reports whether b immediately follows a.
func Adjacent(a, b Unit) bool {
	return Next(a) == b
}

// Time returns midnight on the first day of the month in loc.
func (u Unit) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(u.Year, time.Month(u.Month+1), 1, 0, 0, 0, 0, loc)
}

// Contains reports whether t falls in the unit's month.
func (u Unit) Contains(t time.Time) bool {
	return t.Year() == u.Year && int(t.Month())-1 == u.Month
}

// Before reports whether u is chronologically earlier than other.
func (u Unit) Before(other Unit) bool {
	if u.Year != other.Year {
		return u.Year < other.Year
	}
	return u.Month < other.Month
}

// Name returns the English month name, e.g. "September".
func (u Unit) Name() string {
	return time.Month(u.Month + 1).String()
}

// String renders "September 2025".
func (u Unit) String() string {
	return fmt.Sprintf("%s %d", u.Name(), u.Year)
}
