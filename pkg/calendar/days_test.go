package calendar

import (
	"testing"
	"time"
)

func TestEnumerateDaysFullWeeks(t *testing.T) {
	now := time.Date(2025, time.September, 14, 10, 0, 0, 0, time.UTC)
	days := EnumerateDays(8, 2025, now)
	// September 2025 starts on a Monday and ends on a Tuesday.
	if len(days) != 35 {
		t.Fatalf("expected 5 weeks, got %d days", len(days))
	}
	if days[0].Date.Weekday() != time.Sunday || days[0].DayNumber != 31 || days[0].IsCurrentMonth {
		t.Fatalf("unexpected first cell %+v", days[0])
	}
	last := days[len(days)-1]
	if last.Date.Weekday() != time.Saturday || last.DayNumber != 4 || last.IsCurrentMonth {
		t.Fatalf("unexpected last cell %+v", last)
	}
	today := 0
	inMonth := 0
	for _, d := range days {
		if d.IsToday {
			today++
			if d.DayNumber != 14 {
				t.Fatalf("wrong today cell %+v", d)
			}
		}
		if d.IsCurrentMonth {
			inMonth++
		}
	}
	if today != 1 || inMonth != 30 {
		t.Fatalf("expected 1 today and 30 month cells, got %d and %d", today, inMonth)
	}
	if len(Weeks(days)) != 5 {
		t.Fatalf("expected 5 rows")
	}
}

func TestDaysInAndNames(t *testing.T) {
	tests := []struct {
		month, year, want int
	}{
		{1, 2024, 29},
		{1, 2025, 28},
		{11, 2025, 31},
		{3, 2025, 30},
	}
	for _, tt := range tests {
		if got := DaysIn(tt.month, tt.year); got != tt.want {
			t.Fatalf("DaysIn(%d, %d) = %d, want %d", tt.month, tt.year, got, tt.want)
		}
	}
	if MonthName(0) != "January" || MonthName(11) != "December" {
		t.Fatalf("unexpected month names")
	}
}
