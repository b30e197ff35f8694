package month

import (
	"errors"
	"testing"
	"time"
)

func TestNewRejectsOutOfRange(t *testing.T) {
	for _, m := range []int{-1, 12, 40} {
		if _, err := New(m, 2025); !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("month %d: expected ErrInvalidMonth, got %v", m, err)
		}
	}
	u, err := New(8, 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Key != "2025-8" {
		t.Fatalf("expected key 2025-8, got %q", u.Key)
	}
}

func TestNextPrevRollover(t *testing.T) {
	tests := []struct {
		name string
		in   Unit
		next Unit
		prev Unit
	}{
		{"december", Must(11, 2024), Must(0, 2025), Must(10, 2024)},
		{"january", Must(0, 2025), Must(1, 2025), Must(11, 2024)},
		{"mid-year", Must(5, 2025), Must(6, 2025), Must(4, 2025)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Next(tt.in); got != tt.next {
				t.Fatalf("Next(%v) = %v, want %v", tt.in, got, tt.next)
			}
			if got := Prev(tt.in); got != tt.prev {
				t.Fatalf("Prev(%v) = %v, want %v", tt.in, got, tt.prev)
			}
			if !Adjacent(tt.in, tt.next) || !Adjacent(tt.prev, tt.in) {
				t.Fatalf("expected adjacency around %v", tt.in)
			}
		})
	}
}

func TestAddMatchesTime(t *testing.T) {
	start := Must(8, 2025)
	for n := -30; n <= 30; n++ {
		want := FromTime(start.Time(time.UTC).AddDate(0, n, 0))
		if got := Add(start, n); got != want {
			t.Fatalf("Add(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestUnitString(t *testing.T) {
	if got := Must(8, 2025).String(); got != "September 2025" {
		t.Fatalf("unexpected name %q", got)
	}
	if !Must(2, 2024).Before(Must(0, 2025)) {
		t.Fatalf("expected March 2024 before January 2025")
	}
}
