package entry

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestProcess(t *testing.T) {
	raws := []Raw{
		{Date: "14/09/2025", Rating: 4.5, Categories: []string{"hike"}, Description: "Ridge walk"},
		{Date: "2025-09-15", Rating: 3},
		{Date: "01/10/2025", Rating: 7},
	}
	entries, errs := Process(raws)
	if len(entries) != 1 || len(errs) != 2 {
		t.Fatalf("expected 1 entry and 2 errors, got %d and %v", len(entries), errs)
	}
	e := entries[0]
	if e.DisplayDate != "Sep 14, 2025" {
		t.Fatalf("unexpected display date %q", e.DisplayDate)
	}
	if e.Date.Day() != 14 || e.Date.Month() != time.September {
		t.Fatalf("unexpected date %v", e.Date)
	}
	if back := e.Raw(); back.Date != "14/09/2025" {
		t.Fatalf("unexpected raw date %q", back.Date)
	}
}

func TestFindForDateIgnoresTimeOfDay(t *testing.T) {
	entries := []Dated{
		{Date: time.Date(2025, 9, 13, 0, 0, 0, 0, time.Local), Description: "a"},
		{Date: time.Date(2025, 9, 14, 0, 0, 0, 0, time.Local), Description: "b"},
		{Date: time.Date(2025, 9, 14, 0, 0, 0, 0, time.Local), Description: "c"},
	}
	got, ok := FindForDate(entries, time.Date(2025, 9, 14, 18, 30, 0, 0, time.Local))
	if !ok || got.Description != "b" {
		t.Fatalf("expected first match b, got %+v", got)
	}
	if _, ok := FindForDate(entries, time.Date(2024, 9, 14, 0, 0, 0, 0, time.Local)); ok {
		t.Fatalf("matched across years")
	}
	idx := NewIndex(entries)
	if e, ok := idx.Lookup(time.Date(2025, 9, 14, 9, 0, 0, 0, time.Local)); !ok || e.Description != "b" {
		t.Fatalf("index disagrees with FindForDate: %+v", e)
	}
	if n := len(InMonth(entries, 8, 2025)); n != 3 {
		t.Fatalf("expected 3 entries in September, got %d", n)
	}
}

func TestRatingDisplay(t *testing.T) {
	tests := map[float64]string{
		0:   "☆☆☆☆☆",
		3:   "★★★☆☆",
		4.5: "★★★★☆",
		4.4: "★★★★☆",
		5:   "★★★★★",
		9:   "★★★★★",
		-1:  "☆☆☆☆☆",
	}
	for in, want := range tests {
		if got := RatingDisplay(in); got != want {
			t.Fatalf("RatingDisplay(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFilters(t *testing.T) {
	entries := []Dated{
		{Description: "Morning run by the river", Categories: []string{"fitness"}, Rating: 4},
		{Description: "Dinner with friends", Categories: []string{"social"}, Rating: 5},
		{Description: "Rainy commute", Categories: []string{"work"}, Rating: 2},
	}
	if got := (Filters{}).Apply(entries); len(got) != 3 {
		t.Fatalf("empty filter dropped entries")
	}
	if got := (Filters{MinRating: 4}).Apply(entries); len(got) != 2 {
		t.Fatalf("expected 2 entries rated 4+, got %d", len(got))
	}
	if got := (Filters{Category: "SOCIAL"}).Apply(entries); len(got) != 1 || got[0].Rating != 5 {
		t.Fatalf("category filter mismatch: %+v", got)
	}
	got := (Filters{Query: "rvr"}).Apply(entries)
	if len(got) != 1 || !strings.HasPrefix(got[0].Description, "Morning") {
		t.Fatalf("fuzzy query mismatch: %+v", got)
	}
}

func TestPrettyPrint(t *testing.T) {
	var buf bytes.Buffer
	PrettyPrint(&buf, "September 2025", Dated{DisplayDate: "Sep 14, 2025", Rating: 3, Description: "hello"})
	out := buf.String()
	if !strings.Contains(out, "Sep 14, 2025") || !strings.Contains(out, "★★★☆☆") {
		t.Fatalf("unexpected output %q", out)
	}
}
