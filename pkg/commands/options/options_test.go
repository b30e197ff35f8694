package options

import (
	"testing"
	"time"
)

func TestGetOnShortFormStaysInThePast(t *testing.T) {
	now := time.Date(2025, time.March, 5, 12, 0, 0, 0, time.Local)
	o := OnOptions{OnString: "12/24", Now: func() time.Time { return now }}
	got, err := o.GetOn()
	if err != nil {
		t.Fatalf("GetOn: %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.December || got.Day() != 24 {
		t.Fatalf("GetOn = %v, want 2024-12-24", got)
	}

	o.OnString = "3/1"
	got, err = o.GetOn()
	if err != nil {
		t.Fatalf("GetOn: %v", err)
	}
	if got.Year() != 2025 {
		t.Fatalf("GetOn = %v, want 2025-03-01", got)
	}
}

func TestGetOnRejectsGarbage(t *testing.T) {
	o := OnOptions{OnString: "tomorrowish"}
	if _, err := o.GetOn(); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestAddOptionsRaw(t *testing.T) {
	o := AddOptions{Description: " rain ", Rating: 2.5, On: OnOptions{OnString: "2025-9-14"}}
	raw, err := o.Raw()
	if err != nil {
		t.Fatalf("Raw: %v", err)
	}
	if raw.Date != "14/09/2025" || raw.Description != "rain" {
		t.Fatalf("unexpected raw %+v", raw)
	}
	if _, err := raw.Resolve(); err != nil {
		t.Fatalf("raw should resolve: %v", err)
	}
}

func TestGetMonth(t *testing.T) {
	now := time.Date(2025, time.September, 14, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want string
		none bool
		err  bool
	}{
		{in: "", none: true},
		{in: "this", want: "2025-8"},
		{in: "2024-02", want: "2024-1"},
		{in: "Jan 2026", want: "2026-0"},
		{in: "soon", err: true},
	}
	for _, tt := range tests {
		o := MonthOptions{MonthString: tt.in}
		u, err := o.GetMonth(now)
		switch {
		case tt.err:
			if err == nil {
				t.Errorf("%q: expected an error", tt.in)
			}
		case tt.none:
			if u != nil || err != nil {
				t.Errorf("%q: want nil, got %v %v", tt.in, u, err)
			}
		default:
			if err != nil || u.Key != tt.want {
				t.Errorf("%q: got %v %v, want %s", tt.in, u, err, tt.want)
			}
		}
	}
}
