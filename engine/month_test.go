package engine_test

import (
	"testing"
	"time"

	"github.com/verde/budget-engine/engine"
)

func mustMonth(t *testing.T, s string) engine.Month {
	t.Helper()
	m, err := engine.ParseMonth(s)
	if err != nil {
		t.Fatalf("ParseMonth(%q): %v", s, err)
	}
	return m
}

func TestParseMonth_RoundTrip(t *testing.T) {
	m := mustMonth(t, "2024-11")
	if m.Year() != 2024 || m.Month() != time.November {
		t.Errorf("expected 2024-11, got %d-%d", m.Year(), m.Month())
	}
	if m.String() != "2024-11" {
		t.Errorf("expected string 2024-11, got %s", m.String())
	}
}

func TestParseMonth_Malformed(t *testing.T) {
	for _, s := range []string{"", "2024", "2024-13", "11-2024", "2024-00", "abc"} {
		if _, err := engine.ParseMonth(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestMonth_AddMonths_YearRollover(t *testing.T) {
	// GIVEN: December 2024
	// WHEN: Adding one month
	// THEN: January 2025, not a string-ordering artifact

	dec := engine.NewMonth(2024, time.December)
	jan := dec.Next()
	if jan.String() != "2025-01" {
		t.Errorf("expected 2025-01, got %s", jan.String())
	}

	if got := engine.NewMonth(2024, time.August).AddMonths(11).String(); got != "2025-07" {
		t.Errorf("expected 2025-07, got %s", got)
	}
}

func TestMonth_CalendarOrdering_AcrossYears(t *testing.T) {
	// "2024-12" < "2025-01" even though naive digit-by-digit tricks can get
	// this wrong; ordering is on (year, month) pairs.
	dec24 := mustMonth(t, "2024-12")
	jan25 := mustMonth(t, "2025-01")

	if !dec24.Before(jan25) {
		t.Error("2024-12 should be before 2025-01")
	}
	if !jan25.After(dec24) {
		t.Error("2025-01 should be after 2024-12")
	}
	if !dec24.BeforeOrEqual(dec24) || !dec24.AfterOrEqual(dec24) {
		t.Error("a month should compare equal to itself")
	}
}

func TestMonth_Days(t *testing.T) {
	cases := []struct {
		month string
		days  int
	}{
		{"2024-01", 31},
		{"2024-02", 29}, // leap year
		{"2023-02", 28},
		{"2024-04", 30},
		{"2024-12", 31},
	}
	for _, c := range cases {
		if got := mustMonth(t, c.month).Days(); got != c.days {
			t.Errorf("%s: expected %d days, got %d", c.month, c.days, got)
		}
	}
}
