package services

import (
	"testing"
	"time"
)

func TestDayRangeNormalizesToLocationMidnight(t *testing.T) {
	location, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	raw := time.Date(2026, 2, 1, 22, 35, 10, 0, time.UTC)
	start, end := DayRange(raw, location)

	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Fatalf("expected midnight start, got %s", start.Format(time.RFC3339))
	}
	if start.Day() != 2 {
		t.Fatalf("expected local date to roll over to Feb 2, got %s", start.Format(time.RFC3339))
	}
	if !end.Equal(start.AddDate(0, 0, 1)) {
		t.Fatalf("expected next day end, got %s", end.Format(time.RFC3339))
	}
}

func TestDaysBetweenIgnoresDaylightSavingShift(t *testing.T) {
	location, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	before := time.Date(2026, time.March, 28, 12, 0, 0, 0, location)
	after := time.Date(2026, time.March, 30, 1, 0, 0, 0, location)
	if got := DaysBetween(after, before, location); got != 2 {
		t.Fatalf("DaysBetween() = %d, want 2", got)
	}
	if got := DaysBetween(before, after, location); got != -2 {
		t.Fatalf("DaysBetween() reversed = %d, want -2", got)
	}
	if got := DaysBetween(after, after.Add(-30*time.Minute), location); got != 0 {
		t.Fatalf("DaysBetween() same day = %d, want 0", got)
	}
}

func TestParseDay(t *testing.T) {
	parsed, err := ParseDay("2026-03-10", time.UTC)
	if err != nil {
		t.Fatalf("ParseDay() unexpected error: %v", err)
	}
	if !parsed.Equal(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected parsed day %s", parsed)
	}

	if _, err := ParseDay("10/03/2026", time.UTC); err == nil {
		t.Fatalf("expected error for non ISO date")
	}
}
