package services

import (
	"errors"
	"testing"
	"time"
)

func TestParseHistoryRange(t *testing.T) {
	start, end, err := ParseHistoryRange(" 2026-03-01 ", "2026-03-10", time.UTC)
	if err != nil {
		t.Fatalf("ParseHistoryRange() unexpected error: %v", err)
	}
	if start == nil || end == nil {
		t.Fatalf("expected both bounds, got start=%v end=%v", start, end)
	}
	if !start.Equal(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)) || !end.Equal(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected bounds %s..%s", start, end)
	}

	start, end, err = ParseHistoryRange("", "", time.UTC)
	if err != nil || start != nil || end != nil {
		t.Fatalf("expected empty range without error, got start=%v end=%v err=%v", start, end, err)
	}
}

func TestParseHistoryRangeErrors(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  error
	}{
		{name: "bad start", start: "yesterday", want: ErrHistoryStartDateInvalid},
		{name: "bad end", end: "2026-13-01", want: ErrHistoryEndDateInvalid},
		{name: "reversed", start: "2026-03-10", end: "2026-03-01", want: ErrHistoryRangeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseHistoryRange(tt.start, tt.end, time.UTC); !errors.Is(err, tt.want) {
				t.Fatalf("ParseHistoryRange() error = %v, want %v", err, tt.want)
			}
		})
	}
}
