package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrHistoryStartDateInvalid = errors.New("history invalid start date")
	ErrHistoryEndDateInvalid   = errors.New("history invalid end date")
	ErrHistoryRangeInvalid     = errors.New("history invalid range")
)

// ParseHistoryRange parses optional YYYY-MM-DD bounds. Empty values stay nil.
func ParseHistoryRange(rawStart string, rawEnd string, location *time.Location) (*time.Time, *time.Time, error) {
	var start *time.Time
	if value := strings.TrimSpace(rawStart); value != "" {
		parsed, err := ParseDay(value, location)
		if err != nil {
			return nil, nil, ErrHistoryStartDateInvalid
		}
		start = &parsed
	}

	var end *time.Time
	if value := strings.TrimSpace(rawEnd); value != "" {
		parsed, err := ParseDay(value, location)
		if err != nil {
			return nil, nil, ErrHistoryEndDateInvalid
		}
		end = &parsed
	}

	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, ErrHistoryRangeInvalid
	}
	return start, end, nil
}
