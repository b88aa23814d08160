package services

import "time"

const dateLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// DaysBetween counts calendar days from earlier to later in location.
// DST transitions do not skew the result.
func DaysBetween(later time.Time, earlier time.Time, location *time.Location) int {
	laterDay := DateAtLocation(later, location)
	earlierDay := DateAtLocation(earlier, location)
	laterUTC := time.Date(laterDay.Year(), laterDay.Month(), laterDay.Day(), 0, 0, 0, 0, time.UTC)
	earlierUTC := time.Date(earlierDay.Year(), earlierDay.Month(), earlierDay.Day(), 0, 0, 0, 0, time.UTC)
	return int(laterUTC.Sub(earlierUTC).Hours() / 24)
}

func ParseDay(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(dateLayout, raw, location)
	if err != nil {
		return time.Time{}, err
	}
	return DateAtLocation(parsed, location), nil
}
