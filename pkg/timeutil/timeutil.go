// Package timeutil is the single conversion boundary between clinic-local
// wall-clock values and UTC instants. All scheduling math happens in UTC;
// wall clocks cross into UTC exactly once, here.
package timeutil

import (
	"fmt"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	ClockLayout     = "15:04"
	ClockLayoutSecs = "15:04:05"
)

// LoadLocation resolves an IANA timezone name.
func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}
	return loc, nil
}

// ParseClock parses a wall-clock value in HH:MM or HH:MM:SS form.
func ParseClock(clock string) (time.Duration, error) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		t, err = time.Parse(ClockLayoutSecs, clock)
		if err != nil {
			return 0, fmt.Errorf("invalid wall-clock value %q: %w", clock, err)
		}
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// WallClockToUTC interprets date ("2006-01-02") and clock ("HH:MM") as a
// wall-clock reading in loc and returns the corresponding UTC instant.
func WallClockToUTC(date, clock string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	offset, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(offset).UTC(), nil
}

// DayBoundsUTC returns the UTC instants bounding the local calendar day.
func DayBoundsUTC(date string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return day.UTC(), day.AddDate(0, 0, 1).UTC(), nil
}

// WeekdayInLocation reports the calendar weekday of date as observed in loc.
func WeekdayInLocation(date string, loc *time.Location) (time.Weekday, error) {
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return day.Weekday(), nil
}
