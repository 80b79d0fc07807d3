package domain

import (
	"fmt"
	"time"
)

// Day is a calendar day without time of day. Zero value means the day is unknown.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns calendar day of t in t's own location
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// IsZero reports whether the day is unknown
func (d Day) IsZero() bool {
	return d == Day{}
}

// Before reports whether d is strictly earlier than other
func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Time returns midnight of the day in loc
func (d Day) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// String renders the day as DD.MM.YYYY, the way the site shows it
func (d Day) String() string {
	if d.IsZero() {
		return "unknown"
	}
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, int(d.Month), d.Year)
}
