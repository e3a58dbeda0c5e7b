package domain

import "time"

// PeriodStart returns the instant the business day containing t began, where a
// business day starts at resetHour o'clock local time in loc.
func PeriodStart(t time.Time, loc *time.Location, resetHour int) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), resetHour, 0, 0, 0, loc)
	if local.Before(start) {
		start = time.Date(local.Year(), local.Month(), local.Day()-1, resetHour, 0, 0, 0, loc)
	}
	return start
}

// NextPeriodStart returns the first instant of the business day after the one containing t.
func NextPeriodStart(t time.Time, loc *time.Location, resetHour int) time.Time {
	start := PeriodStart(t, loc, resetHour)
	return time.Date(start.Year(), start.Month(), start.Day()+1, resetHour, 0, 0, 0, start.Location())
}

// BusinessDate is the calendar label of the business day containing t, as midnight UTC.
func BusinessDate(t time.Time, loc *time.Location, resetHour int) time.Time {
	start := PeriodStart(t, loc, resetHour)
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from a to b. Both are dates as returned by BusinessDate.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
