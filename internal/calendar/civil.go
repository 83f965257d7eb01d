package calendar

import (
	"time"

	"slacal/internal/model"
)

// isoWeekday translates Go's Sunday-first weekday numbering into ISO
// numbering (Monday=1 .. Sunday=7). All weekday lookups go through it.
var isoWeekday = map[time.Weekday]int{
	time.Monday:    1,
	time.Tuesday:   2,
	time.Wednesday: 3,
	time.Thursday:  4,
	time.Friday:    5,
	time.Saturday:  6,
	time.Sunday:    7,
}

// ISOWeekday returns t's day of week, Monday=1 .. Sunday=7.
func ISOWeekday(t time.Time) int {
	return isoWeekday[t.Weekday()]
}

// startOfDay returns midnight of t's date in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// nextDay returns midnight of the date after day. time.Date keeps this
// correct across DST changes where Add(24h) would not.
func nextDay(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, day.Location())
}

// bandOn converts a time-of-day band into absolute instants on day
// (midnight). A band ending at 00:00 ends at the next midnight.
func bandOn(day time.Time, b model.TimeOfDay) model.TimeRange {
	y, m, d := day.Date()
	loc := day.Location()
	start := time.Date(y, m, d, b.StartHour, b.StartMinute, 0, 0, loc)
	var end time.Time
	if b.EndsAtMidnight() {
		end = nextDay(day)
	} else {
		end = time.Date(y, m, d, b.EndHour, b.EndMinute, 0, 0, loc)
	}
	return model.ClosedRange(start, end)
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
