package model

import (
	"fmt"
	"time"
)

// CalendarKind tells whether every instant counts as working time
// (Continuous) or only the configured work week does (Custom).
type CalendarKind string

const (
	KindContinuous CalendarKind = "247"
	KindCustom     CalendarKind = "custom"
)

// Repeat controls how a Holiday recurs.
type Repeat string

const (
	RepeatNever  Repeat = "never"
	RepeatYearly Repeat = "yearly"
)

// CalendarConfig is the immutable input a calendar engine is built from.
// WorkWeek and Holidays are ignored for continuous calendars.
type CalendarConfig struct {
	Kind CalendarKind
	// Timezone is an IANA name ("Asia/Singapore"), "UTC", or a fixed
	// offset such as "+08:00" or "UTC+8".
	Timezone string

	// Code, Name and Description are informational only.
	Code        string
	Name        string
	Description string

	WorkWeek []WorkDay
	Holidays []Holiday
}

// TimeOfDay is a band inside a single day. EndHour == 0 && EndMinute == 0
// means midnight of the next day.
type TimeOfDay struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// EndsAtMidnight reports whether the band uses the next-midnight sentinel.
func (b TimeOfDay) EndsAtMidnight() bool {
	return b.EndHour == 0 && b.EndMinute == 0
}

func (b TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d - %02d:%02d", b.StartHour, b.StartMinute, b.EndHour, b.EndMinute)
}

// WorkDay is the work band for one ISO weekday (Monday=1 .. Sunday=7)
// together with its breaks.
type WorkDay struct {
	DayOfWeek int
	TimeOfDay
	Breaks []TimeOfDay
}

// Date is a timezone-less calendar date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a yyyy-mm-dd string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// In returns midnight of the date in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Holiday is a declared non-working date. AdditionalOccurrence is set only
// on copies materialized for a query year different from Date.Year.
type Holiday struct {
	Name                 string
	Date                 Date
	Repeat               Repeat
	AdditionalOccurrence bool
}

// TimeRange is a span of instants. A zero End marks an open range that
// extends indefinitely from Start.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// ClosedRange returns [start, end].
func ClosedRange(start, end time.Time) TimeRange {
	return TimeRange{Start: start, End: end}
}

// OpenRange returns a range starting at start with no end.
func OpenRange(start time.Time) TimeRange {
	return TimeRange{Start: start}
}

// IsOpen reports whether the range has no end.
func (r TimeRange) IsOpen() bool {
	return r.End.IsZero()
}

// Duration is the length of a closed range; zero for open ranges.
func (r TimeRange) Duration() time.Duration {
	if r.IsOpen() {
		return 0
	}
	return r.End.Sub(r.Start)
}

func (r TimeRange) String() string {
	if r.IsOpen() {
		return r.Start.Format(time.DateTime) + " - ∞"
	}
	return r.Start.Format(time.DateTime) + " - " + r.End.Format(time.DateTime)
}

// UnixRange is a non-counting range as supplied by callers: Unix seconds
// with an optional end. A nil End means "same as Start".
type UnixRange struct {
	Start int64
	End   *int64
}

// TraceEntry is the per-day breakdown of an elapsed-time computation.
type TraceEntry struct {
	Date      Date
	DayOfWeek int

	// EffectiveStart/EffectiveEnd is the day's work window after clipping
	// to the query bounds.
	EffectiveStart time.Time
	EffectiveEnd   time.Time

	// Skipped lists the sub-ranges of the window that did not count
	// (breaks and supplied pauses), clipped to the window.
	Skipped []TimeRange

	Seconds int64

	// Halted marks the day on which an open range stopped the clock.
	Halted bool
}

func (e TraceEntry) EffectiveStartHour() int   { return e.EffectiveStart.Hour() }
func (e TraceEntry) EffectiveStartMinute() int { return e.EffectiveStart.Minute() }

// EffectiveEndHour and EffectiveEndMinute follow the midnight sentinel:
// a window ending at the next midnight reports 00:00.
func (e TraceEntry) EffectiveEndHour() int   { return e.EffectiveEnd.Hour() }
func (e TraceEntry) EffectiveEndMinute() int { return e.EffectiveEnd.Minute() }
