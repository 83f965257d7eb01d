package calendar

import (
	"time"

	"slacal/internal/model"
)

// WorkMatch describes what IsTimeToWork matched for an instant.
type WorkMatch struct {
	// WorkDay is the work-week entry for the instant's weekday, if any.
	WorkDay *model.WorkDay
	// Window is the work day's band on the instant's date.
	Window model.TimeRange
	// Break is the break band containing the instant, if any.
	Break *model.TimeRange
}

// IsHoliday reports whether t's date is a holiday, returning the matched
// holiday. Continuous calendars have no holidays.
func (c *Calendar) IsHoliday(t time.Time) (bool, *model.Holiday) {
	if c.IsContinuous() {
		return false, nil
	}
	date := model.DateOf(t.In(c.loc))
	h, ok := c.holidayIndex(date.Year)[date]
	if !ok {
		return false, nil
	}
	return true, &h
}

// IsWorkingDay reports whether t's date is a working day, returning the
// work-week entry for its weekday. Continuous calendars always work.
func (c *Calendar) IsWorkingDay(t time.Time) (bool, *model.WorkDay) {
	if c.IsContinuous() {
		return true, nil
	}
	if holiday, _ := c.IsHoliday(t); holiday {
		return false, nil
	}
	wd, ok := c.workWeek[ISOWeekday(t.In(c.loc))]
	if !ok {
		return false, nil
	}
	return true, &wd
}

// IsTimeToWork reports whether t falls inside its day's work band and
// outside every break band.
func (c *Calendar) IsTimeToWork(t time.Time) (bool, WorkMatch) {
	if c.IsContinuous() {
		return true, WorkMatch{}
	}
	working, wd := c.IsWorkingDay(t)
	if !working {
		return false, WorkMatch{}
	}

	t = t.In(c.loc)
	day := startOfDay(t, c.loc)
	match := WorkMatch{WorkDay: wd, Window: bandOn(day, wd.TimeOfDay)}

	if in, _ := InRange(t, []time.Time{match.Window.Start, match.Window.End}); !in {
		return false, match
	}
	for _, b := range wd.Breaks {
		br := bandOn(day, b)
		if in, _ := InRange(t, []time.Time{br.Start, br.End}); in {
			match.Break = &br
			return false, match
		}
	}
	return true, match
}

// IsTimeToTakeARest is the complement of IsTimeToWork. Continuous
// calendars have no rest periods.
func (c *Calendar) IsTimeToTakeARest(t time.Time) (bool, WorkMatch) {
	if c.IsContinuous() {
		return false, WorkMatch{}
	}
	work, match := c.IsTimeToWork(t)
	return !work, match
}

// InRange reports start <= t <= end for bounds = [start, end].
func InRange(t time.Time, bounds []time.Time) (bool, error) {
	if len(bounds) != 2 {
		return false, &TimeRangeError{Got: len(bounds)}
	}
	return !t.Before(bounds[0]) && !t.After(bounds[1]), nil
}
