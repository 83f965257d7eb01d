package calendar

import (
	"time"

	"slacal/internal/model"
)

// Elapsed is the result of an elapsed-working-time query.
type Elapsed struct {
	Seconds int64
	Trace   []model.TraceEntry
	// Halted is set when an open non-counting range stopped the clock
	// before `to` was reached.
	Halted bool
}

// ElapsedSeconds returns the working seconds between from and to, net of
// breaks and the given non-counting ranges, with a per-day trace.
//
// Each working date's band is clipped to [from, to]; the day's breaks are
// turned into non-counting ranges and merged with nonCounting before being
// subtracted. An open non-counting range removes the rest of the window it
// enters and ends the computation.
func (c *Calendar) ElapsedSeconds(from, to time.Time, nonCounting []model.TimeRange) (Elapsed, error) {
	var res Elapsed
	if to.Before(from) {
		return res, &InvalidRangeOrderError{From: from, To: to}
	}
	from, to = from.In(c.loc), to.In(c.loc)
	if from.Equal(to) {
		return res, nil
	}

	pauses := Normalize(nonCounting)

	var total time.Duration
	last := startOfDay(to, c.loc)
	for day := startOfDay(from, c.loc); !day.After(last); day = nextDay(day) {
		window, breaks, ok := c.dayWindow(day)
		if !ok {
			continue
		}
		winStart := maxTime(window.Start, from)
		winEnd := minTime(window.End, to)
		if !winEnd.After(winStart) {
			continue
		}

		dayRanges := make([]model.TimeRange, 0, len(breaks)+len(pauses))
		dayRanges = append(dayRanges, breaks...)
		dayRanges = append(dayRanges, pauses...)

		entry, counted := countWindow(winStart, winEnd, dayRanges)
		entry.Date = model.DateOf(day)
		entry.DayOfWeek = ISOWeekday(day)

		total += counted
		res.Trace = append(res.Trace, entry)
		if entry.Halted {
			res.Halted = true
			break
		}
	}

	res.Seconds = int64(total / time.Second)
	return res, nil
}

// ElapsedSince returns the working seconds from `from` until the clock's now.
func (c *Calendar) ElapsedSince(from time.Time, nonCounting []model.TimeRange) (Elapsed, error) {
	return c.ElapsedSeconds(from, c.Now(), nonCounting)
}

// dayWindow returns the work band and break bands of day (midnight), or
// false if nothing on that date counts.
func (c *Calendar) dayWindow(day time.Time) (model.TimeRange, []model.TimeRange, bool) {
	if c.IsContinuous() {
		return model.ClosedRange(day, nextDay(day)), nil, true
	}
	working, wd := c.IsWorkingDay(day)
	if !working {
		return model.TimeRange{}, nil, false
	}
	breaks := make([]model.TimeRange, 0, len(wd.Breaks))
	for _, b := range wd.Breaks {
		breaks = append(breaks, bandOn(day, b))
	}
	return bandOn(day, wd.TimeOfDay), breaks, true
}

// countWindow subtracts the non-counting ranges from [winStart, winEnd].
func countWindow(winStart, winEnd time.Time, ranges []model.TimeRange) (model.TraceEntry, time.Duration) {
	entry := model.TraceEntry{EffectiveStart: winStart, EffectiveEnd: winEnd}
	var cut time.Duration

	for _, r := range Normalize(ranges) {
		if r.IsOpen() {
			if r.Start.After(winEnd) {
				continue
			}
			s := maxTime(r.Start, winStart)
			entry.Skipped = append(entry.Skipped, model.ClosedRange(s, winEnd))
			cut += winEnd.Sub(s)
			entry.Halted = true
			break
		}
		if !r.End.After(winStart) || !r.Start.Before(winEnd) {
			continue
		}
		s, e := maxTime(r.Start, winStart), minTime(r.End, winEnd)
		entry.Skipped = append(entry.Skipped, model.ClosedRange(s, e))
		cut += e.Sub(s)
	}

	counted := winEnd.Sub(winStart) - cut
	entry.Seconds = int64(counted / time.Second)
	return entry, counted
}
