package calendar

import (
	"time"

	"github.com/teambition/rrule-go"

	appLog "slacal/internal/log"
	"slacal/internal/model"
)

// Holidays returns the declared holidays plus, for every yearly holiday
// declared in another year, a copy projected into year. Projected copies
// carry AdditionalOccurrence. A yearly Feb 29 holiday has no copy in a
// non-leap year.
func (c *Calendar) Holidays(year int) []model.Holiday {
	if c.IsContinuous() {
		return nil
	}

	out := make([]model.Holiday, 0, len(c.cfg.Holidays))
	extra := make([]model.Holiday, 0)

	for _, h := range c.cfg.Holidays {
		out = append(out, h)
		if h.Repeat != model.RepeatYearly || h.Date.Year == year {
			continue
		}
		occ, ok := projectYearly(h.Date, year)
		if !ok {
			continue
		}
		cp := h
		cp.Date = occ
		cp.AdditionalOccurrence = true
		extra = append(extra, cp)
	}

	return append(out, extra...)
}

// holidayIndex returns year's holidays keyed by date, built once per year.
// The first declared holiday wins when two share a date.
func (c *Calendar) holidayIndex(year int) map[model.Date]model.Holiday {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx, ok := c.byYear[year]; ok {
		return idx
	}
	idx := make(map[model.Date]model.Holiday)
	for _, h := range c.Holidays(year) {
		if _, dup := idx[h.Date]; !dup {
			idx[h.Date] = h
		}
	}
	if c.byYear == nil {
		c.byYear = make(map[int]map[model.Date]model.Holiday)
	}
	c.byYear[year] = idx
	return idx
}

// projectYearly finds the occurrence of a yearly (month, day) rule inside
// year.
func projectYearly(d model.Date, year int) (model.Date, bool) {
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:       rrule.YEARLY,
		Dtstart:    time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		Until:      time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC),
		Bymonth:    []int{int(d.Month)},
		Bymonthday: []int{d.Day},
	})
	if err != nil {
		appLog.Error("holiday: failed to build yearly rule", err, "date", d.String(), "year", year)
		return model.Date{}, false
	}
	occ := r.All()
	if len(occ) == 0 {
		return model.Date{}, false
	}
	return model.DateOf(occ[0]), true
}
