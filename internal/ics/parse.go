package ics

import (
	"bytes"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/pkg/errors"
	"github.com/teambition/rrule-go"

	appLog "slacal/internal/log"
	"slacal/internal/model"
)

// ParseHolidays reads the VEVENTs of an iCalendar payload as holidays.
//
//   - The holiday date is the calendar date of DTSTART as written, so
//     all-day (VALUE=DATE) and floating date-times keep their local date.
//   - SUMMARY becomes the name.
//   - An RRULE with FREQ=YEARLY makes the holiday repeat yearly; any other
//     rule, or none, is treated as a one-off.
//
// Events that cannot be read are logged and skipped.
func ParseHolidays(source string, body []byte) ([]model.Holiday, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		appLog.Error("ics parse failed", err, "source", source)
		return nil, errors.Wrapf(err, "parse %s", source)
	}

	holidays := make([]model.Holiday, 0)
	for _, ve := range cal.Events() {
		h, perr := parseHoliday(ve)
		if perr != nil {
			appLog.Error("ics vevent skipped", perr, "source", source)
			continue
		}
		holidays = append(holidays, h)
	}

	appLog.Debug("ics parse completed", "source", source, "holiday_count", len(holidays))
	return holidays, nil
}

func parseHoliday(ve *ical.VEvent) (model.Holiday, error) {
	var out model.Holiday

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil || dtStart.Value == "" {
		return out, errors.New("missing DTSTART")
	}
	date, err := parseICSDate(dtStart.Value)
	if err != nil {
		return out, err
	}
	out.Date = date

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Name = p.Value
	}
	if out.Name == "" {
		out.Name = date.String()
	}

	out.Repeat = model.RepeatNever
	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil && p.Value != "" {
		opt, err := rrule.StrToROption(p.Value)
		if err != nil {
			return out, errors.Wrapf(err, "bad RRULE %q", p.Value)
		}
		if opt.Freq == rrule.YEARLY {
			out.Repeat = model.RepeatYearly
		}
	}

	return out, nil
}

// parseICSDate takes the date part of a DATE or DATE-TIME value
// (20250101, 20250101T090000, 20250101T090000Z).
func parseICSDate(v string) (model.Date, error) {
	v = strings.TrimSpace(v)
	if len(v) < 8 {
		return model.Date{}, errors.Errorf("bad date value %q", v)
	}
	t, err := time.Parse("20060102", v[:8])
	if err != nil {
		return model.Date{}, errors.Wrapf(err, "bad date value %q", v)
	}
	return model.DateOf(t), nil
}
