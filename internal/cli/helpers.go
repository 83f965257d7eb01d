package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"slacal/internal/calendar"
	"slacal/internal/model"
)

var localLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseInstant accepts Unix seconds, RFC 3339, or a civil date-time in the
// calendar's timezone. An empty string means now.
func parseInstant(cal *calendar.Calendar, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return cal.Now(), nil
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil {
		return cal.FromUnix(ts), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(cal.Location()), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, cal.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("cannot parse instant %q", s)
}

// parsePauses reads "start,end" pairs. A pause without an end ("start" or
// "start,") stops the clock from start onwards.
func parsePauses(cal *calendar.Calendar, in []string) ([]model.TimeRange, error) {
	out := make([]model.TimeRange, 0, len(in))
	for _, p := range in {
		startStr, endStr, _ := strings.Cut(p, ",")
		start, err := parseInstant(cal, startStr)
		if err != nil {
			return nil, errors.Wrapf(err, "pause %q", p)
		}
		end := start
		if strings.TrimSpace(endStr) != "" {
			if end, err = parseInstant(cal, endStr); err != nil {
				return nil, errors.Wrapf(err, "pause %q", p)
			}
		}
		out = append(out, model.ClosedRange(start, end))
	}
	return out, nil
}

// parseTarget accepts whole seconds ("28800") or a Go duration ("8h30m").
func parseTarget(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Errorf("cannot parse target %q: want seconds or a duration like 8h30m", s)
	}
	return int64(d / time.Second), nil
}
