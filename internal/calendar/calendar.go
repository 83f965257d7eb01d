// Package calendar computes working time against a business calendar:
// holiday/work-day/work-moment classification, elapsed working seconds
// between two instants, and the inverse (the instant at which a target
// amount of working time has elapsed).
//
// A Calendar is safe for concurrent use. Its configuration is fixed at New;
// holiday lookups are memoized per year behind a mutex.
package calendar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"slacal/internal/model"
)

const (
	DefaultMaxProbes      = 64
	DefaultSearchHorizon  = 5 * 366 * 24 * time.Hour
	DefaultMaxRefineSteps = 128
)

// Options tunes a Calendar. Zero values select the defaults.
type Options struct {
	// Clock supplies "now". Defaults to SystemClock.
	Clock Clock

	// MaxProbes caps the number of forward probes EstimateDue performs
	// while bracketing the target.
	MaxProbes int

	// SearchHorizon caps how far past `from` EstimateDue may probe.
	SearchHorizon time.Duration

	// MaxRefineSteps caps the binary-search refinement loop.
	MaxRefineSteps int
}

// Calendar is a working-time engine built from a CalendarConfig.
type Calendar struct {
	cfg      model.CalendarConfig
	loc      *time.Location
	workWeek map[int]model.WorkDay
	opts     Options

	mu     sync.Mutex
	byYear map[int]map[model.Date]model.Holiday
}

// New validates cfg and builds a Calendar.
func New(cfg model.CalendarConfig, opts Options) (*Calendar, error) {
	loc, err := ParseLocation(cfg.Timezone)
	if err != nil {
		return nil, &ConfigError{Field: "timezone", Reason: err.Error()}
	}

	switch cfg.Kind {
	case model.KindContinuous, model.KindCustom:
	default:
		return nil, &ConfigError{Field: "type", Reason: fmt.Sprintf("unknown calendar kind %q", cfg.Kind)}
	}

	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.MaxProbes <= 0 {
		opts.MaxProbes = DefaultMaxProbes
	}
	if opts.SearchHorizon <= 0 {
		opts.SearchHorizon = DefaultSearchHorizon
	}
	if opts.MaxRefineSteps <= 0 {
		opts.MaxRefineSteps = DefaultMaxRefineSteps
	}

	c := &Calendar{
		cfg:      cfg,
		loc:      loc,
		workWeek: make(map[int]model.WorkDay, len(cfg.WorkWeek)),
		opts:     opts,
	}

	if cfg.Kind == model.KindCustom {
		for i, wd := range cfg.WorkWeek {
			field := fmt.Sprintf("work_week[%d]", i)
			if wd.DayOfWeek < 1 || wd.DayOfWeek > 7 {
				return nil, &ConfigError{Field: field, Reason: fmt.Sprintf("day %d out of range 1..7", wd.DayOfWeek)}
			}
			if _, dup := c.workWeek[wd.DayOfWeek]; dup {
				return nil, &ConfigError{Field: field, Reason: fmt.Sprintf("duplicate day %d", wd.DayOfWeek)}
			}
			if err := validateBand(wd.TimeOfDay); err != nil {
				return nil, &ConfigError{Field: field, Reason: err.Error()}
			}
			for j, br := range wd.Breaks {
				if err := validateBand(br); err != nil {
					return nil, &ConfigError{Field: fmt.Sprintf("%s.break[%d]", field, j), Reason: err.Error()}
				}
			}
			c.workWeek[wd.DayOfWeek] = wd
		}
	}

	return c, nil
}

func validateBand(b model.TimeOfDay) error {
	if b.StartHour < 0 || b.StartHour > 23 || b.EndHour < 0 || b.EndHour > 23 {
		return fmt.Errorf("hour out of range 0..23 in %s", b)
	}
	if b.StartMinute < 0 || b.StartMinute > 59 || b.EndMinute < 0 || b.EndMinute > 59 {
		return fmt.Errorf("minute out of range 0..59 in %s", b)
	}
	if b.EndsAtMidnight() {
		return nil
	}
	if b.EndHour*60+b.EndMinute <= b.StartHour*60+b.StartMinute {
		return fmt.Errorf("band ends before it starts: %s", b)
	}
	return nil
}

// Kind returns the calendar kind.
func (c *Calendar) Kind() model.CalendarKind { return c.cfg.Kind }

func (c *Calendar) IsContinuous() bool { return c.cfg.Kind == model.KindContinuous }
func (c *Calendar) IsCustom() bool     { return c.cfg.Kind == model.KindCustom }

// Config returns the configuration the calendar was built from.
func (c *Calendar) Config() model.CalendarConfig { return c.cfg }

// Location returns the calendar's timezone.
func (c *Calendar) Location() *time.Location { return c.loc }

// Now returns the clock's current instant in the calendar's timezone.
func (c *Calendar) Now() time.Time { return c.opts.Clock.Now().In(c.loc) }

// FromUnix converts a Unix timestamp into an instant in the calendar's timezone.
func (c *Calendar) FromUnix(ts int64) time.Time { return time.Unix(ts, 0).In(c.loc) }

// RangesFromUnix converts caller-supplied Unix ranges. A missing end is
// taken to be the same as the start.
func (c *Calendar) RangesFromUnix(in []model.UnixRange) []model.TimeRange {
	out := make([]model.TimeRange, 0, len(in))
	for _, r := range in {
		start := c.FromUnix(r.Start)
		end := start
		if r.End != nil {
			end = c.FromUnix(*r.End)
		}
		out = append(out, model.ClosedRange(start, end))
	}
	return out
}

// WorkWeek returns the configured work days ordered Monday..Sunday.
// Continuous calendars have none.
func (c *Calendar) WorkWeek() []model.WorkDay {
	if c.IsContinuous() {
		return nil
	}
	out := make([]model.WorkDay, 0, len(c.workWeek))
	for _, wd := range c.workWeek {
		out = append(out, wd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out
}

// ParseLocation resolves an IANA zone name, "UTC"/"Z", or a fixed offset
// such as "+08:00", "-0530", "UTC+8" or "GMT-03:30".
func ParseLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	switch strings.ToUpper(name) {
	case "", "UTC", "Z", "GMT":
		return time.UTC, nil
	}

	offset := name
	for _, prefix := range []string{"UTC", "GMT"} {
		if strings.HasPrefix(strings.ToUpper(offset), prefix) {
			offset = offset[len(prefix):]
			break
		}
	}
	if strings.HasPrefix(offset, "+") || strings.HasPrefix(offset, "-") {
		secs, err := parseOffset(offset)
		if err != nil {
			return nil, fmt.Errorf("bad offset %q: %w", name, err)
		}
		return time.FixedZone(name, secs), nil
	}

	return time.LoadLocation(name)
}

func parseOffset(s string) (int, error) {
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	s = strings.ReplaceAll(s[1:], ":", "")

	var hh, mm string
	switch len(s) {
	case 1, 2:
		hh = s
	case 3:
		hh, mm = s[:1], s[1:]
	case 4:
		hh, mm = s[:2], s[2:]
	default:
		return 0, fmt.Errorf("unexpected length")
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h > 14 {
		return 0, fmt.Errorf("bad hours %q", hh)
	}
	m := 0
	if mm != "" {
		if m, err = strconv.Atoi(mm); err != nil || m > 59 {
			return 0, fmt.Errorf("bad minutes %q", mm)
		}
	}
	return sign * (h*3600 + m*60), nil
}
