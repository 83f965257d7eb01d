package config

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"slacal/internal/ics"
	appLog "slacal/internal/log"
	"slacal/internal/model"
)

// NOTE: The file holds a map of named calendars, each with a type,
// timezone, work week and holidays. YAML is the default format; a ".toml"
// path switches to TOML.

// BreakConfig is a break band inside a work day. to_hour/to_minute of 0/0
// means midnight of the next day.
type BreakConfig struct {
	FromHour   int `yaml:"from_hour" json:"from_hour" toml:"from_hour"`
	FromMinute int `yaml:"from_minute" json:"from_minute" toml:"from_minute"`
	ToHour     int `yaml:"to_hour" json:"to_hour" toml:"to_hour"`
	ToMinute   int `yaml:"to_minute" json:"to_minute" toml:"to_minute"`
}

// WorkDayConfig is the work band of one weekday.
type WorkDayConfig struct {
	// Day is the ISO weekday: 1 Monday .. 7 Sunday.
	Day        int           `yaml:"day" json:"day" toml:"day"`
	FromHour   int           `yaml:"from_hour" json:"from_hour" toml:"from_hour"`
	FromMinute int           `yaml:"from_minute" json:"from_minute" toml:"from_minute"`
	ToHour     int           `yaml:"to_hour" json:"to_hour" toml:"to_hour"`
	ToMinute   int           `yaml:"to_minute" json:"to_minute" toml:"to_minute"`
	Break      []BreakConfig `yaml:"break,omitempty" json:"break,omitempty" toml:"break,omitempty"`
}

// HolidayConfig declares one holiday.
type HolidayConfig struct {
	Name string `yaml:"name" json:"name" toml:"name"`
	// Date is formatted as yyyy-mm-dd.
	Date string `yaml:"date" json:"date" toml:"date"`
	// Repeat is "yearly" or "never" (default).
	Repeat string `yaml:"repeat" json:"repeat" toml:"repeat"`
}

// CalendarConfig describes one named calendar.
type CalendarConfig struct {
	// Type is "custom", or "247"/"continuous" for a calendar where every
	// instant is working time. WorkWeek and Holidays are ignored for the latter.
	Type string `yaml:"type" json:"type" toml:"type"`

	// Timezone is an IANA name (e.g. "Asia/Singapore"), "UTC", or an
	// offset such as "+08:00".
	Timezone string `yaml:"timezone" json:"timezone" toml:"timezone"`

	Code        string `yaml:"code" json:"code" toml:"code"`
	Name        string `yaml:"name" json:"name" toml:"name"`
	Description string `yaml:"description" json:"description" toml:"description"`

	WorkWeek []WorkDayConfig `yaml:"work_week,omitempty" json:"work_week,omitempty" toml:"work_week,omitempty"`
	Holidays []HolidayConfig `yaml:"holidays,omitempty" json:"holidays,omitempty" toml:"holidays,omitempty"`

	// HolidaysICS optionally names an .ics file whose events are added to
	// Holidays. Relative paths resolve against the config file's directory.
	HolidaysICS string `yaml:"holidays_ics,omitempty" json:"holidays_ics,omitempty" toml:"holidays_ics,omitempty"`
}

// Config is the top-level application configuration.
type Config struct {
	// DefaultCalendar names the calendar used when none is requested.
	DefaultCalendar string `yaml:"default_calendar" json:"default_calendar" toml:"default_calendar"`

	// LogLevel is one of "debug", "info", "error".
	LogLevel string `yaml:"log_level" json:"log_level" toml:"log_level"`

	Calendars map[string]CalendarConfig `yaml:"calendars" json:"calendars" toml:"calendars"`

	// baseDir is the directory of the file the config was loaded from.
	baseDir string
}

const (
	defaultCalendarName = "default"
	defaultLogLevel     = "info"
	defaultTimezone     = "UTC"
)

func lunchBreak() []BreakConfig {
	return []BreakConfig{{FromHour: 12, ToHour: 13}}
}

// DefaultConfig returns an in-memory default configuration: an 8/5 office
// calendar and a 24/7 default calendar.
func DefaultConfig() *Config {
	workWeek := make([]WorkDayConfig, 0, 6)
	for day := 1; day <= 5; day++ {
		workWeek = append(workWeek, WorkDayConfig{Day: day, FromHour: 8, ToHour: 17, Break: lunchBreak()})
	}
	workWeek = append(workWeek, WorkDayConfig{Day: 6, FromHour: 8, ToHour: 12})

	return &Config{
		DefaultCalendar: defaultCalendarName,
		LogLevel:        defaultLogLevel,
		Calendars: map[string]CalendarConfig{
			"8_5_calendar": {
				Type:        string(model.KindCustom),
				Timezone:    "Asia/Singapore",
				Code:        "8_5_calendar",
				Name:        "8/5 Calendar",
				Description: "Default 8/5 Calendar",
				WorkWeek:    workWeek,
				Holidays: []HolidayConfig{
					{Name: "Happy New Year", Date: "2019-01-01", Repeat: string(model.RepeatYearly)},
				},
			},
			defaultCalendarName: {
				Type:        string(model.KindContinuous),
				Timezone:    "Asia/Singapore",
				Code:        defaultCalendarName,
				Name:        "24/7 Calendar (Default)",
				Description: "Default Business Calendar",
			},
		},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if len(c.Calendars) == 0 {
		c.Calendars = map[string]CalendarConfig{
			defaultCalendarName: {
				Type:     string(model.KindContinuous),
				Timezone: defaultTimezone,
				Code:     defaultCalendarName,
			},
		}
	}
	if c.DefaultCalendar == "" {
		c.DefaultCalendar = defaultCalendarName
	}

	for name, cal := range c.Calendars {
		cal.Type = strings.ToLower(strings.TrimSpace(cal.Type))
		if cal.Type == "" {
			cal.Type = string(model.KindContinuous)
		}
		if cal.Timezone == "" {
			cal.Timezone = defaultTimezone
		}
		if cal.Code == "" {
			cal.Code = name
		}
		c.Calendars[name] = cal
	}
}

// Names returns the configured calendar names, sorted.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Calendars))
	for name := range c.Calendars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Calendar returns the named calendar (DefaultCalendar when name is empty)
// as an engine configuration.
func (c *Config) Calendar(name string) (model.CalendarConfig, error) {
	if name == "" {
		name = c.DefaultCalendar
	}
	cal, ok := c.Calendars[name]
	if !ok {
		return model.CalendarConfig{}, errors.Errorf("calendar %q not found (have %s)", name, strings.Join(c.Names(), ", "))
	}

	out := model.CalendarConfig{
		Timezone:    cal.Timezone,
		Code:        cal.Code,
		Name:        cal.Name,
		Description: cal.Description,
	}

	switch strings.ToLower(cal.Type) {
	case "247", "continuous":
		out.Kind = model.KindContinuous
		return out, nil
	case "custom":
		out.Kind = model.KindCustom
	default:
		return model.CalendarConfig{}, errors.Errorf("calendar %q: unknown type %q", name, cal.Type)
	}

	for _, wd := range cal.WorkWeek {
		day := model.WorkDay{
			DayOfWeek: wd.Day,
			TimeOfDay: model.TimeOfDay{StartHour: wd.FromHour, StartMinute: wd.FromMinute, EndHour: wd.ToHour, EndMinute: wd.ToMinute},
		}
		for _, b := range wd.Break {
			day.Breaks = append(day.Breaks, model.TimeOfDay{StartHour: b.FromHour, StartMinute: b.FromMinute, EndHour: b.ToHour, EndMinute: b.ToMinute})
		}
		out.WorkWeek = append(out.WorkWeek, day)
	}

	for i, h := range cal.Holidays {
		date, err := model.ParseDate(h.Date)
		if err != nil {
			return model.CalendarConfig{}, errors.Wrapf(err, "calendar %q: holidays[%d]", name, i)
		}
		repeat := model.RepeatNever
		switch strings.ToLower(h.Repeat) {
		case "", "never":
		case "yearly":
			repeat = model.RepeatYearly
		default:
			return model.CalendarConfig{}, errors.Errorf("calendar %q: holidays[%d]: unknown repeat %q", name, i, h.Repeat)
		}
		out.Holidays = append(out.Holidays, model.Holiday{Name: h.Name, Date: date, Repeat: repeat})
	}

	if cal.HolidaysICS != "" {
		path := cal.HolidaysICS
		if !filepath.IsAbs(path) && c.baseDir != "" {
			path = filepath.Join(c.baseDir, path)
		}
		body, err := os.ReadFile(path)
		if err != nil {
			return model.CalendarConfig{}, errors.Wrapf(err, "calendar %q: read holidays_ics", name)
		}
		imported, err := ics.ParseHolidays(path, body)
		if err != nil {
			return model.CalendarConfig{}, errors.Wrapf(err, "calendar %q", name)
		}
		out.Holidays = append(out.Holidays, imported...)
	}

	return out, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load loads configuration from the given YAML (or .toml) path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			cfg.baseDir = filepath.Dir(path)
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			appLog.Info("config: wrote default config", "path", path)
			return cfg, nil
		}
		return nil, errors.Wrap(err, "read config")
	}

	var cfg Config
	if isTOML(path) {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	cfg.Normalize()
	cfg.baseDir = filepath.Dir(path)

	return &cfg, nil
}

func marshal(path string, cfg *Config) ([]byte, error) {
	if !isTOML(path) {
		return yaml.Marshal(cfg)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML, or TOML for a ".toml" path.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := marshal(path, cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".slacal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
