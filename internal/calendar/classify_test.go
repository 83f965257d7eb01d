package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slacal/internal/model"
)

func TestContinuousCalendarAlwaysWorks(t *testing.T) {
	t.Parallel()
	c := newCalendar(t, continuousConfig("Asia/Singapore"))

	for _, ts := range []time.Time{
		at(2024, 1, 1, 0, 0),
		at(2024, 7, 6, 12, 30),
		at(2024, 12, 25, 23, 59),
	} {
		holiday, _ := c.IsHoliday(ts)
		working, _ := c.IsWorkingDay(ts)
		work, _ := c.IsTimeToWork(ts)
		rest, _ := c.IsTimeToTakeARest(ts)

		assert.False(t, holiday, ts)
		assert.True(t, working, ts)
		assert.True(t, work, ts)
		assert.False(t, rest, ts)
	}
}

func TestHolidayOnWednesday(t *testing.T) {
	t.Parallel()
	cfg := officeConfig()
	cfg.Holidays = []model.Holiday{{Name: "Founders Day", Date: model.Date{Year: 2024, Month: time.July, Day: 3}, Repeat: model.RepeatNever}}
	c := newCalendar(t, cfg)

	working, wd := c.IsWorkingDay(at(2024, 7, 3, 10, 0))
	assert.False(t, working)
	assert.Nil(t, wd)

	holiday, h := c.IsHoliday(at(2024, 7, 3, 0, 0))
	assert.True(t, holiday)
	require.NotNil(t, h)
	assert.Equal(t, "Founders Day", h.Name)
	assert.False(t, h.AdditionalOccurrence)

	holiday, _ = c.IsHoliday(at(2024, 7, 4, 0, 0))
	assert.False(t, holiday)
}

func TestHolidayUsesCalendarTimezone(t *testing.T) {
	t.Parallel()
	cfg := officeConfig()
	cfg.Timezone = "+08:00"
	cfg.Holidays = []model.Holiday{{Name: "x", Date: model.Date{Year: 2024, Month: time.July, Day: 3}}}
	c := newCalendar(t, cfg)

	// 2024-07-02 20:00 UTC is already 2024-07-03 04:00 at +08:00.
	holiday, _ := c.IsHoliday(at(2024, 7, 2, 20, 0))
	assert.True(t, holiday)
}

func TestYearlyHolidayIsProjected(t *testing.T) {
	t.Parallel()
	cfg := officeConfig()
	cfg.Holidays = []model.Holiday{
		{Name: "Happy New Year", Date: model.Date{Year: 2019, Month: time.January, Day: 1}, Repeat: model.RepeatYearly},
		{Name: "Lunar New Year", Date: model.Date{Year: 2020, Month: time.January, Day: 25}, Repeat: model.RepeatNever},
	}
	c := newCalendar(t, cfg)

	holiday, h := c.IsHoliday(at(2024, 1, 1, 9, 0))
	assert.True(t, holiday)
	require.NotNil(t, h)
	assert.True(t, h.AdditionalOccurrence)
	assert.Equal(t, model.Date{Year: 2024, Month: time.January, Day: 1}, h.Date)

	holiday, h = c.IsHoliday(at(2019, 1, 1, 9, 0))
	assert.True(t, holiday)
	assert.False(t, h.AdditionalOccurrence)

	holiday, _ = c.IsHoliday(at(2021, 1, 25, 9, 0))
	assert.False(t, holiday)
}

func TestIsTimeToWork(t *testing.T) {
	t.Parallel()
	c := newCalendar(t, officeConfig())

	tests := map[string]struct {
		at        time.Time
		work      bool
		withBreak bool
	}{
		"before work":  {at(2024, 7, 1, 7, 59), false, false},
		"band start":   {at(2024, 7, 1, 8, 0), true, false},
		"morning":      {at(2024, 7, 1, 10, 0), true, false},
		"lunch":        {at(2024, 7, 1, 12, 30), false, true},
		"lunch edge":   {at(2024, 7, 1, 13, 0), false, true},
		"afternoon":    {at(2024, 7, 1, 15, 45), true, false},
		"band end":     {at(2024, 7, 1, 17, 0), true, false},
		"evening":      {at(2024, 7, 1, 18, 0), false, false},
		"saturday":     {at(2024, 7, 6, 10, 0), false, false},
		"sunday night": {at(2024, 7, 7, 23, 0), false, false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			work, match := c.IsTimeToWork(tc.at)
			assert.Equal(t, tc.work, work)
			assert.Equal(t, tc.withBreak, match.Break != nil)

			rest, _ := c.IsTimeToTakeARest(tc.at)
			assert.Equal(t, !tc.work, rest)
		})
	}
}

func TestIsTimeToWork_MatchDetails(t *testing.T) {
	t.Parallel()
	c := newCalendar(t, officeConfig())

	_, match := c.IsTimeToWork(at(2024, 7, 2, 12, 15))
	require.NotNil(t, match.WorkDay)
	assert.Equal(t, 2, match.WorkDay.DayOfWeek)
	assert.True(t, match.Window.Start.Equal(at(2024, 7, 2, 8, 0)))
	assert.True(t, match.Window.End.Equal(at(2024, 7, 2, 17, 0)))
	require.NotNil(t, match.Break)
	assert.True(t, match.Break.Start.Equal(at(2024, 7, 2, 12, 0)))
	assert.True(t, match.Break.End.Equal(at(2024, 7, 2, 13, 0)))
}

func TestIsTimeToWork_MidnightSentinel(t *testing.T) {
	t.Parallel()
	cfg := officeConfig()
	cfg.WorkWeek = append(cfg.WorkWeek, model.WorkDay{
		DayOfWeek: 6,
		TimeOfDay: model.TimeOfDay{StartHour: 20},
	})
	c := newCalendar(t, cfg)

	work, match := c.IsTimeToWork(at(2024, 7, 6, 23, 30))
	assert.True(t, work)
	assert.True(t, match.Window.End.Equal(at(2024, 7, 7, 0, 0)))

	work, _ = c.IsTimeToWork(at(2024, 7, 6, 19, 59))
	assert.False(t, work)
}

func TestInRange(t *testing.T) {
	t.Parallel()
	start, end := at(2024, 7, 1, 8, 0), at(2024, 7, 1, 17, 0)

	in, err := InRange(start, []time.Time{start, end})
	require.NoError(t, err)
	assert.True(t, in)

	in, err = InRange(end, []time.Time{start, end})
	require.NoError(t, err)
	assert.True(t, in)

	in, err = InRange(end.Add(time.Second), []time.Time{start, end})
	require.NoError(t, err)
	assert.False(t, in)

	_, err = InRange(start, []time.Time{start})
	var rerr *TimeRangeError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, 1, rerr.Got)
	assert.True(t, errors.Is(err, ErrTimeRange))

	_, err = InRange(start, []time.Time{start, end, end})
	assert.True(t, errors.Is(err, ErrTimeRange))
}
