package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slacal/internal/model"
)

func TestElapsed_OfficeScenarios(t *testing.T) {
	t.Parallel()
	c := newCalendar(t, officeConfig())

	tests := map[string]struct {
		from, to time.Time
		pauses   []model.TimeRange
		want     int64
		days     int
	}{
		"full monday": {
			from: at(2024, 7, 1, 8, 0), to: at(2024, 7, 1, 17, 0),
			want: 28800, days: 1,
		},
		"monday to tuesday start": {
			from: at(2024, 7, 1, 8, 0), to: at(2024, 7, 2, 8, 0),
			want: 28800, days: 1,
		},
		"half hour pause": {
			from: at(2024, 7, 1, 8, 0), to: at(2024, 7, 1, 17, 0),
			pauses: []model.TimeRange{model.ClosedRange(at(2024, 7, 1, 9, 0), at(2024, 7, 1, 9, 30))},
			want:   28800 - 1800, days: 1,
		},
		"pause overlapping lunch counted once": {
			from: at(2024, 7, 1, 8, 0), to: at(2024, 7, 1, 17, 0),
			pauses: []model.TimeRange{model.ClosedRange(at(2024, 7, 1, 11, 30), at(2024, 7, 1, 12, 30))},
			want:   32400 - 5400, days: 1,
		},
		"pause outside window": {
			from: at(2024, 7, 1, 8, 0), to: at(2024, 7, 1, 17, 0),
			pauses: []model.TimeRange{model.ClosedRange(at(2024, 7, 1, 18, 0), at(2024, 7, 1, 19, 0))},
			want:   28800, days: 1,
		},
		"from inside lunch": {
			from: at(2024, 7, 1, 12, 30), to: at(2024, 7, 1, 14, 0),
			want: 3600, days: 1,
		},
		"before band to after band": {
			from: at(2024, 7, 1, 6, 0), to: at(2024, 7, 1, 20, 0),
			want: 28800, days: 1,
		},
		"after band": {
			from: at(2024, 7, 1, 17, 30), to: at(2024, 7, 1, 23, 0),
			want: 0, days: 0,
		},
		"over the weekend": {
			from: at(2024, 7, 5, 16, 0), to: at(2024, 7, 8, 9, 0),
			want: 7200, days: 2,
		},
		"full week": {
			from: at(2024, 7, 1, 0, 0), to: at(2024, 7, 8, 0, 0),
			want: 5 * 28800, days: 5,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := c.ElapsedSeconds(tc.from, tc.to, tc.pauses)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Seconds)
			assert.Len(t, got.Trace, tc.days)
			assert.False(t, got.Halted)

			var sum int64
			for _, e := range got.Trace {
				sum += e.Seconds
			}
			assert.Equal(t, got.Seconds, sum)
		})
	}
}

func TestElapsed_OpenPauseHalts(t *testing.T) {
	t.Parallel()
	c := newCalendar(t, officeConfig())

	got, err := c.ElapsedSeconds(at(2024, 7, 1, 8, 0), at(2024, 7, 1, 17, 0),
		[]model.TimeRange{model.OpenRange(at(2024, 7, 1, 10, 0))})
	require.NoError(t, err)
	assert.Equal(t, int64(7200), got.Seconds)
	assert.True(t, got.Halted)

	require.Len(t, got.Trace, 1)
	entry := got.Trace[0]
	assert.True(t, entry.Halted)
	require.Len(t, entry.Skipped, 1)
	assert.True(t, entry.Skipped[0].Start.Equal(at(2024, 7, 1, 10, 0)))
	assert.True(t, entry.Skipped[0].End.Equal(at(2024, 7, 1, 17, 0)))
}

func TestElapsed_OpenPauseStopsLaterDays(t *testing.T) {
	t.Parallel()
	c := newCalendar(t, officeConfig())

	// A pause with no end given as a zero-length range on Tuesday evening.
	pause := at(2024, 7, 2, 19, 0)
	got, err := c.ElapsedSeconds(at(2024, 7, 1, 8, 0), at(2024, 7, 5, 17, 0),
		[]model.TimeRange{model.ClosedRange(pause, pause)})
	require.NoError(t, err)
	assert.Equal(t, int64(2*28800), got.Seconds)
	assert.True(t, got.Halted)
	require.Len(t, got.Trace, 3)
	assert.Equal(t, int64(0), got.Trace[2].Seconds)
	assert.True(t, got.Trace[2].Halted)
}

func TestElapsed_TraceEntry(t *testing.T) {
	t.Parallel()
	c := newCalendar(t, officeConfig())

	got, err := c.ElapsedSeconds(at(2024, 7, 1, 10, 30), at(2024, 7, 2, 15, 15), nil)
	require.NoError(t, err)
	require.Len(t, got.Trace, 2)

	mon, tue := got.Trace[0], got.Trace[1]
	assert.Equal(t, model.Date{Year: 2024, Month: time.July, Day: 1}, mon.Date)
	assert.Equal(t, 1, mon.DayOfWeek)
	assert.Equal(t, 10, mon.EffectiveStartHour())
	assert.Equal(t, 30, mon.EffectiveStartMinute())
	assert.Equal(t, 17, mon.EffectiveEndHour())
	assert.Equal(t, int64(5*3600+30*60), mon.Seconds)
	require.Len(t, mon.Skipped, 1)
	assert.Equal(t, time.Hour, mon.Skipped[0].Duration())

	assert.Equal(t, 2, tue.DayOfWeek)
	assert.Equal(t, 8, tue.EffectiveStartHour())
	assert.Equal(t, 15, tue.EffectiveEndHour())
	assert.Equal(t, 15, tue.EffectiveEndMinute())
	assert.Equal(t, int64(6*3600+15*60), tue.Seconds)
}

func TestElapsed_SkipsHolidays(t *testing.T) {
	t.Parallel()
	cfg := officeConfig()
	cfg.Holidays = []model.Holiday{{Name: "mid-week", Date: model.Date{Year: 2024, Month: time.July, Day: 3}}}
	c := newCalendar(t, cfg)

	got, err := c.ElapsedSeconds(at(2024, 7, 2, 16, 0), at(2024, 7, 4, 9, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7200), got.Seconds)
	require.Len(t, got.Trace, 2)
	assert.Equal(t, 2, got.Trace[0].DayOfWeek)
	assert.Equal(t, 4, got.Trace[1].DayOfWeek)
}

func TestElapsed_MidnightSentinelBand(t *testing.T) {
	t.Parallel()
	cfg := officeConfig()
	cfg.WorkWeek = append(cfg.WorkWeek, model.WorkDay{
		DayOfWeek: 6,
		TimeOfDay: model.TimeOfDay{StartHour: 20},
		Breaks:    []model.TimeOfDay{{StartHour: 22}},
	})
	c := newCalendar(t, cfg)

	// Saturday 20:00-24:00 with a break from 22:00 to midnight; Sunday is off.
	got, err := c.ElapsedSeconds(at(2024, 7, 6, 19, 0), at(2024, 7, 7, 2, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7200), got.Seconds)
	require.Len(t, got.Trace, 1)
	assert.Equal(t, 0, got.Trace[0].EffectiveEndHour())
}

func TestElapsed_Continuous(t *testing.T) {
	t.Parallel()
	c := newCalendar(t, continuousConfig("UTC"))

	got, err := c.ElapsedSeconds(at(2024, 7, 1, 10, 0), at(2024, 7, 3, 6, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(14*3600+24*3600+6*3600), got.Seconds)
	require.Len(t, got.Trace, 3)
	assert.Equal(t, int64(86400), got.Trace[1].Seconds)

	got, err = c.ElapsedSeconds(at(2024, 7, 1, 10, 0), at(2024, 7, 1, 11, 0),
		[]model.TimeRange{model.ClosedRange(at(2024, 7, 1, 10, 15), at(2024, 7, 1, 10, 45))})
	require.NoError(t, err)
	assert.Equal(t, int64(1800), got.Seconds)
}

func TestElapsed_ContinuousAcrossDST(t *testing.T) {
	t.Parallel()
	c := newCalendar(t, continuousConfig("America/New_York"))
	loc := c.Location()

	// 2024-03-10 is 23 hours long in New York.
	got, err := c.ElapsedSeconds(
		time.Date(2024, 3, 10, 0, 0, 0, 0, loc),
		time.Date(2024, 3, 11, 0, 0, 0, 0, loc), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(23*3600), got.Seconds)
}

func TestElapsed_SameInstant(t *testing.T) {
	t.Parallel()
	for _, cfg := range []model.CalendarConfig{officeConfig(), continuousConfig("UTC")} {
		c := newCalendar(t, cfg)
		ts := at(2024, 7, 1, 10, 0)
		got, err := c.ElapsedSeconds(ts, ts, nil)
		require.NoError(t, err)
		assert.Zero(t, got.Seconds)
		assert.Empty(t, got.Trace)
	}
}

func TestElapsed_RejectsReversedRange(t *testing.T) {
	t.Parallel()
	c := newCalendar(t, officeConfig())

	_, err := c.ElapsedSeconds(at(2024, 7, 2, 10, 0), at(2024, 7, 1, 10, 0), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRangeOrder))

	var rerr *InvalidRangeOrderError
	require.True(t, errors.As(err, &rerr))
	assert.True(t, rerr.From.Equal(at(2024, 7, 2, 10, 0)))
}

func TestElapsed_Monotonic(t *testing.T) {
	t.Parallel()
	cfg := officeConfig()
	cfg.Holidays = []model.Holiday{{Name: "h", Date: model.Date{Year: 2024, Month: time.July, Day: 3}}}
	c := newCalendar(t, cfg)

	from := at(2024, 7, 1, 9, 17)
	pauses := []model.TimeRange{
		model.ClosedRange(at(2024, 7, 1, 14, 0), at(2024, 7, 2, 10, 0)),
		model.OpenRange(at(2024, 7, 5, 11, 0)),
	}
	var prev int64
	for to := from; to.Before(at(2024, 7, 9, 0, 0)); to = to.Add(37 * time.Minute) {
		got, err := c.ElapsedSeconds(from, to, pauses)
		require.NoError(t, err)
		require.GreaterOrEqual(t, got.Seconds, prev, "elapsed decreased at %s", to)
		prev = got.Seconds
	}
}

func TestElapsedSince(t *testing.T) {
	t.Parallel()
	c := newCalendar(t, officeConfig())

	// The test clock reads Monday 09:00.
	got, err := c.ElapsedSince(at(2024, 7, 1, 8, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), got.Seconds)
}
