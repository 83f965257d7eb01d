package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slacal/internal/model"
)

func TestHolidays_MaterializesYearlyCopies(t *testing.T) {
	t.Parallel()
	cfg := officeConfig()
	cfg.Holidays = []model.Holiday{
		{Name: "Happy New Year", Date: model.Date{Year: 2019, Month: time.January, Day: 1}, Repeat: model.RepeatYearly},
		{Name: "Lunar New Year", Date: model.Date{Year: 2020, Month: time.January, Day: 25}, Repeat: model.RepeatNever},
		{Name: "Extra", Date: model.Date{Year: 2024, Month: time.October, Day: 28}, Repeat: model.RepeatYearly},
	}
	c := newCalendar(t, cfg)

	got := c.Holidays(2024)
	require.Len(t, got, 4)
	for _, h := range got[:3] {
		assert.False(t, h.AdditionalOccurrence, h.Name)
	}
	assert.Equal(t, "Happy New Year", got[3].Name)
	assert.True(t, got[3].AdditionalOccurrence)
	assert.Equal(t, model.Date{Year: 2024, Month: time.January, Day: 1}, got[3].Date)

	// Yearly holidays also project backwards.
	got = c.Holidays(2018)
	require.Len(t, got, 5)
	assert.Equal(t, model.Date{Year: 2018, Month: time.January, Day: 1}, got[3].Date)
	assert.Equal(t, model.Date{Year: 2018, Month: time.October, Day: 28}, got[4].Date)
}

func TestHolidays_LeapDay(t *testing.T) {
	t.Parallel()
	cfg := officeConfig()
	cfg.Holidays = []model.Holiday{{Name: "Leap", Date: model.Date{Year: 2024, Month: time.February, Day: 29}, Repeat: model.RepeatYearly}}
	c := newCalendar(t, cfg)

	assert.Len(t, c.Holidays(2025), 1)

	got := c.Holidays(2028)
	require.Len(t, got, 2)
	assert.Equal(t, model.Date{Year: 2028, Month: time.February, Day: 29}, got[1].Date)
}

func TestHolidays_ContinuousHasNone(t *testing.T) {
	t.Parallel()
	cfg := continuousConfig("UTC")
	cfg.Holidays = []model.Holiday{{Name: "ignored", Date: model.Date{Year: 2024, Month: time.January, Day: 1}}}
	c := newCalendar(t, cfg)

	assert.Empty(t, c.Holidays(2024))
}

func TestIsHoliday_FirstDeclaredWins(t *testing.T) {
	t.Parallel()
	cfg := officeConfig()
	cfg.Holidays = []model.Holiday{
		{Name: "Founders", Date: model.Date{Year: 2020, Month: time.July, Day: 4}, Repeat: model.RepeatYearly},
		{Name: "Picnic", Date: model.Date{Year: 2024, Month: time.July, Day: 4}},
	}
	c := newCalendar(t, cfg)

	ok, h := c.IsHoliday(at(2024, 7, 4, 15, 0))
	require.True(t, ok)
	assert.Equal(t, "Picnic", h.Name)

	ok, h = c.IsHoliday(at(2021, 7, 4, 0, 0))
	require.True(t, ok)
	assert.Equal(t, "Founders", h.Name)
	assert.True(t, h.AdditionalOccurrence)
}
