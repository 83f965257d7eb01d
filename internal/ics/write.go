package ics

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/pkg/errors"

	"slacal/internal/model"
)

const productID = "-//slacal//holidays//EN"

// WriteHolidays serializes holidays as all-day VEVENTs. Yearly holidays get
// RRULE:FREQ=YEARLY. Materialized copies (AdditionalOccurrence) are left
// out since the rule already covers them.
func WriteHolidays(w io.Writer, calendarCode string, holidays []model.Holiday) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	stamp := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, h := range holidays {
		if h.AdditionalOccurrence {
			continue
		}
		start := h.Date.In(time.UTC)
		ev := cal.AddEvent(fmt.Sprintf("%s-%s-%d@slacal", calendarCode, h.Date, i))
		ev.SetDtStampTime(stamp)
		ev.SetSummary(h.Name)
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(start.AddDate(0, 0, 1))
		if h.Repeat == model.RepeatYearly {
			ev.AddRrule("FREQ=YEARLY")
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return errors.Wrap(err, "serialize holidays")
	}
	return nil
}
