package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

var units = []struct {
	name string
	secs int64
}{
	{"day", 86400},
	{"hour", 3600},
	{"minute", 60},
	{"second", 1},
}

// Duration renders a seconds count as e.g. "3 hours 15 minutes", largest
// unit first, leaving out zero units. Days are calendar days of 24 hours.
func Duration(seconds int64) string {
	if seconds == 0 {
		return "0 seconds"
	}
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}

	parts := make([]string, 0, len(units))
	for _, u := range units {
		n := seconds / u.secs
		if n == 0 {
			continue
		}
		seconds -= n * u.secs
		parts = append(parts, plural(n, u.name))
	}
	return sign + strings.Join(parts, " ")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%s %ss", humanize.Comma(n), unit)
}

// Seconds renders a raw count with thousands separators: "25,200 seconds".
func Seconds(seconds int64) string {
	return humanize.Comma(seconds) + " seconds"
}
