// Package report renders engine results as borderless terminal tables:
// the per-day elapsed trace, the holiday list and the work week.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"slacal/internal/calendar"
	"slacal/internal/model"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	cellStyle      = lipgloss.NewStyle().PaddingRight(2)
)

var dayNames = map[int]string{
	1: "Monday",
	2: "Tuesday",
	3: "Wednesday",
	4: "Thursday",
	5: "Friday",
	6: "Saturday",
	7: "Sunday",
}

// DayName returns the English name of an ISO weekday, or "N/A".
func DayName(iso int) string {
	if n, ok := dayNames[iso]; ok {
		return n
	}
	return "N/A"
}

type grid struct {
	title  string
	header []string
	rows   [][]string
	marked map[int]bool
	footer []string
}

func (t *grid) add(row []string, mark bool) {
	if mark {
		if t.marked == nil {
			t.marked = make(map[int]bool)
		}
		t.marked[len(t.rows)] = true
	}
	t.rows = append(t.rows, row)
}

func (t *grid) render(w io.Writer) error {
	rows := t.rows
	footerRow := -1
	if len(t.footer) > 0 {
		footerRow = len(rows)
		rows = append(rows[:len(rows):len(rows)], t.footer)
	}

	tbl := table.New().
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Headers(t.header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := cellStyle
			switch {
			case row == table.HeaderRow, row == footerRow:
				cell = cell.Inherit(headerStyle)
			case t.marked[row]:
				cell = cell.Inherit(highlightStyle)
			}
			return cell
		})

	var b strings.Builder
	if t.title != "" {
		b.WriteString(headerStyle.Render(t.title))
		b.WriteString("\n")
	}
	b.WriteString(strings.TrimRight(tbl.String(), "\n"))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func clock(t time.Time) string {
	return t.Format("15:04")
}

func band(b model.TimeOfDay) string {
	return b.String()
}

// Elapsed writes the per-day trace of an elapsed computation. The day on
// which an open pause stopped the clock is highlighted.
func Elapsed(w io.Writer, from, to time.Time, res calendar.Elapsed) error {
	t := &grid{
		title:  fmt.Sprintf("Elapsed Working Time  From %s | To %s", from.Format(time.DateTime), to.Format(time.DateTime)),
		header: []string{"Date", "Working Time", "Skipped", "Total"},
	}
	for _, e := range res.Trace {
		skipped := make([]string, 0, len(e.Skipped))
		for _, r := range e.Skipped {
			skipped = append(skipped, clock(r.Start)+" - "+clock(r.End))
		}
		if e.Halted {
			skipped = append(skipped, "(halted)")
		}
		t.add([]string{
			fmt.Sprintf("%s (%s)", DayName(e.DayOfWeek), e.Date),
			clock(e.EffectiveStart) + " - " + clock(e.EffectiveEnd),
			strings.Join(skipped, ", "),
			fmt.Sprintf("%s (%s)", Duration(e.Seconds), Seconds(e.Seconds)),
		}, e.Halted)
	}
	t.footer = []string{"Total", "", "", fmt.Sprintf("%s (%s)", Duration(res.Seconds), Seconds(res.Seconds))}
	return t.render(w)
}

// Holidays writes the holiday list. Materialized yearly copies are
// highlighted and marked "(+)".
func Holidays(w io.Writer, holidays []model.Holiday) error {
	t := &grid{title: "Holidays", header: []string{"Date", "Name", "Repeat"}}
	for _, h := range holidays {
		repeat := string(h.Repeat)
		if h.AdditionalOccurrence {
			repeat += " (+)"
		}
		t.add([]string{h.Date.String(), h.Name, repeat}, h.AdditionalOccurrence)
	}
	return t.render(w)
}

// WorkWeek writes the work days. When match is non-nil the matched day is
// highlighted; its work band or break is called out depending on whether
// the instant was working time.
func WorkWeek(w io.Writer, days []model.WorkDay, match *calendar.WorkMatch, working bool) error {
	t := &grid{title: "Workdays", header: []string{"Day", "Working Time", "Break Time", "Now"}}
	for _, d := range days {
		breaks := make([]string, 0, len(d.Breaks))
		for _, b := range d.Breaks {
			breaks = append(breaks, band(b))
		}

		matched := match != nil && match.WorkDay != nil && match.WorkDay.DayOfWeek == d.DayOfWeek
		now := ""
		if matched {
			switch {
			case working:
				now = "working"
			case match.Break != nil:
				now = "break " + clock(match.Break.Start) + " - " + clock(match.Break.End)
			default:
				now = "off hours"
			}
		}
		t.add([]string{DayName(d.DayOfWeek), band(d.TimeOfDay), strings.Join(breaks, ", "), now}, matched)
	}
	return t.render(w)
}
