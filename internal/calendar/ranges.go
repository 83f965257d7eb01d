package calendar

import (
	"sort"
	"time"

	"slacal/internal/model"
)

type span struct {
	start time.Time
	end   time.Time
	open  bool
}

// Normalize merges overlapping or touching ranges into an ascending,
// pairwise-disjoint sequence covering the same union.
//
// An open input range absorbs everything after its start. A zero-length
// closed range that survives merging is returned as open: a pause with no
// end means "stop the clock from here on", so it absorbs every later range
// just like an open one. At most the last returned range is open.
// Normalize is idempotent.
func Normalize(ranges []model.TimeRange) []model.TimeRange {
	if len(ranges) == 0 {
		return nil
	}

	spans := make([]span, 0, len(ranges))
	for _, r := range ranges {
		s := span{start: r.Start, end: r.End, open: r.IsOpen()}
		if !s.open && s.end.Before(s.start) {
			s.start, s.end = s.end, s.start
		}
		spans = append(spans, s)
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start.Before(spans[j].start) })

	merged := make([]span, 0, len(spans))
	cur := spans[0]
	for _, next := range spans[1:] {
		if !cur.open && cur.start.Equal(cur.end) && next.start.After(cur.end) {
			cur.open = true
		}
		if cur.open || !next.start.After(cur.end) {
			switch {
			case next.open:
				cur.open = true
			case next.end.After(cur.end):
				cur.end = next.end
			}
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	merged = append(merged, cur)

	out := make([]model.TimeRange, 0, len(merged))
	for _, s := range merged {
		if s.open || s.start.Equal(s.end) {
			out = append(out, model.OpenRange(s.start))
			break
		}
		out = append(out, model.ClosedRange(s.start, s.end))
	}
	return out
}
