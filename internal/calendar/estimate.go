package calendar

import (
	"time"

	appLog "slacal/internal/log"
	"slacal/internal/model"
)

// EstimateDue returns the earliest instant (to the second) at which
// target working seconds have elapsed since from.
//
// The search first probes forward in calendar time, doubling its step
// until the target is bracketed, then bisects the bracket. Probing is
// bounded by Options.MaxProbes and Options.SearchHorizon; running out of
// either yields an *UnreachableTargetError.
func (c *Calendar) EstimateDue(from time.Time, target int64, nonCounting []model.TimeRange) (time.Time, error) {
	from = from.In(c.loc)
	if target <= 0 {
		return from, nil
	}

	pauses := Normalize(nonCounting)
	elapsed := func(to time.Time) (int64, error) {
		r, err := c.ElapsedSeconds(from, to, pauses)
		return r.Seconds, err
	}

	limit := from.Add(c.opts.SearchHorizon)
	step := c.opts.SearchHorizon
	if target < int64(c.opts.SearchHorizon/time.Second) {
		step = time.Duration(target) * time.Second
	}

	low, high := from, from.Add(step)
	probes := 0
	var reached int64
	for {
		probes++
		got, err := elapsed(high)
		if err != nil {
			return time.Time{}, err
		}
		if got >= target {
			break
		}
		reached = got
		if probes >= c.opts.MaxProbes || !high.Before(limit) {
			err := &UnreachableTargetError{Target: target, Reached: reached, Probes: probes, Horizon: high}
			appLog.Debug("estimate: target not bracketed", "target", target, "reached", reached, "probes", probes)
			return time.Time{}, err
		}
		low = high
		step *= 2
		high = minTime(high.Add(step), limit)
	}

	steps := 0
	for ; steps < c.opts.MaxRefineSteps && high.Sub(low) > time.Second; steps++ {
		mid := low.Add((high.Sub(low) / 2).Truncate(time.Second))
		got, err := elapsed(mid)
		if err != nil {
			return time.Time{}, err
		}
		if got >= target {
			high = mid
		} else {
			low = mid
		}
	}

	appLog.Debug("estimate: done", "target", target, "probes", probes, "refine_steps", steps, "due", high.Format(time.RFC3339))
	return high, nil
}
