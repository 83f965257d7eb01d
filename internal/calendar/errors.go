package calendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrTimeRange         = errors.New("time range requires exactly 2 instants")
	ErrUnreachableTarget = errors.New("target elapsed time is unreachable")
	ErrInvalidRangeOrder = errors.New("from is after to")
	ErrInvalidConfig     = errors.New("invalid calendar config")
)

// TimeRangeError is returned by InRange when the range does not hold
// exactly two endpoints.
type TimeRangeError struct {
	Got int
}

func (e *TimeRangeError) Error() string {
	return fmt.Sprintf("%s, got %d", ErrTimeRange, e.Got)
}

func (e *TimeRangeError) Unwrap() error { return ErrTimeRange }

// UnreachableTargetError is returned by EstimateDue when the forward probe
// runs out of budget before the target is reached.
type UnreachableTargetError struct {
	Target  int64
	Reached int64
	Probes  int
	Horizon time.Time
}

func (e *UnreachableTargetError) Error() string {
	return fmt.Sprintf("%s: target %ds, reached %ds after %d probes (last probe %s)",
		ErrUnreachableTarget, e.Target, e.Reached, e.Probes, e.Horizon.Format(time.RFC3339))
}

func (e *UnreachableTargetError) Unwrap() error { return ErrUnreachableTarget }

// InvalidRangeOrderError is returned when an elapsed query has from > to.
type InvalidRangeOrderError struct {
	From, To time.Time
}

func (e *InvalidRangeOrderError) Error() string {
	return fmt.Sprintf("%s: from %s, to %s", ErrInvalidRangeOrder,
		e.From.Format(time.RFC3339), e.To.Format(time.RFC3339))
}

func (e *InvalidRangeOrderError) Unwrap() error { return ErrInvalidRangeOrder }

// ConfigError describes why a CalendarConfig was rejected.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }
