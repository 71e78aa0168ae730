package timectrl

import (
	"fmt"
	"time"
)

// Schedule describes evenly spaced sample times: a reference epoch plus a
// fixed step, repeated Count times.
type Schedule struct {
	Start time.Time
	Step  time.Duration
	Count int
}

// NewSchedule constructs and validates a schedule.
func NewSchedule(start time.Time, step time.Duration, count int) (Schedule, error) {
	s := Schedule{Start: start, Step: step, Count: count}
	return s, s.Validate()
}

// Validate rejects schedules that cannot produce an ordered track.
func (s Schedule) Validate() error {
	if s.Start.IsZero() {
		return fmt.Errorf("schedule start must be set")
	}
	if s.Step <= 0 {
		return fmt.Errorf("schedule step must be positive, got %s", s.Step)
	}
	if s.Count <= 0 {
		return fmt.Errorf("schedule count must be positive, got %d", s.Count)
	}
	return nil
}

// At returns the i-th sample time.
func (s Schedule) At(i int) time.Time {
	return s.Start.Add(time.Duration(i) * s.Step)
}

// End is the time of the last sample.
func (s Schedule) End() time.Time {
	if s.Count == 0 {
		return s.Start
	}
	return s.At(s.Count - 1)
}

// Times lists every sample time in order.
func (s Schedule) Times() []time.Time {
	if s.Count <= 0 {
		return nil
	}
	out := make([]time.Time, s.Count)
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}
