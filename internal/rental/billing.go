package rental

import (
	"math"
	"time"
)

// Elapsed returns the wall-clock time between start and end in fractional
// hours. It is not calendar-aware: a session crossing midnight is billed as
// one continuous span.
func Elapsed(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// Cost bills elapsed time at an hourly rate, rounded up to the next whole
// currency unit. Any nonzero elapsed time costs at least 1; the rounding is
// always up, never down.
func Cost(elapsedHours, hourlyRate float64) float64 {
	return math.Ceil(elapsedHours * hourlyRate)
}
