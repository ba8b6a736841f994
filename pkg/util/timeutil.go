package util

import "time"

// Clock returns the current time; injected where tests need determinism.
type Clock func() time.Time

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Since reports the elapsed time between start and now in whole seconds.
func Since(start time.Time, now Clock) float64 {
	if now == nil {
		now = time.Now
	}
	return now().Sub(start).Seconds()
}
