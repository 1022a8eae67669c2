package timex

import "time"

// Clock supplies the current time. Production code uses SystemClock;
// tests substitute a fixed implementation to pin expiry boundaries.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
