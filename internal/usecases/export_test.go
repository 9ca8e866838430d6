package usecases

import "time"

// SetTimeNow overrides the clock for tests and returns a restore func.
func SetTimeNow(fn func() time.Time) func() {
	prev := timeNow
	timeNow = fn
	return func() { timeNow = prev }
}
