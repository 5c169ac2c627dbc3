package generator

import "time"

type systemClock struct{}

// Now return current time.
func (c systemClock) Now() time.Time {
	return time.Now()
}
