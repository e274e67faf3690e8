package task

import "time"

// Clock supplies the wall-clock time used to stamp CreatedAt and UpdatedAt.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
//
// Times are returned in UTC without a monotonic reading, so a timestamp that
// has been written to the backing file and read back compares equal to the
// original.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
