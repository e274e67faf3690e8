package testutil

import (
	"sync"
	"time"
)

// DefaultEpoch is the first instant returned by a StepClock created with
// NewStepClock. Chosen so golden output never depends on the real date.
var DefaultEpoch = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

// StepClock is a deterministic wall clock for tests.
//
// Every call to Now returns the previous value plus Step, starting at the
// epoch, so two timestamps taken in sequence are always strictly ordered and
// identical across test runs.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu    sync.Mutex
	epoch time.Time
	step  time.Duration
	ticks int64
}

// NewStepClock creates a clock starting at DefaultEpoch that advances one
// minute per call.
func NewStepClock() *StepClock {
	return &StepClock{epoch: DefaultEpoch, step: time.Minute}
}

// Now returns the next instant. The first call returns the epoch.
//
// Implements task.Clock.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.epoch.Add(time.Duration(c.ticks) * c.step)
	c.ticks++
	return now
}
