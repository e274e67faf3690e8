package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepClock_StartsAtEpoch(t *testing.T) {
	clock := NewStepClock()
	assert.Equal(t, DefaultEpoch, clock.Now())
}

func TestStepClock_AdvancesByMinute(t *testing.T) {
	clock := NewStepClock()

	assert.Equal(t, DefaultEpoch, clock.Now())
	assert.Equal(t, DefaultEpoch.Add(time.Minute), clock.Now())
	assert.Equal(t, DefaultEpoch.Add(2*time.Minute), clock.Now())
}

func TestStepClock_ClocksAreIndependent(t *testing.T) {
	first := NewStepClock()
	first.Now()
	first.Now()

	second := NewStepClock()
	require.Equal(t, DefaultEpoch, second.Now())
	assert.Equal(t, DefaultEpoch.Add(2*time.Minute), first.Now())
}

func TestStepClock_ConcurrentCallsAreDistinct(t *testing.T) {
	clock := NewStepClock()

	const n = 100
	results := make(chan time.Time, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- clock.Now()
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[time.Time]bool)
	for r := range results {
		assert.False(t, seen[r], "duplicate instant %v", r)
		seen[r] = true
	}
	assert.Len(t, seen, n)
}

func TestNewMemFs(t *testing.T) {
	fs := NewMemFs(t, map[string]string{"tasks.json": "[]"})
	assert.Equal(t, "[]", ReadFile(t, fs, "tasks.json"))
}
