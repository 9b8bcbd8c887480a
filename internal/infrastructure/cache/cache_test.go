package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "movers", Key("movers"))
	assert.Equal(t, "movers:tw", Key("movers", "tw"))
	assert.Equal(t, "history:0050.TW:1d", Key("history", "0050.TW", "1d"))
}

func TestGetOrComputeMemoizesWithinTTL(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := New(WithClock(func() time.Time { return now }))

	calls := 0
	compute := func() (any, error) {
		calls++
		return calls, nil
	}

	first, err := c.GetOrCompute("k", 60*time.Second, compute)
	require.NoError(t, err)
	second, err := c.GetOrCompute("k", 60*time.Second, compute)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, calls)
}

func TestGetOrComputeRecomputesAfterExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := New(WithClock(func() time.Time { return now }))

	calls := 0
	compute := func() (any, error) {
		calls++
		return calls, nil
	}

	_, err := c.GetOrCompute("k", 60*time.Second, compute)
	require.NoError(t, err)

	// Still live exactly at the boundary.
	now = now.Add(60 * time.Second)
	value, err := c.GetOrCompute("k", 60*time.Second, compute)
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	now = now.Add(time.Second)
	value, err = c.GetOrCompute("k", 60*time.Second, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, value)
	assert.Equal(t, 2, calls)
}

func TestGetOrComputeDoesNotCacheFailures(t *testing.T) {
	c := New()

	calls := 0
	boom := errors.New("boom")
	_, err := c.GetOrCompute("k", time.Minute, func() (any, error) {
		calls++
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	value, err := c.GetOrCompute("k", time.Minute, func() (any, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.Equal(t, 2, calls)
}

func TestGetOrComputeSingleFlight(t *testing.T) {
	c := New()

	var calls atomic.Int32
	release := make(chan struct{})
	compute := func() (any, error) {
		calls.Add(1)
		<-release
		return "done", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := c.GetOrCompute("k", time.Minute, compute)
			require.NoError(t, err)
			results[i] = value
		}()
	}

	// Let the goroutines pile onto the same key before releasing.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, value := range results {
		assert.Equal(t, "done", value)
	}
}

func TestTypedGetOrCompute(t *testing.T) {
	c := New()

	value, err := GetOrCompute(c, "k", time.Minute, func() ([]int, error) {
		return []int{1, 2, 3}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, value)

	_, err = GetOrCompute(c, "fail", time.Minute, func() ([]int, error) {
		return nil, errors.New("boom")
	})
	assert.Error(t, err)
}
