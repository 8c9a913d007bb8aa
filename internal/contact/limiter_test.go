package contact

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayLimiter_ThreePerMinute(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	l := NewRelayLimiter(3)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		claim, ok := l.Acquire()
		require.True(t, ok, "message %d", i+1)
		claim.Commit()
	}
	assert.False(t, l.Available())

	now = now.Add(20 * time.Second)
	assert.True(t, l.Available(), "one slot refills every 20s")
}

func TestRelayLimiter_InFlightClaimsHoldBudget(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	l := NewRelayLimiter(2)
	l.now = func() time.Time { return now }

	first, ok := l.Acquire()
	require.True(t, ok)
	second, ok := l.Acquire()
	require.True(t, ok)

	_, ok = l.Acquire()
	assert.False(t, ok, "two deliveries in flight use the whole budget")

	second.Release()
	third, ok := l.Acquire()
	require.True(t, ok, "a released claim frees its slot")

	first.Commit()
	third.Commit()
	assert.False(t, l.Available())
}

func TestRelayLimiter_OnlyDeliveriesCount(t *testing.T) {
	l := NewRelayLimiter(1)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Available())
	assert.True(t, l.Available(), "checking does not consume")

	claim, ok := l.Acquire()
	require.True(t, ok)
	claim.Release()
	claim.Release()
	assert.True(t, l.Available(), "a failed delivery gives its slot back once")

	claim, ok = l.Acquire()
	require.True(t, ok)
	claim.Commit()
	claim.Release()
	assert.False(t, l.Available(), "a claim settles only once")
}

func TestRelayLimiter_ConcurrentAcquire(t *testing.T) {
	l := NewRelayLimiter(3)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if claim, ok := l.Acquire(); ok {
				mu.Lock()
				granted++
				mu.Unlock()
				claim.Commit()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 3, granted)
}

func TestNewRelayLimiter_DefaultsNonPositive(t *testing.T) {
	l := NewRelayLimiter(0)
	for i := 0; i < DefaultPerMinute; i++ {
		claim, ok := l.Acquire()
		require.True(t, ok)
		claim.Commit()
	}
	assert.False(t, l.Available())
}
