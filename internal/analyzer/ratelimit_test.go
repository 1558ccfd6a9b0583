package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestWindowLimiter_ExhaustsAndRollsOver(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}
	limiter := NewWindowLimiter(3, time.Minute, clock.Now)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow(), "call %d", i+1)
	}
	assert.False(t, limiter.Allow())
	assert.Equal(t, 0, limiter.Remaining())

	// Exactly one window later is still the same window.
	clock.Advance(time.Minute)
	assert.False(t, limiter.Allow())

	clock.Advance(time.Second)
	assert.True(t, limiter.Allow())
	assert.Equal(t, 2, limiter.Remaining())
}

func TestWindowLimiter_DefaultClock(t *testing.T) {
	limiter := NewWindowLimiter(1, time.Hour, nil)
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())
}
