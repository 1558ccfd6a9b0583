package analyzer

import (
	"sync"
	"time"
)

// WindowLimiter admits at most limit calls per window. The counter resets
// when a call arrives after the window has elapsed. It never blocks.
type WindowLimiter struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	now         func() time.Time
	count       int
	windowStart time.Time
}

// NewWindowLimiter creates a limiter; now defaults to time.Now.
func NewWindowLimiter(limit int, window time.Duration, now func() time.Time) *WindowLimiter {
	if now == nil {
		now = time.Now
	}
	return &WindowLimiter{
		limit:       limit,
		window:      window,
		now:         now,
		windowStart: now(),
	}
}

// Allow consumes one slot if any is left.
func (l *WindowLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollover()
	if l.count >= l.limit {
		return false
	}
	l.count++
	return true
}

// Remaining reports the slots left in the current window.
func (l *WindowLimiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollover()
	return l.limit - l.count
}

func (l *WindowLimiter) rollover() {
	now := l.now()
	if now.Sub(l.windowStart) > l.window {
		l.count = 0
		l.windowStart = now
	}
}
