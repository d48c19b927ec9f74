package server

import (
	"sync/atomic"
	"time"
)

// rateLimiter admits at most one event per interval across all callers.
type rateLimiter struct {
	interval time.Duration
	last     atomic.Int64
	now      func() time.Time
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval, now: time.Now}
}

func (l *rateLimiter) Allow() bool {
	if l.interval <= 0 {
		return true
	}

	current := l.now().UnixNano()
	last := l.last.Load()
	if last != 0 && current-last < int64(l.interval) {
		return false
	}

	return l.last.CompareAndSwap(last, current)
}
