package mock

import (
	"sync"
	"time"
)

// Time is a settable clock. Once set, it keeps ticking from the pinned instant.
type Time struct {
	mu      sync.RWMutex
	pinned  time.Time
	setAt   time.Time
	stopped bool
}

func NewTime() *Time {
	now := time.Now()
	return &Time{pinned: now, setAt: now}
}

// SetCurrentTime pins the clock to currentTime.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pinned = currentTime
	t.setAt = time.Now()
	t.stopped = false
}

// Freeze pins the clock to currentTime and stops it from advancing.
func (t *Time) Freeze(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pinned = currentTime
	t.stopped = true
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.stopped {
		return t.pinned
	}
	return t.pinned.Add(time.Since(t.setAt))
}
