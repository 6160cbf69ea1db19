// Package clock supplies the current instant as whole seconds since the Unix epoch.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current time in seconds since the Unix epoch.
type Clock interface {
	Now() int64
}

// System reads the wall clock.
type System struct{}

// Now implements Clock.
func (System) Now() int64 {
	return time.Now().Unix()
}

// Manual is a settable clock for tests.
type Manual struct {
	mu  sync.Mutex
	now int64
}

// NewManual returns a Manual clock positioned at now.
func NewManual(now int64) *Manual {
	return &Manual{now: now}
}

// Now implements Clock.
func (m *Manual) Now() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to now.
func (m *Manual) Set(now int64) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// Advance moves the clock forward by d, truncated to whole seconds.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += int64(d / time.Second)
	m.mu.Unlock()
}
