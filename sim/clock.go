package sim

import (
	"sync"
	"time"
)

// ManualClock is a millisecond timebase advanced explicitly by tests, so
// delays of minutes run instantly and deterministically.
type ManualClock struct {
	mu  sync.Mutex
	now uint32
}

// NewManualClock starts at zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Now returns the current tick count.
func (c *ManualClock) Now() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves time forward by ms milliseconds.
func (c *ManualClock) Advance(ms uint32) {
	c.mu.Lock()
	c.now += ms
	c.mu.Unlock()
}

// WallClock is the real-time millisecond timebase used by the desktop
// simulator.
type WallClock struct {
	start time.Time
}

// NewWallClock starts counting from now.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now returns milliseconds since the clock was created, wrapping at 32 bits
// like the hardware counter.
func (c *WallClock) Now() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}
