//go:build stm32l0

package main

import "time"

// tickClock is the scheduler's millisecond timebase, free-running and
// wrapping at 32 bits.
type tickClock struct {
	start time.Time
}

func newTickClock() *tickClock {
	return &tickClock{start: time.Now()}
}

func (c *tickClock) Now() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}
