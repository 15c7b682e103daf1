package policy

import (
	"sync"
)

// Clock reports the current logical tick.
type Clock interface {
	Now() int64
}

// LogicalClock is a Clock advanced explicitly by its owner.
type LogicalClock struct {
	mtx sync.Mutex
	now int64
}

// NewLogicalClock returns a clock reading the given tick.
func NewLogicalClock(now int64) *LogicalClock {
	return &LogicalClock{now: now}
}

// Now returns the current tick.
func (c *LogicalClock) Now() int64 {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.now
}

// Advance moves the clock forward by the given number of ticks and returns the new tick.
func (c *LogicalClock) Advance(ticks int64) int64 {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.now += ticks
	return c.now
}
