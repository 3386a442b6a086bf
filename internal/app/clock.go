package app

import "time"

// Clock runs simulation updates at a steady ticks-per-second rate regardless
// of the frame rate.
type Clock struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxBurst    int
	now         func() time.Time
}

// NewClock constructs a Clock targeting the given TPS. The first call to Due
// always reports one tick.
func NewClock(tps int) *Clock {
	c := &Clock{maxBurst: 4, now: time.Now}
	c.SetTPS(tps)
	c.accumulator = c.step
	return c
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (c *Clock) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	c.step = time.Second / time.Duration(tps)
}

// TPS returns the current tick rate.
func (c *Clock) TPS() int {
	return int(time.Second / c.step)
}

// SetMaxBurst caps how many ticks a single Due call may report.
func (c *Clock) SetMaxBurst(n int) {
	if n < 1 {
		n = 1
	}
	c.maxBurst = n
}

// Due reports how many ticks have elapsed since the previous call. A backlog
// larger than the burst cap is dropped rather than replayed.
func (c *Clock) Due() int {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
	}
	c.accumulator += now.Sub(c.last)
	c.last = now
	n := int(c.accumulator / c.step)
	if n > c.maxBurst {
		c.accumulator = 0
		return c.maxBurst
	}
	c.accumulator -= time.Duration(n) * c.step
	return n
}

// Reset forgets elapsed time, e.g. after unpausing.
func (c *Clock) Reset() {
	c.accumulator = 0
	c.last = time.Time{}
}
