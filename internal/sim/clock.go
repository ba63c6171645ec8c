package sim

import "time"

// WallClock measures elapsed real time from construction or the last
// Restart. Time spent paused is not counted.
type WallClock struct {
	start    time.Time
	pausedAt time.Time
	paused   bool
	now      func() time.Time
}

func NewWallClock() *WallClock {
	return newWallClock(time.Now)
}

func newWallClock(now func() time.Time) *WallClock {
	return &WallClock{start: now(), now: now}
}

func (c *WallClock) ElapsedSeconds() float64 {
	if c.paused {
		return c.pausedAt.Sub(c.start).Seconds()
	}
	return c.now().Sub(c.start).Seconds()
}

func (c *WallClock) Pause() {
	if !c.paused {
		c.paused = true
		c.pausedAt = c.now()
	}
}

func (c *WallClock) Resume() {
	if c.paused {
		c.start = c.start.Add(c.now().Sub(c.pausedAt))
		c.paused = false
	}
}

func (c *WallClock) Paused() bool { return c.paused }

// Restart rewinds elapsed time to zero. A paused clock stays paused.
func (c *WallClock) Restart() {
	c.start = c.now()
	c.pausedAt = c.start
}

// ManualClock is driven explicitly, for headless recording and tests.
type ManualClock struct {
	t float64
}

func (c *ManualClock) ElapsedSeconds() float64 { return c.t }
func (c *ManualClock) Set(t float64)            { c.t = t }
func (c *ManualClock) Advance(dt float64)       { c.t += dt }
