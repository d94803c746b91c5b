package app

// Clock measures frame times from a monotonic seconds source such as
// glfw.GetTime.
type Clock struct {
	now  func() float64
	last float64

	frames      int
	windowStart float64
	fps         float64
}

// NewClock starts a clock at now().
func NewClock(now func() float64) *Clock {
	t := now()
	return &Clock{now: now, last: t, windowStart: t}
}

// Tick returns the seconds since the previous Tick (or since the clock was
// created) and counts one frame.
func (c *Clock) Tick() float32 {
	t := c.now()
	dt := t - c.last
	if dt < 0 {
		dt = 0
	}
	c.last = t

	c.frames++
	if elapsed := t - c.windowStart; elapsed >= 1 {
		c.fps = float64(c.frames) / elapsed
		c.frames = 0
		c.windowStart = t
	}
	return float32(dt)
}

// FPS returns the frame rate over the last completed one-second window, or
// 0 before the first window completes.
func (c *Clock) FPS() float64 { return c.fps }
