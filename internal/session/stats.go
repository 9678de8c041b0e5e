package session

import "time"

type Stats struct {
	Frames  int64
	Skipped int64
	FPS     float64
}

// fpsCounter averages the frame rate over one-second windows.
type fpsCounter struct {
	windowStart time.Time
	count       int
	fps         float64
}

func (c *fpsCounter) frame(now time.Time) {
	if c.windowStart.IsZero() {
		c.windowStart = now
	}
	c.count++
	if elapsed := now.Sub(c.windowStart); elapsed >= time.Second {
		c.fps = float64(c.count) / elapsed.Seconds()
		c.count = 0
		c.windowStart = now
	}
}

func (c *fpsCounter) reset() {
	*c = fpsCounter{}
}
