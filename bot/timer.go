package bot

import "time"

// countdown is a deadline against the simulation clock.
// The zero value has not started and is never elapsed.
type countdown struct {
	deadline time.Duration
	duration time.Duration
	started  bool
}

func (c *countdown) Start(now, d time.Duration) {
	c.deadline = now + d
	c.duration = d
	c.started = true
}

func (c *countdown) Invalidate() {
	*c = countdown{}
}

func (c *countdown) HasStarted() bool {
	return c.started
}

func (c *countdown) IsElapsed(now time.Duration) bool {
	return c.started && now > c.deadline
}

func (c *countdown) Remaining(now time.Duration) time.Duration {
	if !c.started || now > c.deadline {
		return 0
	}
	return c.deadline - now
}
