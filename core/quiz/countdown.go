package quiz

import (
	"sync"
	"time"
)

var afterFunc = time.AfterFunc // mockable

// Countdown is a cancellable tick source: it schedules one tick after
// each interval and re-schedules only while the tick func reports the
// countdown is still live. Nothing runs ambiently; every state transition
// either re-schedules or cancels explicitly.
type Countdown struct {
	mu       sync.Mutex
	interval time.Duration
	tick     func() bool
	timer    *time.Timer
	stopped  bool
}

// NewCountdown wires a tick func (typically Session.Tick) to a software
// tick source. Call Start to arm it.
func NewCountdown(interval time.Duration, tick func() bool) *Countdown {
	return &Countdown{
		interval: interval,
		tick:     tick,
	}
}

// Start schedules the first tick. Starting an already-started or stopped
// countdown is a no-op.
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || c.timer != nil {
		return
	}
	c.schedule()
}

// must hold c.mu
func (c *Countdown) schedule() {
	c.timer = afterFunc(c.interval, c.fire)
}

func (c *Countdown) fire() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.mu.Unlock()

	live := c.tick()

	c.mu.Lock()
	defer c.mu.Unlock()
	if live && !c.stopped {
		c.schedule()
	} else {
		c.stopped = true
	}
}

// Stop cancels the pending tick. It is idempotent and safe to call on
// every exit path (answer submitted, explanation shown, teardown) and
// after the countdown already expired on its own.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Stopped reports whether the countdown will fire no further ticks.
func (c *Countdown) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}
