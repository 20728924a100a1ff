package anim

import (
	"sort"
	"time"
)

// Clock supplies the wall time animations are measured against.
type Clock interface {
	Now() time.Time
}

// Scheduler runs fn once after delay, on the goroutine that owns the
// animated state.
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a virtual clock and scheduler. Time only moves when
// Advance is called, and due callbacks run synchronously inside Advance.
type ManualClock struct {
	now     time.Time
	seq     int
	pending []pendingCall
}

type pendingCall struct {
	at  time.Time
	seq int
	fn  func()
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time { return c.now }

func (c *ManualClock) Schedule(delay time.Duration, fn func()) {
	c.seq++
	c.pending = append(c.pending, pendingCall{at: c.now.Add(delay), seq: c.seq, fn: fn})
}

// Pending returns the number of callbacks waiting to fire.
func (c *ManualClock) Pending() int { return len(c.pending) }

// Advance moves time forward by d, firing every callback that falls due on
// the way in deadline order. Callbacks scheduled while advancing fire too
// if they are due before the end of the window.
func (c *ManualClock) Advance(d time.Duration) {
	end := c.now.Add(d)
	for {
		next := c.nextDue(end)
		if next < 0 {
			break
		}
		call := c.pending[next]
		c.pending = append(c.pending[:next], c.pending[next+1:]...)
		if call.at.After(c.now) {
			c.now = call.at
		}
		call.fn()
	}
	c.now = end
}

// Jump moves time forward without firing anything, simulating a host too
// busy to deliver ticks.
func (c *ManualClock) Jump(d time.Duration) { c.now = c.now.Add(d) }

func (c *ManualClock) nextDue(end time.Time) int {
	if len(c.pending) == 0 {
		return -1
	}
	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].at.Equal(c.pending[j].at) {
			return c.pending[i].seq < c.pending[j].seq
		}
		return c.pending[i].at.Before(c.pending[j].at)
	})
	if c.pending[0].at.After(end) {
		return -1
	}
	return 0
}

// Blocking is a Scheduler for hosts without an event loop: it sleeps for
// the delay and runs the callback on the calling goroutine, so a rotation
// completes before the call that started it returns. It is the fallback of
// radar.New when no scheduler is given and suits one-shot tools only.
type Blocking struct {
	queue   []func()
	running bool
}

func (b *Blocking) Schedule(delay time.Duration, fn func()) {
	b.queue = append(b.queue, func() {
		time.Sleep(delay)
		fn()
	})
	if b.running {
		return
	}
	b.running = true
	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]
		next()
	}
	b.running = false
}
