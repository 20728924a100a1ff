package anim

import (
	"math"
	"time"
)

const (
	DefaultDuration      = 400 * time.Millisecond
	DefaultFrameInterval = 33 * time.Millisecond

	// WrapThreshold is the fixed angle, in radians, above which a rotation
	// that starts or ends at zero is taken the other way round the circle.
	// It does not depend on the spoke count.
	WrapThreshold = 3.0
)

// State of the rotation state machine.
type State int

const (
	Idle State = iota
	Animating
)

func (s State) String() string {
	if s == Animating {
		return "animating"
	}
	return "idle"
}

// Animator owns the chart's angular offset and interpolates it linearly
// towards a target over a fixed duration.
type Animator struct {
	clock    Clock
	sched    Scheduler
	duration time.Duration
	frame    time.Duration

	onFrame  func(offset float64)
	onSettle func(offset float64)

	state      State
	offset     float64
	from, to   float64
	started    time.Time
	generation int
}

// Option configures an Animator.
type Option func(*Animator)

func WithDuration(d time.Duration) Option {
	return func(a *Animator) {
		if d > 0 {
			a.duration = d
		}
	}
}

func WithFrameInterval(d time.Duration) Option {
	return func(a *Animator) {
		if d > 0 {
			a.frame = d
		}
	}
}

// OnFrame registers a callback run after every tick, animating or not.
func OnFrame(fn func(offset float64)) Option {
	return func(a *Animator) { a.onFrame = fn }
}

// OnSettle registers a callback run when an animation reaches its target.
func OnSettle(fn func(offset float64)) Option {
	return func(a *Animator) { a.onSettle = fn }
}

func New(clock Clock, sched Scheduler, opts ...Option) *Animator {
	a := &Animator{
		clock:    clock,
		sched:    sched,
		duration: DefaultDuration,
		frame:    DefaultFrameInterval,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Animator) State() State            { return a.state }
func (a *Animator) Animating() bool         { return a.state == Animating }
func (a *Animator) Offset() float64         { return a.offset }
func (a *Animator) Target() float64         { return a.to }
func (a *Animator) Duration() time.Duration { return a.duration }

// SetOffset places the chart at v immediately. It is ignored mid-flight.
func (a *Animator) SetOffset(v float64) {
	if a.state == Animating {
		return
	}
	a.offset = v
}

// Stop abandons any rotation in flight and places the chart at v. The
// abandoned rotation's pending tick is discarded.
func (a *Animator) Stop(v float64) {
	if a.state == Animating {
		a.generation++
		a.state = Idle
	}
	a.offset = v
	a.from, a.to = v, v
}

// TargetFor returns the offset that brings spoke index of n to the top.
func TargetFor(index, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(index) * 2 * math.Pi / float64(n)
}

// TurnTo starts rotating towards spoke index of n. It reports false and
// does nothing while another rotation is in flight.
func (a *Animator) TurnTo(index, n int) bool {
	return a.AnimateTo(TargetFor(index, n))
}

// AnimateTo starts rotating towards target. Only one rotation may be in
// flight; further requests are dropped.
func (a *Animator) AnimateTo(target float64) bool {
	if a.state == Animating {
		return false
	}
	a.start(target)
	return true
}

// Redirect starts a rotation towards target from the current offset even if
// one is in flight; the superseded rotation's pending tick is discarded.
func (a *Animator) Redirect(target float64) {
	a.start(target)
}

func (a *Animator) start(target float64) {
	a.from = wrapStart(a.offset, target)
	a.to = target
	a.started = a.clock.Now()
	a.state = Animating
	a.generation++
	a.schedule()
}

// wrapStart adjusts the starting offset so rotations that cross zero do not
// sweep the long way round.
func wrapStart(current, target float64) float64 {
	switch {
	case current == 0 && target > WrapThreshold:
		return 2 * math.Pi
	case target == 0 && current > WrapThreshold:
		return current - 2*math.Pi
	}
	return current
}

func (a *Animator) schedule() {
	gen := a.generation
	a.sched.Schedule(a.frame, func() {
		if gen != a.generation {
			return
		}
		a.tick()
	})
}

// Progress returns how far the current rotation is through its duration.
func (a *Animator) Progress() float64 {
	if a.state != Animating {
		return 1
	}
	return float64(a.clock.Now().Sub(a.started)) / float64(a.duration)
}

func (a *Animator) tick() {
	settled := false
	if progress := a.Progress(); progress >= 1 {
		a.offset = a.to
		a.state = Idle
		settled = true
	} else {
		a.offset = a.from + (a.to-a.from)*progress
		a.schedule()
	}
	if a.onFrame != nil {
		a.onFrame(a.offset)
	}
	if settled && a.onSettle != nil {
		a.onSettle(a.offset)
	}
}
