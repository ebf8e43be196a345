// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package softpwm

import (
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
)

// Max is the highest duty level. A cycle lasts Max ticks.
const Max = 10

// Output is the line being modulated.
type Output interface {
	Out(on bool) error
}

// DebugF the debug function type.
type DebugF func(string, ...interface{})

// Phase is the state of the controller.
type Phase int

const (
	// Off means no timer is armed. The output is held at the level matching
	// the duty bound that was reached.
	Off Phase = iota
	// OnPhase means the output is high and the timer will turn it low.
	OnPhase
	// OffPhase means the output is low and the timer will turn it high.
	OffPhase
)

func (p Phase) String() string {
	switch p {
	case Off:
		return "Off"
	case OnPhase:
		return "OnPhase"
	case OffPhase:
		return "OffPhase"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Opts holds the configuration options for a Controller.
type Opts struct {
	// Tick is the duration of one duty unit. Default is 1ms.
	Tick time.Duration
	// Debug receives errors that happen inside timer callbacks. Default is a
	// no-op.
	Debug DebugF
}

// DefaultOpts holds the default configuration options.
var DefaultOpts = Opts{Tick: time.Millisecond}

// Controller drives an Output with a software generated duty cycle.
type Controller struct {
	mu    sync.Mutex
	out   Output
	s     Scheduler
	tick  time.Duration
	debug DebugF

	duty  int
	stop  bool
	phase Phase
	timer Timer
	// gen is bumped every time the running chain is cancelled. Callbacks
	// carrying an older value are ignored.
	gen uint64
}

// New returns a stopped Controller. Call SetDuty to start it. The Opts can be
// nil.
func New(out Output, s Scheduler, opts *Opts) *Controller {
	if opts == nil {
		opts = &DefaultOpts
	}
	c := &Controller{out: out, s: s, tick: opts.Tick, debug: opts.Debug, stop: true}
	if c.tick <= 0 {
		c.tick = DefaultOpts.Tick
	}
	if c.debug == nil {
		c.debug = noop
	}
	return c
}

// SetDuty changes the duty level. Any running chain is cancelled first.
//
// level is clamped to [0, Max]. Reaching either bound stops the timer: at 0
// the output is held low, at Max it is held high. In between, the output is
// forced low and the timer is armed to start the ON phase.
func (c *Controller) SetDuty(level int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel()
	c.duty, c.stop = clamp(level)
	if c.stop {
		c.phase = Off
		return c.out.Out(c.duty == Max)
	}
	if err := c.out.Out(false); err != nil {
		c.phase = Off
		return err
	}
	c.phase = OffPhase
	c.arm(c.duty)
	return nil
}

// Duty returns the clamped duty level.
func (c *Controller) Duty() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duty
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Halt stops the timer and turns the output off. Implements conn.Resource.
func (c *Controller) Halt() error {
	return c.SetDuty(0)
}

func (c *Controller) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("softpwm{duty:%d/%d, phase:%s}", c.duty, Max, c.phase)
}

// clamp bounds level to [0, Max] and reports whether a bound was reached.
func clamp(level int) (int, bool) {
	if level <= 0 {
		return 0, true
	}
	if level >= Max {
		return Max, true
	}
	return level, false
}

// onPhaseFired returns the next phase, its length in ticks and the output
// level when the timer fires during the ON phase.
func onPhaseFired(duty int) (Phase, int, bool) {
	return OffPhase, duty, false
}

// offPhaseFired is the counterpart of onPhaseFired for the OFF phase.
func offPhaseFired(duty int) (Phase, int, bool) {
	return OnPhase, Max - duty, true
}

// cancel stops the armed timer. c.mu must be held.
func (c *Controller) cancel() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// arm schedules the next transition. c.mu must be held.
func (c *Controller) arm(ticks int) {
	gen := c.gen
	c.timer = c.s.AfterFunc(time.Duration(ticks)*c.tick, func() { c.fire(gen) })
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.stop {
		return
	}
	c.timer = nil
	var (
		next  Phase
		ticks int
		on    bool
	)
	switch c.phase {
	case OnPhase:
		next, ticks, on = onPhaseFired(c.duty)
	case OffPhase:
		next, ticks, on = offPhaseFired(c.duty)
	default:
		return
	}
	if err := c.out.Out(on); err != nil {
		c.debug("softpwm: stopping after output error: %v", err)
		c.gen++
		c.phase = Off
		return
	}
	c.phase = next
	c.arm(ticks)
}

func noop(string, ...interface{}) {}

var _ conn.Resource = &Controller{}
