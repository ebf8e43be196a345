// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package softpwm

import (
	"errors"
	"testing"
	"time"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeScheduler records timers; tests fire them by hand.
type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) armed() []*fakeTimer {
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fireNext runs the single armed timer.
func (s *fakeScheduler) fireNext(t *testing.T) time.Duration {
	t.Helper()
	a := s.armed()
	if len(a) != 1 {
		t.Fatalf("expected exactly one armed timer, got %d", len(a))
	}
	a[0].fired = true
	a[0].f()
	return a[0].d
}

type fakeOutput struct {
	levels []bool
	err    error
}

func (o *fakeOutput) Out(on bool) error {
	if o.err != nil {
		return o.err
	}
	o.levels = append(o.levels, on)
	return nil
}

func (o *fakeOutput) last() bool {
	return o.levels[len(o.levels)-1]
}

func TestTransitions(t *testing.T) {
	for duty := 1; duty < Max; duty++ {
		next, ticks, on := onPhaseFired(duty)
		if next != OffPhase || ticks != duty || on {
			t.Errorf("onPhaseFired(%d) = %s, %d, %t", duty, next, ticks, on)
		}
		next, ticks, on = offPhaseFired(duty)
		if next != OnPhase || ticks != Max-duty || !on {
			t.Errorf("offPhaseFired(%d) = %s, %d, %t", duty, next, ticks, on)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		level int
		duty  int
		stop  bool
	}{
		{-5, 0, true},
		{0, 0, true},
		{1, 1, false},
		{9, 9, false},
		{Max, Max, true},
		{42, Max, true},
	}
	for _, test := range tests {
		duty, stop := clamp(test.level)
		if duty != test.duty || stop != test.stop {
			t.Errorf("clamp(%d) = %d, %t; expected %d, %t", test.level, duty, stop, test.duty, test.stop)
		}
	}
}

func TestCycle(t *testing.T) {
	s := &fakeScheduler{}
	o := &fakeOutput{}
	c := New(o, s, &Opts{Tick: 2 * time.Millisecond})
	if c.Phase() != Off {
		t.Fatalf("new controller should be Off, got %s", c.Phase())
	}
	if err := c.SetDuty(3); err != nil {
		t.Fatal(err)
	}
	if c.Phase() != OffPhase || o.last() {
		t.Fatalf("start should force the output low in OffPhase, got %s %v", c.Phase(), o.levels)
	}
	if d := s.armed()[0].d; d != 6*time.Millisecond {
		t.Errorf("first period %s, expected 6ms", d)
	}

	s.fireNext(t)
	if c.Phase() != OnPhase || !o.last() {
		t.Fatalf("expected OnPhase with output high, got %s %v", c.Phase(), o.levels)
	}
	if d := s.armed()[0].d; d != 14*time.Millisecond {
		t.Errorf("on period %s, expected 14ms", d)
	}

	s.fireNext(t)
	if c.Phase() != OffPhase || o.last() {
		t.Fatalf("expected OffPhase with output low, got %s %v", c.Phase(), o.levels)
	}
	expected := []bool{false, true, false}
	if len(o.levels) != len(expected) {
		t.Fatalf("levels %v, expected %v", o.levels, expected)
	}
	for i := range expected {
		if o.levels[i] != expected[i] {
			t.Fatalf("levels %v, expected %v", o.levels, expected)
		}
	}
}

func TestDutyZeroStops(t *testing.T) {
	s := &fakeScheduler{}
	o := &fakeOutput{}
	c := New(o, s, nil)
	if err := c.SetDuty(5); err != nil {
		t.Fatal(err)
	}
	s.fireNext(t)
	for i := 0; i < 2; i++ {
		if err := c.SetDuty(0); err != nil {
			t.Fatal(err)
		}
		if n := len(s.armed()); n != 0 {
			t.Fatalf("expected no armed timer, got %d", n)
		}
		if c.Phase() != Off || o.last() {
			t.Fatalf("expected Off with output low, got %s %v", c.Phase(), o.levels)
		}
	}
	if c.Duty() != 0 {
		t.Errorf("duty %d, expected 0", c.Duty())
	}
}

func TestNegativeDutyClamps(t *testing.T) {
	s := &fakeScheduler{}
	o := &fakeOutput{}
	c := New(o, s, nil)
	if err := c.SetDuty(-3); err != nil {
		t.Fatal(err)
	}
	if c.Duty() != 0 || c.Phase() != Off || len(s.timers) != 0 {
		t.Fatalf("unexpected state %s with %d timers", c, len(s.timers))
	}
}

// Reaching Max stops the timer instead of toggling and holds the output high.
// Possibly unintended: a level above Max silently disables the PWM rather
// than being rejected.
func TestDutyMaxStops(t *testing.T) {
	for _, level := range []int{Max, Max + 7} {
		s := &fakeScheduler{}
		o := &fakeOutput{}
		c := New(o, s, nil)
		if err := c.SetDuty(4); err != nil {
			t.Fatal(err)
		}
		if err := c.SetDuty(level); err != nil {
			t.Fatal(err)
		}
		if n := len(s.armed()); n != 0 {
			t.Fatalf("SetDuty(%d): expected no armed timer, got %d", level, n)
		}
		if c.Duty() != Max || c.Phase() != Off || !o.last() {
			t.Fatalf("SetDuty(%d): unexpected state %s, levels %v", level, c, o.levels)
		}
	}
}

func TestSetDutyTwiceArmsOnce(t *testing.T) {
	s := &fakeScheduler{}
	o := &fakeOutput{}
	c := New(o, s, nil)
	if err := c.SetDuty(5); err != nil {
		t.Fatal(err)
	}
	first := s.armed()[0]
	if err := c.SetDuty(5); err != nil {
		t.Fatal(err)
	}
	if n := len(s.armed()); n != 1 {
		t.Fatalf("expected one armed timer, got %d", n)
	}
	if !first.stopped {
		t.Fatal("first chain was not cancelled")
	}
}

func TestStaleCallbackIgnored(t *testing.T) {
	s := &fakeScheduler{}
	o := &fakeOutput{}
	c := New(o, s, nil)
	if err := c.SetDuty(2); err != nil {
		t.Fatal(err)
	}
	stale := s.armed()[0]
	if err := c.SetDuty(7); err != nil {
		t.Fatal(err)
	}
	n := len(o.levels)
	// Simulate a callback that was already running when the chain was
	// cancelled.
	stale.f()
	if len(o.levels) != n || c.Phase() != OffPhase {
		t.Fatalf("stale callback changed state: %s %v", c, o.levels)
	}
	if len(s.armed()) != 1 {
		t.Fatalf("expected one armed timer, got %d", len(s.armed()))
	}
	if d := s.fireNext(t); d != 7*time.Millisecond {
		t.Errorf("period %s, expected 7ms", d)
	}
}

func TestOutputErrorInCallback(t *testing.T) {
	s := &fakeScheduler{}
	o := &fakeOutput{}
	var logged []string
	c := New(o, s, &Opts{Debug: func(f string, a ...interface{}) { logged = append(logged, f) }})
	if err := c.SetDuty(5); err != nil {
		t.Fatal(err)
	}
	o.err = errors.New("bus is gone")
	s.fireNext(t)
	if c.Phase() != Off || len(s.armed()) != 0 {
		t.Fatalf("expected the chain to stop, got %s", c)
	}
	if len(logged) != 1 {
		t.Errorf("expected one debug message, got %d", len(logged))
	}
}

func TestSetDutyOutputError(t *testing.T) {
	s := &fakeScheduler{}
	o := &fakeOutput{err: errors.New("nack")}
	c := New(o, s, nil)
	if err := c.SetDuty(5); err == nil {
		t.Fatal("expected an error")
	}
	if len(s.timers) != 0 || c.Phase() != Off {
		t.Fatalf("nothing should be armed, got %s", c)
	}
}

func TestHalt(t *testing.T) {
	s := &fakeScheduler{}
	o := &fakeOutput{}
	c := New(o, s, nil)
	if err := c.SetDuty(8); err != nil {
		t.Fatal(err)
	}
	if err := c.Halt(); err != nil {
		t.Fatal(err)
	}
	if c.Phase() != Off || o.last() || len(s.armed()) != 0 {
		t.Fatalf("unexpected state after Halt: %s", c)
	}
	if len(c.String()) == 0 {
		t.Error("empty string")
	}
}

func TestTimeScheduler(t *testing.T) {
	done := make(chan struct{})
	TimeScheduler{}.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not run")
	}
	var s Scheduler = TimeScheduler{}
	if !s.AfterFunc(time.Hour, func() {}).Stop() {
		t.Error("Stop on a pending timer should return true")
	}
}
