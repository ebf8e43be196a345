// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen1d renders accelerometer samples and the badge indicator on
// the terminal (stdout) using ANSI color codes.
//
// Useful to check the wiring and the soft-PWM without looking at the badge.
package screen1d

import (
	"bytes"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/GermanBionicSystems/badgedevices/lis2dh12"
	"github.com/GermanBionicSystems/badgedevices/softpwm"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
)

// Opts represents the options available for this display.
type Opts struct {
	// X is the width of each axis bar in cells.
	X       int
	Palette *ansi256.Palette
	// W defaults to a colorable stdout.
	W io.Writer

	_ struct{}
}

var (
	axisColors = [3]color.NRGBA{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}}
	dark       = color.NRGBA{0, 0, 0, 255}
	lit        = color.NRGBA{255, 255, 160, 255}
)

// Dev draws one bar per axis followed by a single indicator cell.
//
// Show and Out may be called from different goroutines.
type Dev struct {
	w       io.Writer
	l       int
	palette ansi256.Palette

	mu    sync.Mutex
	cells [3][]color.NRGBA
	on    bool
	buf   bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	l := opts.X
	if l <= 0 {
		l = 16
	}
	d := &Dev{w: w, l: l, palette: *p}
	for i := range d.cells {
		d.cells[i] = make([]color.NRGBA, l)
		for j := range d.cells[i] {
			d.cells[i][j] = dark
		}
	}
	return d
}

func (d *Dev) String() string {
	return "Screen1D"
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so it is not corrupted.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Show draws a as three bars. fullScale is the magnitude drawn as a full bar,
// in the unit of a.
func (d *Dev) Show(a lis2dh12.Acceleration, fullScale float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, v := range [3]float64{a.X, a.Y, a.Z} {
		n := 0
		if fullScale > 0 {
			n = int(math.Round(math.Min(math.Abs(v)/fullScale, 1) * float64(d.l)))
		}
		for j := range d.cells[i] {
			if j < n {
				d.cells[i][j] = axisColors[i]
			} else {
				d.cells[i][j] = dark
			}
		}
	}
	return d.refresh()
}

// Out sets the indicator cell. Implements softpwm.Output so the soft-PWM can
// be watched without hardware.
func (d *Dev) Out(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.on = on
	return d.refresh()
}

// refresh redraws the line. d.mu must be held.
func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i := range d.cells {
		for _, c := range d.cells[i] {
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m ")
	}
	ind := dark
	if d.on {
		ind = lit
	}
	_, _ = io.WriteString(&d.buf, d.palette.Block(ind))
	_, _ = d.buf.WriteString("\033[0m ")
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ conn.Resource = &Dev{}
var _ softpwm.Output = &Dev{}
