// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// lis2dh12 reads a LIS2DH12 accelerometer and optionally dims the badge
// indicator with the soft-PWM.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/GermanBionicSystems/badgedevices/lis2dh12"
	"github.com/GermanBionicSystems/badgedevices/screen1d"
	"github.com/GermanBionicSystems/badgedevices/softpwm"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func parseSettings(axes, res, rate, rng, unit string, backlight int) (lis2dh12.Settings, error) {
	var s lis2dh12.Settings
	var err error
	if s.Axes, err = lis2dh12.ParseAxes(axes); err != nil {
		return s, err
	}
	if s.Resolution, err = lis2dh12.ParseResolution(res); err != nil {
		return s, err
	}
	if s.Rate, err = lis2dh12.ParseRate(rate); err != nil {
		return s, err
	}
	if s.Range, err = lis2dh12.ParseRange(rng); err != nil {
		return s, err
	}
	if s.Unit, err = lis2dh12.ParseUnit(unit); err != nil {
		return s, err
	}
	s.Backlight = backlight
	return s, nil
}

// screenTick is the duty unit of the indicator drawn with -term.
const screenTick = 50 * time.Millisecond

// fullScale returns the magnitude of a full bar.
func fullScale(s lis2dh12.Settings) float64 {
	g := s.Range.G()
	if s.Unit == lis2dh12.UnitSI {
		return float64(g) * lis2dh12.StandardGravity
	}
	return float64(g)
}

// pollInterval returns the interval between reads. 0 means one output data
// period. The second value is a warning to show the user, if any.
func pollInterval(r lis2dh12.Rate, interval time.Duration) (time.Duration, string) {
	f := r.Frequency()
	if f == 0 {
		if interval <= 0 {
			interval = 100 * time.Millisecond
		}
		return interval, fmt.Sprintf("rate is %s, the samples will not change", r)
	}
	period := f.Period()
	if interval <= 0 {
		return period, ""
	}
	if interval < period {
		return interval, fmt.Sprintf("polling every %s is faster than the output data rate %s (%s)", interval, f, period)
	}
	return interval, ""
}

func mainImpl() error {
	busName := flag.String("b", "", "I²C bus to use")
	addr := flag.Uint("a", uint(lis2dh12.DefaultAddress), "I²C address")
	axes := flag.String("axes", "xyz", "enabled axes")
	res := flag.String("res", "10", "resolution in bits: 8, 10 or 12")
	rate := flag.String("rate", "10Hz", "output data rate")
	rng := flag.String("range", "2g", "full scale: 2g, 4g, 8g or 16g")
	unit := flag.String("unit", "G", "output unit: G or SI")
	backlight := flag.Int("backlight", 0, "indicator duty level, 0 to 10")
	interval := flag.Duration("i", 0, "interval between reads, defaults to the output data period")
	tick := flag.Duration("tick", time.Millisecond, "duration of one backlight duty unit")
	n := flag.Int("n", 10, "number of samples, 0 for ever")
	term := flag.Bool("term", false, "draw samples as bars")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}

	s, err := parseSettings(*axes, *res, *rate, *rng, *unit, *backlight)
	if err != nil {
		return err
	}
	every, warning := pollInterval(s.Rate, *interval)
	if warning != "" {
		log.Printf("warning: %s", warning)
	}
	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(*busName)
	if err != nil {
		return err
	}
	defer bus.Close()

	// NewI2C writes the control block; the backlight is started on its own.
	d, err := lis2dh12.NewI2C(bus, uint16(*addr), &lis2dh12.Opts{ExpectedDeviceID: lis2dh12.WhoAmI, Settings: s})
	if err != nil {
		return err
	}
	if *verbose {
		d.EnableDebug(log.Printf)
	}
	pwmOpts := &softpwm.Opts{Tick: *tick, Debug: log.Printf}
	bl := d.AttachBacklight(softpwm.TimeScheduler{}, pwmOpts)
	defer func() {
		if err := d.Halt(); err != nil {
			log.Printf("failed to halt %s: %v", d, err)
		}
	}()
	if err := bl.SetDuty(s.Backlight); err != nil {
		return err
	}
	log.Println(d)

	var screen *screen1d.Dev
	if *term {
		screen = screen1d.New(&screen1d.Opts{X: 20})
		// Mirror the indicator on the terminal, slowed down so the eye can
		// follow it.
		mirror := softpwm.New(screen, softpwm.TimeScheduler{}, &softpwm.Opts{Tick: screenTick, Debug: log.Printf})
		defer func() {
			if err := mirror.Halt(); err != nil {
				log.Printf("failed to halt %s: %v", mirror, err)
			}
			if err := screen.Halt(); err != nil {
				log.Printf("failed to halt %s: %v", screen, err)
			}
		}()
		if err := mirror.SetDuty(s.Backlight); err != nil {
			return err
		}
	}

	t := time.NewTicker(every)
	defer t.Stop()
	for i := 0; *n == 0 || i < *n; i++ {
		a, err := d.Read()
		if err != nil {
			return err
		}
		if screen != nil {
			if err := screen.Show(a, fullScale(s)); err != nil {
				return err
			}
		} else {
			fmt.Printf("%5.2f - %5.2f - %5.2f\n", a.X, a.Y, a.Z)
		}
		<-t.C
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "lis2dh12: %s.\n", err)
		os.Exit(1)
	}
}
