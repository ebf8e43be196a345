// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis2dh12

import (
	"fmt"
	"sync"

	"github.com/GermanBionicSystems/badgedevices/softpwm"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// DebugF the debug function type.
type DebugF func(string, ...interface{})

// Settings is the semantic content of the control registers.
type Settings struct {
	Axes       Axes
	Resolution Resolution
	Rate       Rate
	Range      Range
	Unit       Unit
	// Backlight is the soft-PWM duty level in [0, softpwm.Max]. It is only
	// used when a controller was attached with AttachBacklight. Values out of
	// range are clamped.
	Backlight int
}

// DefaultSettings enables all axes at 10Hz, normal resolution, ±2g, in g.
var DefaultSettings = Settings{
	Axes:       AllAxes,
	Resolution: Normal,
	Rate:       Rate10Hz,
	Range:      Range2G,
	Unit:       UnitG,
}

// Opts holds the configuration options for the device.
type Opts struct {
	// ExpectedDeviceID is compared with the WHO_AM_I register by NewI2C. 0
	// skips the check.
	ExpectedDeviceID byte
	// Settings are applied by NewI2C.
	Settings Settings
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	ExpectedDeviceID: WhoAmI,
	Settings:         DefaultSettings,
}

// Dev is a handle to a LIS2DH12 accelerometer.
type Dev struct {
	// mu serializes bus transactions and guards the fields below.
	mu       sync.Mutex
	d        *i2c.Dev
	img      RegisterImage
	settings Settings
	divisor  int
	inSync   bool
	debug    DebugF

	backlight *softpwm.Controller
}

// NewI2C returns a LIS2DH12 on the given bus and address, identified and
// configured according to opts. The Opts can be nil.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{
		d:       &i2c.Dev{Bus: b, Addr: addr},
		divisor: Range2G.Divisor(),
		debug:   noop,
	}
	if opts.ExpectedDeviceID != 0 {
		id, err := d.Identify()
		if err != nil {
			return nil, err
		}
		if id != opts.ExpectedDeviceID {
			return nil, &DeviceMismatchError{Expected: opts.ExpectedDeviceID, Got: id}
		}
	}
	if err := d.Configure(opts.Settings); err != nil {
		return nil, err
	}
	return d, nil
}

// EnableDebug sets the function used to trace register writes.
func (d *Dev) EnableDebug(f DebugF) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if f == nil {
		f = noop
	}
	d.debug = f
}

// AttachBacklight binds a soft-PWM controller to the indicator line. The
// duty level is then taken from Settings.Backlight on each Configure. The
// controller starts stopped.
func (d *Dev) AttachBacklight(s softpwm.Scheduler, opts *softpwm.Opts) *softpwm.Controller {
	c := softpwm.New(d, s, opts)
	d.mu.Lock()
	d.backlight = c
	d.mu.Unlock()
	return c
}

// Configure encodes s and writes all six control registers at once.
//
// Validation errors are returned before anything is written. If the bus
// write fails, the new image is kept in memory but InSync reports false until
// the next successful Configure. Read keeps decoding with the range and unit
// of the last successful write.
func (d *Dev) Configure(s Settings) error {
	d.mu.Lock()
	img := d.img
	backlight := d.backlight
	d.mu.Unlock()

	img, divisor, err := encode(img, s)
	if err != nil {
		return err
	}
	// The controller calls back into Out, which takes d.mu.
	if backlight != nil {
		if err := backlight.SetDuty(s.Backlight); err != nil {
			return err
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	img[ctrl6] = d.img[ctrl6]
	d.img = img
	w := append([]byte{_REG_CTRL1 | _AUTO_INCREMENT}, img[:]...)
	d.debug("lis2dh12: write % x", w)
	if err := d.d.Tx(w, nil); err != nil {
		d.inSync = false
		return &TransportError{Op: "write", Reg: _REG_CTRL1, Err: err}
	}
	d.settings = s
	d.divisor = divisor
	d.inSync = true
	return nil
}

// Modify applies f to a copy of the current settings and configures the
// device with the result.
func (d *Dev) Modify(f func(*Settings)) error {
	s := d.Settings()
	f(&s)
	return d.Configure(s)
}

// encode applies the settings in the order axes, resolution, rate, range,
// unit. The resolution is passed explicitly to the rate validation.
func encode(img RegisterImage, s Settings) (RegisterImage, int, error) {
	img = SetAxes(img, s.Axes)
	img, err := SetResolution(img, s.Resolution)
	if err != nil {
		return img, 0, err
	}
	if img, err = SetSampleRate(img, s.Rate, s.Resolution); err != nil {
		return img, 0, err
	}
	img, divisor, err := SetRange(img, s.Range)
	if err != nil {
		return img, 0, err
	}
	if err := ValidateUnit(s.Unit); err != nil {
		return img, 0, err
	}
	return img, divisor, nil
}

// Read returns one sample decoded with the range and unit of the last
// successful Configure.
func (d *Dev) Read() (Acceleration, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	raw := make([]byte, sampleLen)
	if err := d.d.Tx([]byte{_REG_OUT_X_L | _AUTO_INCREMENT}, raw); err != nil {
		return Acceleration{}, &TransportError{Op: "read", Reg: _REG_OUT_X_L, Err: err}
	}
	return Decode(raw, d.divisor, d.settings.Unit)
}

// Sense reads one sample into a.
func (d *Dev) Sense(a *Acceleration) error {
	v, err := d.Read()
	if err == nil {
		*a = v
	}
	return err
}

// Identify returns the content of the WHO_AM_I register, WhoAmI on a
// LIS2DH12.
func (d *Dev) Identify() (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r := make([]byte, 1)
	if err := d.d.Tx([]byte{_REG_WHO_AM_I}, r); err != nil {
		return 0, &TransportError{Op: "read", Reg: _REG_WHO_AM_I, Err: err}
	}
	return r[0], nil
}

// SetIndicator turns the indicator line on or off through CTRL_REG6.
func (d *Dev) SetIndicator(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := _INDICATOR_OFF
	if on {
		v = _INDICATOR_ON
	}
	d.img[ctrl6] = v
	if err := d.d.Tx([]byte{_REG_CTRL6, v}, nil); err != nil {
		return &TransportError{Op: "write", Reg: _REG_CTRL6, Err: err}
	}
	return nil
}

// Out implements softpwm.Output.
func (d *Dev) Out(on bool) error {
	return d.SetIndicator(on)
}

// Image returns the in-memory copy of the control registers.
func (d *Dev) Image() RegisterImage {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.img
}

// Settings returns the settings of the last successful Configure.
func (d *Dev) Settings() Settings {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settings
}

// InSync reports whether the last register write succeeded.
func (d *Dev) InSync() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inSync
}

// Halt stops the backlight controller, if any, and turns the indicator off.
// Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	backlight := d.backlight
	d.mu.Unlock()
	if backlight != nil {
		return backlight.Halt()
	}
	return d.SetIndicator(false)
}

func (d *Dev) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.settings
	return fmt.Sprintf("lis2dh12{%s, axes:%s, %s, %s, ±%s, %s}", d.d, s.Axes, s.Resolution, s.Rate, s.Range, s.Unit)
}

func noop(string, ...interface{}) {}

var _ conn.Resource = &Dev{}
var _ softpwm.Output = &Dev{}
