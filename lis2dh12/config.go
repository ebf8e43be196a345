// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis2dh12

import (
	"strconv"
	"strings"

	"periph.io/x/conn/v3/physic"
)

// Axes is a set of enabled axes.
type Axes byte

const (
	AxisX Axes = 1 << iota
	AxisY
	AxisZ

	AllAxes = AxisX | AxisY | AxisZ
)

func (a Axes) String() string {
	var b strings.Builder
	for i, c := range "xyz" {
		if a&(1<<i) != 0 {
			b.WriteRune(c)
		}
	}
	if b.Len() == 0 {
		return "none"
	}
	return b.String()
}

// ParseAxes parses a set of axes written as letters, e.g. "xz".
func ParseAxes(s string) (Axes, error) {
	var a Axes
	for _, c := range strings.ToLower(s) {
		switch c {
		case 'x':
			a |= AxisX
		case 'y':
			a |= AxisY
		case 'z':
			a |= AxisZ
		default:
			return 0, &InvalidParameterError{Field: "axes", Value: s}
		}
	}
	return a, nil
}

// Resolution is the measurement bit depth. The value is the number of bits.
type Resolution byte

const (
	LowPower       Resolution = 8  // 8 bit, low power mode
	Normal         Resolution = 10 // 10 bit, normal mode
	HighResolution Resolution = 12 // 12 bit, high resolution mode
)

func (r Resolution) valid() bool {
	return r == LowPower || r == Normal || r == HighResolution
}

func (r Resolution) String() string {
	switch r {
	case LowPower:
		return "8bit/low-power"
	case Normal:
		return "10bit/normal"
	case HighResolution:
		return "12bit/high-resolution"
	default:
		return "Resolution(" + strconv.Itoa(int(r)) + ")"
	}
}

// ParseResolution parses a bit depth: 8, 10 or 12.
func ParseResolution(s string) (Resolution, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(s), "bit"))
	if err != nil || n < 0 || n > 0xff || !Resolution(n).valid() {
		return 0, &InvalidParameterError{Field: "resolution", Value: s}
	}
	return Resolution(n), nil
}

// Rate is the output data rate.
type Rate byte

const (
	RatePowerDown Rate = iota
	Rate1Hz
	Rate10Hz
	Rate25Hz
	Rate50Hz
	Rate100Hz
	Rate200Hz
	Rate400Hz
	Rate1620Hz // low power mode only
	Rate5376Hz // low power mode only
	Rate1344Hz // normal and high resolution modes only
)

type modeSet byte

const (
	anyMode modeSet = iota
	lowPowerOnly
	notLowPower
)

var rates = [...]struct {
	name string
	code byte
	freq physic.Frequency
	mode modeSet
}{
	RatePowerDown: {"power-down", 0x0, 0, anyMode},
	Rate1Hz:       {"1Hz", 0x1, physic.Hertz, anyMode},
	Rate10Hz:      {"10Hz", 0x2, 10 * physic.Hertz, anyMode},
	Rate25Hz:      {"25Hz", 0x3, 25 * physic.Hertz, anyMode},
	Rate50Hz:      {"50Hz", 0x4, 50 * physic.Hertz, anyMode},
	Rate100Hz:     {"100Hz", 0x5, 100 * physic.Hertz, anyMode},
	Rate200Hz:     {"200Hz", 0x6, 200 * physic.Hertz, anyMode},
	Rate400Hz:     {"400Hz", 0x7, 400 * physic.Hertz, anyMode},
	Rate1620Hz:    {"1.620kHz", 0x8, 1620 * physic.Hertz, lowPowerOnly},
	Rate5376Hz:    {"5.376kHz", 0x9, 5376 * physic.Hertz, lowPowerOnly},
	Rate1344Hz:    {"1.344kHz", 0x9, 1344 * physic.Hertz, notLowPower},
}

func (r Rate) valid() bool {
	return int(r) < len(rates)
}

func (r Rate) String() string {
	if !r.valid() {
		return "Rate(" + strconv.Itoa(int(r)) + ")"
	}
	return rates[r].name
}

// Frequency returns the sampling frequency. It is 0 for RatePowerDown.
func (r Rate) Frequency() physic.Frequency {
	if !r.valid() {
		return 0
	}
	return rates[r].freq
}

// ParseRate parses a rate as written in the datasheet, e.g. "10Hz",
// "1.344kHz" or "power-down". The match is case insensitive.
//
// ODR code 0x9 is named after the datasheet: "5.376kHz" in low power mode
// and "1.344kHz" in normal and high resolution modes. Older badge firmware
// used the two names the other way round, so "1.344kHz" with an 8 bit
// resolution is rejected by SetSampleRate.
func ParseRate(s string) (Rate, error) {
	for i := range rates {
		if strings.EqualFold(rates[i].name, s) {
			return Rate(i), nil
		}
	}
	return 0, &InvalidParameterError{Field: "rate", Value: s}
}

// Range is the full scale range.
type Range byte

const (
	Range2G Range = iota
	Range4G
	Range8G
	Range16G
)

var ranges = [...]struct {
	name    string
	g       int
	divisor int
}{
	Range2G:  {"2g", 2, 16384},
	Range4G:  {"4g", 4, 8192},
	Range8G:  {"8g", 8, 4096},
	Range16G: {"16g", 16, 1024},
}

func (r Range) valid() bool {
	return int(r) < len(ranges)
}

func (r Range) String() string {
	if !r.valid() {
		return "Range(" + strconv.Itoa(int(r)) + ")"
	}
	return ranges[r].name
}

// Divisor returns the number of counts per g used to decode samples.
func (r Range) Divisor() int {
	if !r.valid() {
		return 0
	}
	return ranges[r].divisor
}

// G returns the full scale in g.
func (r Range) G() int {
	if !r.valid() {
		return 0
	}
	return ranges[r].g
}

// ParseRange parses "2g", "4g", "8g" or "16g".
func ParseRange(s string) (Range, error) {
	for i := range ranges {
		if strings.EqualFold(ranges[i].name, s) {
			return Range(i), nil
		}
	}
	return 0, &InvalidParameterError{Field: "range", Value: s}
}

// Unit is the unit of decoded samples.
type Unit byte

const (
	UnitG  Unit = iota // multiples of standard gravity
	UnitSI             // m/s²
)

// StandardGravity is the factor applied to convert g into m/s².
const StandardGravity = 9.81

func (u Unit) String() string {
	switch u {
	case UnitG:
		return "G"
	case UnitSI:
		return "SI"
	default:
		return "Unit(" + strconv.Itoa(int(u)) + ")"
	}
}

// ParseUnit parses "G" or "SI".
func ParseUnit(s string) (Unit, error) {
	switch strings.ToUpper(s) {
	case "G":
		return UnitG, nil
	case "SI":
		return UnitSI, nil
	}
	return 0, &InvalidParameterError{Field: "unit", Value: s}
}

// SetAxes enables the axes in a and disables the others.
func SetAxes(img RegisterImage, a Axes) RegisterImage {
	return img.with(ctrl1, maskAxes, byte(a))
}

// SetResolution selects the measurement resolution through the LPen and HR
// bits. Normal mode clears both.
//
// On error, img is returned unchanged.
func SetResolution(img RegisterImage, r Resolution) (RegisterImage, error) {
	if !r.valid() {
		return img, &InvalidParameterError{Field: "resolution", Value: r.String()}
	}
	img = img.with(ctrl1, bitLPen, 0).with(ctrl4, bitHR, 0)
	switch r {
	case LowPower:
		img = img.with(ctrl1, bitLPen, bitLPen)
	case HighResolution:
		img = img.with(ctrl4, bitHR, bitHR)
	}
	return img, nil
}

// SetSampleRate sets the output data rate. mode is the resolution already
// applied with SetResolution; the highest rates are only available in some
// modes.
//
// On error, img is returned unchanged.
func SetSampleRate(img RegisterImage, r Rate, mode Resolution) (RegisterImage, error) {
	if !r.valid() {
		return img, &InvalidParameterError{Field: "rate", Value: r.String()}
	}
	if !mode.valid() {
		return img, &InvalidParameterError{Field: "resolution", Value: mode.String()}
	}
	switch rates[r].mode {
	case lowPowerOnly:
		if mode != LowPower {
			return img, &IncompatibleConfigurationError{Rate: r, Resolution: mode}
		}
	case notLowPower:
		if mode == LowPower {
			return img, &IncompatibleConfigurationError{Rate: r, Resolution: mode}
		}
	}
	return img.with(ctrl1, maskODR, rates[r].code<<shiftODR), nil
}

// SetRange sets the full scale range and returns the matching divisor.
//
// On error, img is returned unchanged.
func SetRange(img RegisterImage, r Range) (RegisterImage, int, error) {
	if !r.valid() {
		return img, 0, &InvalidParameterError{Field: "range", Value: r.String()}
	}
	return img.with(ctrl4, maskFS, byte(r)<<shiftFS), ranges[r].divisor, nil
}

// ValidateUnit returns an error if u is not a known unit.
func ValidateUnit(u Unit) error {
	if u != UnitG && u != UnitSI {
		return &InvalidParameterError{Field: "unit", Value: u.String()}
	}
	return nil
}
