// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis2dh12

import "fmt"

const (
	// WhoAmI is the content of the identification register on a LIS2DH12.
	WhoAmI byte = 0x33

	// DefaultAddress is the I²C address with SA0 tied low.
	DefaultAddress uint16 = 0x18
	// AlternateAddress is the I²C address with SA0 tied high.
	AlternateAddress uint16 = 0x19

	// Register addresses.
	_REG_WHO_AM_I byte = 0x0F
	_REG_CTRL1    byte = 0x20
	_REG_CTRL6    byte = 0x25
	_REG_OUT_X_L  byte = 0x28

	// Setting the MSB of the sub-address enables address auto-increment.
	_AUTO_INCREMENT byte = 0x80

	_INDICATOR_ON  byte = 0xFF
	_INDICATOR_OFF byte = 0x00
)

// Offsets into a RegisterImage.
const (
	ctrl1 = 0
	ctrl4 = 3
	ctrl6 = 5
)

// Bits owned by the encoder.
const (
	maskAxes  byte = 0x07 // CTRL_REG1 Xen, Yen, Zen
	bitLPen   byte = 0x08 // CTRL_REG1 low power enable
	maskODR   byte = 0xF0 // CTRL_REG1 output data rate
	bitHR     byte = 0x08 // CTRL_REG4 high resolution
	maskFS    byte = 0x30 // CTRL_REG4 full scale
	shiftODR       = 4
	shiftFS        = 4
)

// RegisterImage is the in-memory copy of CTRL_REG1 to CTRL_REG6.
//
// Index 0 is CTRL_REG1, index 3 is CTRL_REG4 and index 5 is CTRL_REG6. The
// other bytes are left as they are.
type RegisterImage [6]byte

// Bits returns the bits of register reg selected by mask.
func (r RegisterImage) Bits(reg int, mask byte) byte {
	return r[reg] & mask
}

// with returns a copy of the image where the bits of reg selected by mask are
// replaced by value.
func (r RegisterImage) with(reg int, mask, value byte) RegisterImage {
	r[reg] = r[reg]&^mask | value&mask
	return r
}

func (r RegisterImage) String() string {
	return fmt.Sprintf("RegisterImage{% x}", r[:])
}
