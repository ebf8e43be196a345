// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis2dh12

import "fmt"

// InvalidParameterError is returned for an unknown axes, resolution, rate,
// range or unit value. It is detected before any register or bus access.
type InvalidParameterError struct {
	Field string
	Value string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("lis2dh12: invalid %s %q", e.Field, e.Value)
}

// IncompatibleConfigurationError is returned when a sample rate is not
// available at the selected resolution.
type IncompatibleConfigurationError struct {
	Rate       Rate
	Resolution Resolution
}

func (e *IncompatibleConfigurationError) Error() string {
	return fmt.Sprintf("lis2dh12: rate %s is not supported at resolution %s", e.Rate, e.Resolution)
}

// InvalidInputError is returned when a raw sample block does not have the
// expected length.
type InvalidInputError struct {
	Len int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("lis2dh12: expected %d sample bytes, got %d", sampleLen, e.Len)
}

// TransportError wraps an error returned by the I²C bus. It is never retried.
type TransportError struct {
	Op  string
	Reg byte
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("lis2dh12: %s register %#02x: %v", e.Op, e.Reg, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DeviceMismatchError is returned by NewI2C when the identification register
// does not hold the expected value.
type DeviceMismatchError struct {
	Expected byte
	Got      byte
}

func (e *DeviceMismatchError) Error() string {
	return fmt.Sprintf("lis2dh12: wrong device connected, expected WHO_AM_I %#02x, got %#02x", e.Expected, e.Got)
}
