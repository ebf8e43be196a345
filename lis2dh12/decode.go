// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis2dh12

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// sampleLen is the size of OUT_X_L..OUT_Z_H.
const sampleLen = 6

// Acceleration is a decoded sample.
type Acceleration struct {
	X, Y, Z float64
	Unit    Unit
}

func (a Acceleration) String() string {
	suffix := "g"
	if a.Unit == UnitSI {
		suffix = "m/s²"
	}
	return fmt.Sprintf("X:%.3f%s Y:%.3f%s Z:%.3f%s", a.X, suffix, a.Y, suffix, a.Z, suffix)
}

// Decode converts the raw content of the output registers into an
// Acceleration. raw holds three little endian int16, divisor is the value
// returned by SetRange.
func Decode(raw []byte, divisor int, unit Unit) (Acceleration, error) {
	if len(raw) != sampleLen {
		return Acceleration{}, &InvalidInputError{Len: len(raw)}
	}
	if divisor <= 0 {
		return Acceleration{}, &InvalidParameterError{Field: "divisor", Value: strconv.Itoa(divisor)}
	}
	if err := ValidateUnit(unit); err != nil {
		return Acceleration{}, err
	}
	var v [3]float64
	for i := range v {
		v[i] = float64(int16(binary.LittleEndian.Uint16(raw[2*i:]))) / float64(divisor)
		if unit == UnitSI {
			v[i] *= StandardGravity
		}
	}
	return Acceleration{X: v[0], Y: v[1], Z: v[2], Unit: unit}, nil
}
