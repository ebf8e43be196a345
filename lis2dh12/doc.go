// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lis2dh12 controls an ST LIS2DH12 3-axis accelerometer over I²C.
//
// The six control registers CTRL_REG1..CTRL_REG6 are kept in memory as a
// RegisterImage and written in a single auto-incrementing transaction. The
// encoder functions (SetAxes, SetResolution, SetSampleRate, SetRange) only
// touch the bits they own, so they can be applied in any order except that
// the resolution must be known before a sample rate is validated.
//
// CTRL_REG6 drives the badge indicator line. It is owned by the indicator
// path (SetIndicator and an optional softpwm.Controller attached with
// AttachBacklight); the encoder never modifies it.
//
// # Datasheet
//
// https://www.st.com/resource/en/datasheet/lis2dh12.pdf
package lis2dh12
