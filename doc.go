// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package badgedevices is a container for the device drivers of the badge:
// the LIS2DH12 accelerometer, the soft-PWM driving its indicator line and a
// terminal renderer to check both without hardware.
package badgedevices
