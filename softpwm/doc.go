// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package softpwm approximates a duty cycle on a plain on/off output by
// toggling it from a self rearming one-shot timer.
//
// The resolution is coarse: the duty level is an integer in [0, Max] and a
// full cycle lasts Max ticks. The two ends of the range stop the timer and
// hold the output at a fixed level.
package softpwm
