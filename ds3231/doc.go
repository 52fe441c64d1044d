// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ds3231 controls a Maxim DS3231 real-time clock over I2C.
//
// The driver keeps the clock in 12 hour BCD mode and configures alarm 2 to
// pulse the interrupt line once per minute, which suits a clock display
// that repaints on the minute. Error checking is minimal: a clock that has
// never been set reads as not Valid rather than failing.
//
// # Datasheet
//
// https://www.analog.com/media/en/technical-documentation/data-sheets/DS3231.pdf
package ds3231
