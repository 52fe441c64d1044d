// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package flipdrv is a container for the flip-dot display driver suite:
// the panel chain driver, its text protocol, the DS3231 clock and the
// supporting input and simulation packages.
package flipdrv
