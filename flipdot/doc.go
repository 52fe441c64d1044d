// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package flipdot drives a chain of 4x5 electromagnetic flip-dot panels
// behind a synchronous serial shift register.
//
// The display is an integer number of panel groups, each 8 columns wide by
// 5 rows high:
//
//	+--------+--------+---
//	|XXXXXXXX|XXXXXXXX|
//	|XXXXXXXX|XXXXXXXX|
//	|XXXXXXXX|XXXXXXXX| [...]
//	|XXXXXXXX|XXXXXXXX|
//	|XXXXXXXX|XXXXXXXX|
//	+--------+--------+---
//
// The panels form a shift register chaining two panels per group, left to
// right:
//
//	      +---+---+---
//	IN -> |P-P|P-P| [...] -> OUT
//	      +---+---+---
//
// Each panel is a 4x5 array of dots addressed sequentially:
//
//	        IN
//	         |
//	         v
//	+------------+
//	| 4  3  2  1 |
//	| 8  7  6  5 |
//	|12 11 10  9 |
//	|16 15 14 13 |
//	|20 19 18 17 |
//	+------------+
//	  |
//	  v
//	 OUT
//
// A panel is updated with a 40 bit control message sent as five bytes, one
// per row, bottom row first. Every byte carries four 2 bit coil commands,
// clear bit then set bit, for the four columns of that row:
//
//	Bit:     7   6   5   4   3   2   1   0
//	Byte  +-------------------------------+
//	   0  |C17 S17 C18 S18 C19 S19 C20 S20|
//	   1  |C13 S13 C14 S14 C15 S15 C16 S16|
//	   2  | C9  S9 C10 S10 C11 S11 C12 S12|
//	   3  | C5  S5  C6  S6  C7  S7  C8  S8|
//	   4  | C1  S1  C2  S2  C3  S3  C4  S4|
//	      +-------------------------------+
//
// The whole display is updated by shifting out panel messages far end
// first and then pulsing the latch line to load the coil drivers.
//
// Coils must not be held energized: Tick animates pending changes onto the
// panels with a rolling window of columns so that no coil is powered for
// more than a few ticks.
package flipdot
