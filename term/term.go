// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package term interprets a small text and control protocol and places
// glyphs and raw column data into a flip-dot pixel buffer.
//
// Control bytes:
//
//	0x04  EOT  commit the buffer to the display
//	0x07  BEL  blacken the display
//	0x08  BS   cursor left
//	0x09  HT   cursor right one character cell
//	0x0a  LF   cursor home, commit
//	0x0c  FF   cursor home, clear, full redraw
//	0x0d  CR   cursor home
//	0x10  DLE  force full redraw on next commit
//	0x15  NAK  ignored (substituted for receive errors upstream)
//	0x20  SP   cursor right one column
//
// Bytes 0x21..0x7e draw a glyph and advance the cursor one cell, bytes
// 0x80..0x9f place their low 5 bits as a raw pixel column, and bytes
// 0xc0..0xdf set the cursor to their low 5 bits.
package term

import "github.com/ndf-zz/flipdrv/flipdot"

// NAK is substituted into the input stream for bytes received with a
// framing or overrun error.
const NAK = 0x15

// Terminal feeds protocol bytes into a display buffer.
type Terminal struct {
	Dev *flipdot.Dev

	pos byte
}

// Pos returns the current cursor column.
func (t *Terminal) Pos() int {
	return int(t.pos)
}

// Feed interprets one protocol byte. The first byte of a message, arriving
// with the cursor at home, clears the buffer so the message replaces the
// previous display content.
func (t *Terminal) Feed(ch byte) {
	if t.pos == 0 {
		t.Dev.Clear()
	}
	switch ch {
	case 0x04:
		// EOT
		t.Dev.Trigger()
	case 0x07:
		// Bell
		t.Dev.Fill(0xff)
		t.Dev.Flush()
		t.pos = 0
		t.Dev.Trigger()
	case 0x08:
		// Backspace
		if t.pos > 0 {
			t.pos--
		}
	case 0x09:
		// Tab
		t.pos += 4
	case 0x0a:
		// Line Feed
		t.pos = 0
		t.Dev.Trigger()
	case 0x0c:
		// Form Feed
		t.pos = 0
		t.Dev.Clear()
		t.Dev.Flush()
		t.Dev.Trigger()
	case 0x0d:
		// Carriage Return
		t.pos = 0
	case 0x10:
		// Data Link Escape
		t.Dev.Flush()
	case 0x20:
		// Space
		t.pos++
	default:
		if ch > 0x20 && ch < 0x7f {
			// Printable text
			t.Dev.Char(ch, int(t.pos))
			t.pos += 4
		} else if ch&0xe0 == 0x80 {
			// Raw bits
			t.Dev.Data(ch&0x1f, int(t.pos))
			t.pos++
		} else if ch&0xe0 == 0xc0 {
			// Column offset
			t.pos = ch & 0x1f
		}
	}
}
