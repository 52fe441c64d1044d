// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flipdot

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

const (
	// Rows is the pixel height of the display.
	Rows = 5
	// PanelCols is the pixel width of a single panel.
	PanelCols = 4
	// PanelsPerGroup is the number of chained panels in an 8 column group.
	PanelsPerGroup = 2
	// GroupCols is the pixel width of a panel group.
	GroupCols = PanelCols * PanelsPerGroup
)

// Status flag bits.
const (
	statAbort = 1 << 4
	statFlush = 1 << 5
	statUpd   = 1 << 6
	statBusy  = 1 << 7
)

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Groups:   4,
	ColPower: 4,
}

// Opts defines the options for the device.
type Opts struct {
	// Groups is the number of 8 column wide panel groups in the chain.
	Groups int
	// ColPower is the width of the rolling column window: the number of
	// ticks a coil stays energized before it is relaxed. The panel coils
	// tolerate at most 4.
	ColPower int
}

// Dev is an open handle to a chain of flip-dot panels.
type Dev struct {
	// Communication
	c     spi.Conn
	latch gpio.PinOut

	groups   int
	cols     int
	colPower int

	// Mutable
	buf  []byte // pending pixels, one bit per dot, bit 0 leftmost in group
	cur  []byte // pixels believed to be showing on the panels
	req  []byte // coil commands staged for the next frame
	stat byte
	ck   int
}

// NewSPI returns a Dev that drives a panel chain connected to an SPI port,
// with the panel latch line on a separate GPIO pin.
//
// # Wiring
//
// Connect the chain's serial input to SPI_MOSI, the shift clock to SPI_CLK
// and the latch line to any output pin. The panels never drive the bus, so
// MISO is left unconnected.
//
// The buffers start zeroed and one all-relax frame is latched so that no
// coil is left powered from a previous session.
func NewSPI(p spi.Port, latch gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Groups < 1 {
		return nil, fmt.Errorf("flipdot: invalid group count %d", opts.Groups)
	}
	if opts.ColPower != 3 && opts.ColPower != 4 {
		return nil, fmt.Errorf("flipdot: invalid column power %d", opts.ColPower)
	}
	if latch == nil || latch == gpio.INVALID {
		return nil, errors.New("flipdot: a valid latch pin is required")
	}
	if err := latch.Out(gpio.Low); err != nil {
		return nil, err
	}
	c, err := p.Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("flipdot: %v", err)
	}
	d := &Dev{
		c:        c,
		latch:    latch,
		groups:   opts.Groups,
		cols:     opts.Groups * GroupCols,
		colPower: opts.ColPower,
		buf:      make([]byte, opts.Groups*Rows),
		cur:      make([]byte, opts.Groups*Rows),
		req:      make([]byte, opts.Groups*PanelsPerGroup*Rows),
	}
	if err := d.Relax(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("flipdot.Dev{%s, %s, %dx%d}", d.c, d.latch, d.cols, Rows)
}

// Halt drops any pending sweep and relaxes every coil.
func (d *Dev) Halt() error {
	d.stat = 0
	return d.Relax()
}

// Trigger requests a sweep of pending buffer changes onto the panels.
func (d *Dev) Trigger() {
	d.stat |= statUpd
}

// Flush marks every pixel as changed so the next sweep re-drives all
// coils regardless of the committed state.
func (d *Dev) Flush() {
	d.stat |= statFlush
}

// Abort ends a running sweep: the next tick latches a full relax frame and
// clears the pixel buffer so a restart paints a blank display.
func (d *Dev) Abort() {
	d.stat |= statAbort
}

// Busy reports whether a sweep is in progress.
func (d *Dev) Busy() bool {
	return d.stat&statBusy != 0
}

// Pending reports whether a sweep is in progress or has been requested.
// Input that mutates the pixel buffer must be held while Pending.
func (d *Dev) Pending() bool {
	return d.stat&(statBusy|statUpd) != 0
}

// Clear zeroes the pixel buffer.
func (d *Dev) Clear() {
	d.Fill(0)
}

// Fill writes v to every byte of the pixel buffer, repeating the same
// 8 column pattern across all groups and rows. Fill(0xff) blackens the
// display.
func (d *Dev) Fill(v byte) {
	for i := range d.buf {
		d.buf[i] = v
	}
}

// PutPixel sets or clears a single pixel. Out of range coordinates are
// ignored.
func (d *Dev) PutPixel(col, row int, on bool) {
	if col < 0 || col >= d.cols || row < 0 || row >= Rows {
		return
	}
	o := row*d.groups + col>>3
	bit := byte(1) << (col & 7)
	if on {
		d.buf[o] |= bit
	} else {
		d.buf[o] &^= bit
	}
}

// Pixel reports the pending buffer state of a single pixel. Out of range
// coordinates read as off.
func (d *Dev) Pixel(col, row int) bool {
	if col < 0 || col >= d.cols || row < 0 || row >= Rows {
		return false
	}
	return d.buf[row*d.groups+col>>3]&(1<<uint(col&7)) != 0
}

// Char blits the 5x4 glyph for ch with its left edge at col. Lowercase is
// folded to uppercase and bytes outside 0x20..0x7e are ignored. The glyph
// is OR-ed into the buffer; callers start a fresh message with Clear.
func (d *Dev) Char(ch byte, col int) {
	if col < 0 || col >= d.cols {
		return
	}
	if ch < 0x20 || ch > 0x7e {
		return
	}
	if ch&0x40 != 0 {
		ch &= 0x5f
	}
	ch -= 0x20
	mask := byte(0x0f)
	shift := uint(0)
	if ch >= 0x20 {
		// High nibble half of the table.
		mask = 0xf0
		shift = 4
		ch -= 0x20
	}
	oft := int(ch) * Rows
	group := col >> 3
	pshift := uint(col & 7)
	for row := 0; row < Rows; row++ {
		g := (font5x4[oft+row] & mask) >> shift
		d.buf[row*d.groups+group] |= g << pshift
	}
	if pshift >= 5 && group+1 < d.groups {
		// The glyph crosses the group boundary; blit the remaining
		// columns into the next group byte.
		rshift := shift + 8 - pshift
		for row := 0; row < Rows; row++ {
			g := (font5x4[oft+row] & mask) >> rshift
			d.buf[row*d.groups+group+1] |= g
		}
	}
}

// Data writes the low 5 bits of bits into the single column col, bit 0 at
// the bottom row. Out of range columns are ignored.
func (d *Dev) Data(bits byte, col int) {
	if col < 0 || col >= d.cols {
		return
	}
	group := col >> 3
	bit := byte(1) << (col & 7)
	for row := 0; row < Rows; row++ {
		o := row*d.groups + group
		if bits&(1<<uint(Rows-1-row)) != 0 {
			d.buf[o] |= bit
		} else {
			d.buf[o] &^= bit
		}
	}
}

// invalidate forces every pixel comparison to read as changed so a full
// sweep re-drives the whole display.
func (d *Dev) invalidate() {
	for i, v := range d.buf {
		d.cur[i] = ^v
	}
}

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by image1bit.Bit.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.cols, Rows)
}

// Draw implements display.Drawer.
//
// Drawing only stages pixels and requests a sweep; the physical panels
// update over the following Tick calls.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			on := image1bit.BitModel.Convert(src.At(sp.X+x, sp.Y+y)) == image1bit.On
			d.PutPixel(r.Min.X+x, r.Min.Y+y, on)
		}
	}
	d.Trigger()
	return nil
}

var _ display.Drawer = &Dev{}
