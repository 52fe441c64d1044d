// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flipdot

import "periph.io/x/conn/v3/gpio"

// 2 bit coil commands. 0x3 is reserved and never emitted.
const (
	coilSet   = 0x1 // flip the dot on
	coilClear = 0x2 // flip the dot off
)

// reqOffset returns the byte offset in req for the given group, panel and
// row. The chain is written far end first; panel within group and row
// within panel are inverted because the hardware deserializes in reverse.
func (d *Dev) reqOffset(group, panel, row int) int {
	goft := d.groups - 1 - group
	poft := PanelsPerGroup - 1 - panel
	loft := Rows - 1 - row
	return (goft*PanelsPerGroup+poft)*Rows + loft
}

// setClrPattern expands the bottom 4 bits of val into an 8 bit string of
// coil commands, one 2 bit pair per column, bit 3 at the top pair. Only
// columns flagged in mask are driven; the rest stay relaxed.
func setClrPattern(val, mask byte) byte {
	var ret byte
	for i := 0; i < 4; i++ {
		ret <<= 2
		if mask&0x08 != 0 {
			if val&0x08 != 0 {
				ret |= coilSet
			} else {
				ret |= coilClear
			}
		}
		mask <<= 1
		val <<= 1
	}
	return ret
}

// energizeColumn stages coil commands for every changed pixel in col and
// commits the column to cur. Committing at schedule time means a sweep
// restarted before the dots physically settle still sees the new value;
// the column is relaxed within ColPower ticks either way. Columns at or
// beyond the display edge are ignored.
func (d *Dev) energizeColumn(col int) {
	if col < 0 || col >= d.cols {
		return
	}
	group := col >> 3
	panel := (col & 7) >> 2
	shift := uint(col & 4)
	bit := byte(1) << (col & 7)
	for row := 0; row < Rows; row++ {
		o := row*d.groups + group
		src := d.buf[o]
		diff := (src ^ d.cur[o]) & bit
		r := d.reqOffset(group, panel, row)
		d.req[r] |= setClrPattern(src>>shift, diff>>shift)
		d.cur[o] = (d.cur[o] &^ bit) | (src & bit)
	}
}

// relaxColumn drops the coil commands for col from every row of req so the
// coil is not held energized into the next frame. Other columns are left
// untouched.
func (d *Dev) relaxColumn(col int) {
	if col < 0 || col >= d.cols {
		return
	}
	group := col >> 3
	panel := (col & 7) >> 2
	mask := byte(0xff) &^ (0x3 << uint((col&3)<<1))
	for row := 0; row < Rows; row++ {
		d.req[d.reqOffset(group, panel, row)] &= mask
	}
}

// relaxAll zeroes the whole request.
func (d *Dev) relaxAll() {
	for i := range d.req {
		d.req[i] = 0
	}
}

// pushFrame shifts the staged request into the panel chain, far panel
// first.
func (d *Dev) pushFrame() error {
	return d.c.Tx(d.req, nil)
}

// pulseLatch loads the shifted pattern onto the coil drivers.
func (d *Dev) pulseLatch() error {
	if err := d.latch.Out(gpio.High); err != nil {
		return err
	}
	return d.latch.Out(gpio.Low)
}

// Relax un-powers every pixel coil.
func (d *Dev) Relax() error {
	d.relaxAll()
	if err := d.pushFrame(); err != nil {
		return err
	}
	return d.pulseLatch()
}

// Tick advances the column sweep by one step. Call once per system tick;
// each call transmits at most one frame and latch.
//
// Idle with an update requested, the sweep is armed: the cursor resets and
// the flush flag, if set, invalidates the committed state. Busy, the tick
// energizes the leading column, relaxes the trailing column ColPower
// behind it, and latches the frame. Once the cursor passes the trailing
// margin, or immediately on Abort, a full relax frame is latched and the
// engine returns to idle. A Trigger received mid-sweep is held until then.
func (d *Dev) Tick() error {
	if d.stat&statBusy == 0 {
		if d.stat&statUpd != 0 {
			if d.stat&statFlush != 0 {
				d.invalidate()
			}
			// An abort with no sweep running has nothing to cancel;
			// arming starts from a clean slate.
			d.stat = statBusy
			d.ck = 0
		}
		return nil
	}
	if d.stat&statAbort != 0 || d.ck > d.cols+d.colPower {
		aborted := d.stat&statAbort != 0
		d.relaxAll()
		if err := d.pushFrame(); err != nil {
			return err
		}
		if err := d.pulseLatch(); err != nil {
			return err
		}
		if aborted {
			d.Clear()
		}
		d.stat &= statUpd
		return nil
	}
	d.energizeColumn(d.ck)
	if d.ck >= d.colPower {
		d.relaxColumn(d.ck - d.colPower)
	}
	if err := d.pushFrame(); err != nil {
		return err
	}
	if err := d.pulseLatch(); err != nil {
		return err
	}
	d.ck++
	return nil
}
