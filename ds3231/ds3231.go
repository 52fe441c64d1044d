// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds3231

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Addr: 0x68,
}

// Opts defines the options for the device.
type Opts struct {
	// Addr is the I2C address of the RTC.
	Addr uint16
}

// Register addresses.
const (
	regSeconds   = 0x00
	regMinutes   = 0x01
	regHours     = 0x02
	regAlarm2Min = 0x0b
	regControl   = 0x0e
	regStatus    = 0x0f
)

// Time is one clock readout. Hour and Minute are BCD in 12 hour mode: the
// low nibble and bit 4 of Hour carry the digits, bit 5 the PM flag.
type Time struct {
	Hour   byte
	Minute byte
	// Temp is the die temperature in whole degrees Celsius.
	Temp int8
	// Valid is false until the clock has been set at least once.
	Valid bool
}

// Dev represents a DS3231 real-time clock.
type Dev struct {
	d *i2c.Dev
}

// New returns a Dev connected to the RTC on the given bus.
func New(bus i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	addr := opts.Addr
	if addr == 0 {
		addr = DefaultOpts.Addr
	}
	return &Dev{d: &i2c.Dev{Bus: bus, Addr: addr}}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("ds3231.Dev{%s}", d.d)
}

// Halt implements conn.Resource.
func (d *Dev) Halt() error {
	return nil
}

// Init configures alarm 2 to assert the interrupt line once per minute and
// forces the clock into 12 hour mode if it is keeping 24 hour time.
func (d *Dev) Init() error {
	// A2Mx mask bits select "once per minute", INTCN|A2IE routes the
	// alarm to the interrupt pin, and the status register is cleared.
	w := []byte{regAlarm2Min, 0x80, 0x80, 0x80, 0x06, 0x00}
	if err := d.d.Tx(w, nil); err != nil {
		return fmt.Errorf("ds3231: %v", err)
	}
	t, err := d.Read()
	if err != nil || !t.Valid {
		return err
	}
	if t.Hour&0x40 == 0 {
		// 24 hour mode: convert the BCD hour count to 12 hour.
		t1 := t.Hour & 0x3f
		if t1 == 0 {
			t1 = 0x12
		} else if t1 > 0x12 {
			t2 := 10*(t1>>4) + t1&0x0f - 12
			t1 = 0
			if t2 > 9 {
				t1 |= 0x10
				t2 -= 10
			}
			t1 |= t2
		}
		return d.SetHours(0x40 | t1)
	}
	return nil
}

// Read clears the alarm flag and returns the current time. The status
// write leaves the register pointer just past the status register, so the
// seven byte read wraps through the clock registers.
func (d *Dev) Read() (Time, error) {
	if err := d.d.Tx([]byte{regStatus, 0x00}, nil); err != nil {
		return Time{}, fmt.Errorf("ds3231: %v", err)
	}
	r := make([]byte, 7)
	if err := d.d.Tx(nil, r); err != nil {
		return Time{}, fmt.Errorf("ds3231: %v", err)
	}
	// r[1] holds the temperature, r[4] minutes, r[5] hours and r[6] the
	// day of week, which reads zero until the clock has been set.
	if r[6] == 0 {
		return Time{Hour: 0x1f, Minute: 0xff}, nil
	}
	return Time{
		Hour:   r[5],
		Minute: r[4],
		Temp:   int8(r[1]),
		Valid:  true,
	}, nil
}

// SetSeconds writes the BCD seconds register.
func (d *Dev) SetSeconds(bcd byte) error {
	return d.writeReg(regSeconds, bcd)
}

// SetMinutes writes the BCD minutes register.
func (d *Dev) SetMinutes(bcd byte) error {
	return d.writeReg(regMinutes, bcd)
}

// SetHours writes the BCD hours register. OR in 0x40 to keep the clock in
// 12 hour mode.
func (d *Dev) SetHours(bcd byte) error {
	return d.writeReg(regHours, bcd)
}

// IncrementHour advances the hour by one, wrapping 12 back to 1. The AM/PM
// flag is not carried over: the hour is written back with it cleared.
func (d *Dev) IncrementHour() error {
	t, err := d.Read()
	if err != nil {
		return err
	}
	t1 := t.Hour & 0x1f
	if t1 == 0x12 {
		t1 = 0x01
	} else if t1&0x0f == 0x09 {
		t1 = 0x10
	} else {
		t1++
	}
	return d.SetHours(t1 | 0x40)
}

// IncrementMinute advances the minute by one, wrapping 59 back to 0, and
// zeroes the seconds.
func (d *Dev) IncrementMinute() error {
	t, err := d.Read()
	if err != nil {
		return err
	}
	t1 := t.Minute & 0x7f
	if t1 == 0x59 {
		t1 = 0x00
	} else if t1&0x0f == 0x09 {
		t1 = t1&0x70 + 0x10
	} else {
		t1++
	}
	if err := d.SetSeconds(0x00); err != nil {
		return err
	}
	return d.SetMinutes(t1)
}

func (d *Dev) writeReg(reg, val byte) error {
	if err := d.d.Tx([]byte{reg, val}, nil); err != nil {
		return fmt.Errorf("ds3231: %v", err)
	}
	return nil
}
