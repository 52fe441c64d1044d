// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package button debounces active-low tactile push buttons polled at the
// system tick rate.
package button

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
)

// maxPins keeps one press and one release flag per button in a byte.
const maxPins = 4

// Debouncer tracks up to four buttons wired active low with pull-ups.
type Debouncer struct {
	pins  []gpio.PinIn
	prev  byte
	state byte
}

// New configures the pins as pulled-up inputs and returns a Debouncer.
func New(pins ...gpio.PinIn) (*Debouncer, error) {
	if len(pins) == 0 || len(pins) > maxPins {
		return nil, errors.New("button: between 1 and 4 pins required")
	}
	for _, p := range pins {
		if p == nil || p == gpio.INVALID {
			return nil, errors.New("button: invalid pin")
		}
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, err
		}
	}
	released := byte(1)<<uint(len(pins)) - 1
	return &Debouncer{pins: pins, prev: released, state: released}, nil
}

// Poll samples the buttons once and returns event flags: bit 2i+1 is a
// press of button i, bit 2i its release. A level change only registers
// after two consecutive polls agree.
func (d *Debouncer) Poll() byte {
	var tmp byte
	for i, p := range d.pins {
		if p.Read() == gpio.High {
			tmp |= 1 << uint(i)
		}
	}
	var flags byte
	if tmp^d.prev == 0 {
		mask := tmp ^ d.state
		for i := range d.pins {
			bit := byte(1) << uint(i)
			if mask&bit != 0 {
				if tmp&bit != 0 {
					flags |= Released(i)
				} else {
					flags |= Pressed(i)
				}
			}
		}
		d.state = tmp
	}
	d.prev = tmp
	return flags
}

// Pressed returns the press flag bit for button i.
func Pressed(i int) byte {
	return 1 << uint(2*i+1)
}

// Released returns the release flag bit for button i.
func Released(i int) byte {
	return 1 << uint(2*i)
}
