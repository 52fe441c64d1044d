// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panelsim

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

var errNotImplemented = errors.New("panelsim: not implemented")

// latchPin is the emulated parallel-load line of the chain.
type latchPin struct {
	s     *Sim
	level gpio.Level
}

// Halt implements conn.Resource.
func (p *latchPin) Halt() error {
	return nil
}

// Name returns the name of the pin.
func (p *latchPin) Name() string {
	return "PANELSIM_LATCH"
}

// Number returns the number of the pin.
func (p *latchPin) Number() int {
	return 0
}

// Deprecated: returns "Out"
func (p *latchPin) Function() string {
	return "Out"
}

// Out applies the shifted frame on the rising edge.
func (p *latchPin) Out(l gpio.Level) error {
	if l == gpio.High && p.level == gpio.Low {
		p.s.latchFrame()
	}
	p.level = l
	return nil
}

// Not implemented.
func (p *latchPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errNotImplemented
}

func (p *latchPin) String() string {
	return p.Name()
}

var _ gpio.PinOut = &latchPin{}
