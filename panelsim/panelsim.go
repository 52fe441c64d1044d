// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package panelsim emulates a chain of 4x5 flip-dot panels behind a shift
// register. It implements spi.Port and provides a latch pin so a
// flipdot.Dev can drive it unmodified.
//
// Useful while you are waiting for your panels to come by mail: dots keep
// their state between frames like the real electromagnets, and the decoder
// flags coil commands that would be invalid on hardware.
package panelsim

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"sync"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

const (
	rows           = 5
	panelCols      = 4
	panelsPerGroup = 2
	groupCols      = 8
)

// Sim is an emulated panel chain.
type Sim struct {
	mu sync.Mutex

	groups int
	reqLen int
	shift  []byte // shift register contents, oldest byte first
	dots   []bool // col major would waste nothing; keep row*cols+col
	frames int
	faults []string

	palette ansi256.Palette
}

// New returns a Sim emulating a chain of groups*2 panels.
func New(groups int) *Sim {
	return &Sim{
		groups:  groups,
		reqLen:  groups * panelsPerGroup * rows,
		dots:    make([]bool, groups*groupCols*rows),
		palette: *ansi256.Default,
	}
}

func (s *Sim) String() string {
	return fmt.Sprintf("panelsim.Sim{%dx%d}", s.groups*groupCols, rows)
}

// Connect implements spi.Port.
func (s *Sim) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if bits != 8 {
		return nil, fmt.Errorf("panelsim: unsupported word size %d", bits)
	}
	return s, nil
}

// Duplex implements spi.Conn. The chain never drives the bus.
func (s *Sim) Duplex() conn.Duplex {
	return conn.Half
}

// Tx implements spi.Conn: bytes are shifted into the register model, the
// oldest falling off the far end of the chain.
func (s *Sim) Tx(w, r []byte) error {
	if len(r) != 0 {
		return fmt.Errorf("panelsim: read of %d bytes from a write-only chain", len(r))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shift = append(s.shift, w...)
	if excess := len(s.shift) - s.reqLen; excess > 0 {
		s.shift = s.shift[excess:]
	}
	return nil
}

// TxPackets implements spi.Conn.
func (s *Sim) TxPackets(p []spi.Packet) error {
	for _, pkt := range p {
		if err := s.Tx(pkt.W, pkt.R); err != nil {
			return err
		}
	}
	return nil
}

// Latch returns the chain's parallel-load pin. A rising edge applies the
// shifted frame to the dots.
func (s *Sim) Latch() gpio.PinOut {
	return &latchPin{s: s}
}

// latchFrame decodes the register contents into dot flips.
func (s *Sim) latchFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
	if len(s.shift) != s.reqLen {
		s.faults = append(s.faults, fmt.Sprintf("frame %d: latched %d of %d bytes", s.frames, len(s.shift), s.reqLen))
		return
	}
	for i, b := range s.shift {
		goft := i / (panelsPerGroup * rows)
		poft := i / rows % panelsPerGroup
		loft := i % rows
		group := s.groups - 1 - goft
		panel := panelsPerGroup - 1 - poft
		row := rows - 1 - loft
		for p := 0; p < panelCols; p++ {
			col := group*groupCols + panel*panelCols + p
			switch b >> uint(2*p) & 0x3 {
			case 0x1:
				s.dots[row*s.groups*groupCols+col] = true
			case 0x2:
				s.dots[row*s.groups*groupCols+col] = false
			case 0x3:
				s.faults = append(s.faults, fmt.Sprintf("frame %d: set and clear driven together at col %d row %d", s.frames, col, row))
			}
		}
	}
}

// Dot reports the state of a single dot.
func (s *Sim) Dot(col, row int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dots[row*s.groups*groupCols+col]
}

// Frames returns the number of latched frames.
func (s *Sim) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Faults returns decoding faults seen so far: short frames and reserved or
// conflicting coil commands.
func (s *Sim) Faults() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.faults...)
}

// Halt implements conn.Resource.
func (s *Sim) Halt() error {
	return nil
}

var (
	dotOn  = color.NRGBA{R: 255, G: 196, B: 0, A: 255}
	dotOff = color.NRGBA{R: 48, G: 40, B: 32, A: 255}
)

// Render writes an ANSI color rendition of the panels to w. Pass nil to
// write to stdout.
func (s *Sim) Render(w io.Writer) error {
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var buf bytes.Buffer
	cols := s.groups * groupCols
	for row := 0; row < rows; row++ {
		_, _ = buf.WriteString("\033[0m")
		for col := 0; col < cols; col++ {
			c := dotOff
			if s.dots[row*cols+col] {
				c = dotOn
			}
			_, _ = io.WriteString(&buf, s.palette.Block(c))
		}
		_, _ = buf.WriteString("\033[0m\n")
	}
	_, err := buf.WriteTo(w)
	return err
}

var _ spi.Port = &Sim{}
var _ spi.Conn = &Sim{}
