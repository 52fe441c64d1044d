// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package term

import (
	"testing"

	"github.com/ndf-zz/flipdrv/flipdot"
	"github.com/ndf-zz/flipdrv/panelsim"
)

const groups = 4

// runMessage feeds msg through a terminal with the foreground discipline:
// input drains only while the engine is idle, and stops as soon as a byte
// requests an update.
func runMessage(t *testing.T, msg []byte) (*flipdot.Dev, *panelsim.Sim) {
	t.Helper()
	sim := panelsim.New(groups)
	dev, err := flipdot.NewSPI(sim, sim.Latch(), nil)
	if err != nil {
		t.Fatal(err)
	}
	tm := &Terminal{Dev: dev}
	i := 0
	for n := 0; i < len(msg) || dev.Pending(); n++ {
		if n > 64*len(msg)+256 {
			t.Fatal("message did not complete")
		}
		for !dev.Pending() && i < len(msg) {
			tm.Feed(msg[i])
			i++
		}
		if err := dev.Tick(); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range sim.Faults() {
		t.Errorf("decoder fault: %s", f)
	}
	return dev, sim
}

// refChar renders ch through the drawing primitives for comparison.
func refChar(t *testing.T, ch byte, col int) *flipdot.Dev {
	t.Helper()
	sim := panelsim.New(groups)
	dev, err := flipdot.NewSPI(sim, sim.Latch(), nil)
	if err != nil {
		t.Fatal(err)
	}
	dev.Char(ch, col)
	return dev
}

func checkDots(t *testing.T, dev *flipdot.Dev, sim *panelsim.Sim, want *flipdot.Dev) {
	t.Helper()
	for col := 0; col < groups*flipdot.GroupCols; col++ {
		for row := 0; row < flipdot.Rows; row++ {
			w := want.Pixel(col, row)
			if got := dev.Pixel(col, row); got != w {
				t.Errorf("buffer pixel (%d,%d) = %t, expected %t", col, row, got, w)
			}
			if got := sim.Dot(col, row); got != w {
				t.Errorf("panel dot (%d,%d) = %t, expected %t", col, row, got, w)
			}
		}
	}
}

func TestMessageGlyph(t *testing.T) {
	dev, sim := runMessage(t, []byte{0x0c, 'A', 0x04})
	checkDots(t, dev, sim, refChar(t, 'A', 0))
}

func TestMessageCursorSet(t *testing.T) {
	dev, sim := runMessage(t, []byte{0x0c, 0xc4, 'B', 0x04})
	checkDots(t, dev, sim, refChar(t, 'B', 4))
}

func TestMessageGroupCrossing(t *testing.T) {
	dev, sim := runMessage(t, []byte{0x0c, 0xc5, 'C', 0x04})
	checkDots(t, dev, sim, refChar(t, 'C', 5))
}

func TestBell(t *testing.T) {
	dev, sim := runMessage(t, []byte{0x07})
	for col := 0; col < groups*flipdot.GroupCols; col++ {
		for row := 0; row < flipdot.Rows; row++ {
			if !dev.Pixel(col, row) || !sim.Dot(col, row) {
				t.Fatalf("dot (%d,%d) off after bell", col, row)
			}
		}
	}
}

func TestRawColumn(t *testing.T) {
	dev, sim := runMessage(t, []byte{0x0c, 0x84, 0x0a})
	for col := 0; col < groups*flipdot.GroupCols; col++ {
		for row := 0; row < flipdot.Rows; row++ {
			want := col == 0 && row == 2
			if got := sim.Dot(col, row); got != want {
				t.Errorf("dot (%d,%d) = %t, expected %t", col, row, got, want)
			}
			if got := dev.Pixel(col, row); got != want {
				t.Errorf("pixel (%d,%d) = %t, expected %t", col, row, got, want)
			}
		}
	}
}

func TestMessageReplaces(t *testing.T) {
	// A cursor return before the next message clears the previous one.
	dev, sim := runMessage(t, []byte{0x0c, 'A', 0x04, 0x0d, 'B', 0x04})
	checkDots(t, dev, sim, refChar(t, 'B', 0))
}

func TestCursorMoves(t *testing.T) {
	sim := panelsim.New(groups)
	dev, err := flipdot.NewSPI(sim, sim.Latch(), nil)
	if err != nil {
		t.Fatal(err)
	}
	tm := &Terminal{Dev: dev}
	steps := []struct {
		ch  byte
		pos int
	}{
		{0x09, 4},  // HT
		{0x20, 5},  // SP
		{0x08, 4},  // BS
		{0xc9, 9},  // cursor set
		{0x0d, 0},  // CR
		{0x08, 0},  // BS at home
		{NAK, 0},   // ignored
		{0x15, 0},  // NAK again
		{'A', 4},   // glyph advances a cell
		{0x8a, 5},  // raw column advances one
		{0xdf, 31}, // cursor set maximum
	}
	for _, s := range steps {
		tm.Feed(s.ch)
		if tm.Pos() != s.pos {
			t.Fatalf("after %#x: pos = %d, expected %d", s.ch, tm.Pos(), s.pos)
		}
	}
}

func TestControlFlags(t *testing.T) {
	sim := panelsim.New(groups)
	dev, err := flipdot.NewSPI(sim, sim.Latch(), nil)
	if err != nil {
		t.Fatal(err)
	}
	tm := &Terminal{Dev: dev}
	tm.Feed('A')
	if dev.Pending() {
		t.Error("glyph byte requested an update")
	}
	tm.Feed(0x04)
	if !dev.Pending() {
		t.Error("EOT did not request an update")
	}
}
