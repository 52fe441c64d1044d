// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds3231

import (
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

const addr uint16 = 0x68

// readOps returns the transactions of one Read: a status clear that also
// positions the register pointer, then the seven byte wrapping read.
func readOps(r []byte) []i2ctest.IO {
	return []i2ctest.IO{
		{Addr: addr, W: []byte{regStatus, 0x00}},
		{Addr: addr, R: r},
	}
}

func TestRead(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops:       readOps([]byte{0x00, 0x19, 0x40, 0x30, 0x25, 0x51, 0x03}),
		DontPanic: true,
	}
	defer pb.Close()
	dev, err := New(pb, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := dev.Read()
	if err != nil {
		t.Fatal(err)
	}
	want := Time{Hour: 0x51, Minute: 0x25, Temp: 25, Valid: true}
	if got != want {
		t.Errorf("Read() = %+v, expected %+v", got, want)
	}
}

func TestReadUnsetClock(t *testing.T) {
	// The day register reads zero until the clock has been set.
	pb := &i2ctest.Playback{
		Ops:       readOps([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}),
		DontPanic: true,
	}
	defer pb.Close()
	dev, err := New(pb, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := dev.Read()
	if err != nil {
		t.Fatal(err)
	}
	if got.Valid {
		t.Error("unset clock read as valid")
	}
	if got.Hour != 0x1f || got.Minute != 0xff {
		t.Errorf("unset clock read %+v", got)
	}
}

func TestInitAlready12Hour(t *testing.T) {
	ops := []i2ctest.IO{
		{Addr: addr, W: []byte{regAlarm2Min, 0x80, 0x80, 0x80, 0x06, 0x00}},
	}
	ops = append(ops, readOps([]byte{0x00, 0x18, 0x00, 0x00, 0x15, 0x51, 0x02})...)
	pb := &i2ctest.Playback{Ops: ops, DontPanic: true}
	defer pb.Close()
	dev, err := New(pb, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.Init(); err != nil {
		t.Fatal(err)
	}
}

func TestInitConverts24Hour(t *testing.T) {
	tests := []struct {
		hour byte
		want byte
	}{
		{0x00, 0x52}, // midnight becomes 12
		{0x09, 0x49},
		{0x15, 0x43}, // 15:00 becomes 3
		{0x22, 0x50}, // 22:00 becomes 10
	}
	for _, tt := range tests {
		ops := []i2ctest.IO{
			{Addr: addr, W: []byte{regAlarm2Min, 0x80, 0x80, 0x80, 0x06, 0x00}},
		}
		ops = append(ops, readOps([]byte{0x00, 0x18, 0x00, 0x00, 0x15, tt.hour, 0x02})...)
		ops = append(ops, i2ctest.IO{Addr: addr, W: []byte{regHours, tt.want}})
		pb := &i2ctest.Playback{Ops: ops, DontPanic: true}
		dev, err := New(pb, nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := dev.Init(); err != nil {
			t.Errorf("hour %#x: %v", tt.hour, err)
		}
		if err := pb.Close(); err != nil {
			t.Errorf("hour %#x: %v", tt.hour, err)
		}
	}
}

func TestIncrementMinute(t *testing.T) {
	tests := []struct {
		minute byte
		want   byte
	}{
		{0x29, 0x30},
		{0x09, 0x10},
		{0x59, 0x00},
		{0x00, 0x01},
	}
	for _, tt := range tests {
		ops := readOps([]byte{0x00, 0x18, 0x00, 0x00, tt.minute, 0x51, 0x02})
		ops = append(ops,
			i2ctest.IO{Addr: addr, W: []byte{regSeconds, 0x00}},
			i2ctest.IO{Addr: addr, W: []byte{regMinutes, tt.want}},
		)
		pb := &i2ctest.Playback{Ops: ops, DontPanic: true}
		dev, err := New(pb, nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := dev.IncrementMinute(); err != nil {
			t.Errorf("minute %#x: %v", tt.minute, err)
		}
		if err := pb.Close(); err != nil {
			t.Errorf("minute %#x: %v", tt.minute, err)
		}
	}
}

func TestIncrementHour(t *testing.T) {
	tests := []struct {
		hour byte
		want byte
	}{
		{0x41, 0x42},
		{0x49, 0x50},
		{0x52, 0x41}, // 12 wraps to 1
	}
	for _, tt := range tests {
		ops := readOps([]byte{0x00, 0x18, 0x00, 0x00, 0x15, tt.hour, 0x02})
		ops = append(ops, i2ctest.IO{Addr: addr, W: []byte{regHours, tt.want}})
		pb := &i2ctest.Playback{Ops: ops, DontPanic: true}
		dev, err := New(pb, nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := dev.IncrementHour(); err != nil {
			t.Errorf("hour %#x: %v", tt.hour, err)
		}
		if err := pb.Close(); err != nil {
			t.Errorf("hour %#x: %v", tt.hour, err)
		}
	}
}

func TestString(t *testing.T) {
	pb := &i2ctest.Playback{DontPanic: true}
	dev, err := New(pb, nil)
	if err != nil {
		t.Fatal(err)
	}
	if dev.String() == "" {
		t.Error("invalid String() result")
	}
}
