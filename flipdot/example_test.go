// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flipdot_test

import (
	"log"
	"time"

	"github.com/ndf-zz/flipdrv/flipdot"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	// Use spireg SPI port registry to find the first available SPI port.
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()
	latch := gpioreg.ByName("GPIO8")
	if latch == nil {
		log.Fatal("no latch pin")
	}
	dev, err := flipdot.NewSPI(p, latch, &flipdot.DefaultOpts)
	if err != nil {
		log.Fatalf("failed to initialize display: %s", err)
	}

	// Stage a message and animate it onto the panels.
	for i, ch := range []byte("FLIP") {
		dev.Char(ch, i*4)
	}
	dev.Trigger()
	for dev.Pending() {
		if err := dev.Tick(); err != nil {
			log.Fatal(err)
		}
		time.Sleep(50 * time.Millisecond)
	}
	_ = dev.Halt()
}
