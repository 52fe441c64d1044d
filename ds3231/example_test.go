// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds3231_test

import (
	"fmt"
	"log"

	"github.com/ndf-zz/flipdrv/ds3231"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	// Use i2creg I2C bus registry to find the first available I2C bus.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()
	rtc, err := ds3231.New(b, nil)
	if err != nil {
		log.Fatal(err)
	}
	if err := rtc.Init(); err != nil {
		log.Fatal(err)
	}
	t, err := rtc.Read()
	if err != nil {
		log.Fatal(err)
	}
	if !t.Valid {
		log.Fatal("clock has not been set")
	}
	fmt.Printf("%x:%02x %d°C\n", t.Hour&0x1f, t.Minute, t.Temp)
}
