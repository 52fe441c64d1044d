// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command flipclock drives a serial controlled flip-dot display with an
// integrated clock.
//
// Bytes received on the host serial link are echoed and interpreted as the
// text protocol of package term. Once per minute the DS3231 alarm fires
// and the current time is injected into the input queue as though the host
// had typed it; the display reverts to the clock unless the host has
// written since the last minute. Two push buttons adjust minutes and
// hours, and pressing both blanks the display.
package main

import (
	"flag"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ndf-zz/flipdrv/button"
	"github.com/ndf-zz/flipdrv/ds3231"
	"github.com/ndf-zz/flipdrv/flipdot"
	"github.com/ndf-zz/flipdrv/term"
	"github.com/tarm/serial"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// The display animates at roughly the tick rate of the panel coils'
// thermal budget; the transport drains well inside one period.
const tickPeriod = 50 * time.Millisecond

const (
	btnMinute = 0
	btnHour   = 1
)

type clock struct {
	dev   *flipdot.Dev
	term  *term.Terminal
	rtc   *ds3231.Dev
	btn   *button.Debouncer
	alarm gpio.PinIn
	port  io.ReadWriter

	// The queue is single-producer: the serial reader and the local time
	// and button injectors serialize their pushes on qmu.
	q   term.Queue
	qmu sync.Mutex

	// external is set when the host writes to the display and cleared by
	// the buttons; while set, minute alarms do not repaint the clock.
	external atomic.Bool
}

// queue appends one byte to the input queue, dropping it on overrun.
func (c *clock) queue(ch byte) {
	c.qmu.Lock()
	c.q.Push(ch)
	c.qmu.Unlock()
}

// readSerial feeds received bytes into the input queue, substituting NAK
// for read errors. It runs in its own goroutine.
func (c *clock) readSerial() {
	buf := make([]byte, 1)
	for {
		n, err := c.port.Read(buf)
		if n > 0 {
			c.queue(buf[0])
			c.external.Store(true)
		} else if err != nil {
			if err == io.EOF {
				return
			}
			c.queue(term.NAK)
		}
	}
}

// drain processes queued input until the display requests a sweep, echoing
// each byte back to the host.
func (c *clock) drain() {
	for !c.dev.Pending() {
		ch, ok := c.q.Pop()
		if !ok {
			return
		}
		c.term.Feed(ch)
		if _, err := c.port.Write([]byte{ch}); err != nil {
			log.Printf("flipclock: echo: %v", err)
		}
	}
}

// updateTime queues the current time, cancelling a sweep in progress so
// the clock is not delayed behind a long animation.
func (c *clock) updateTime(t ds3231.Time) {
	if c.dev.Busy() {
		c.dev.Abort()
		c.queue(0x10)
	}
	if t.Minute == 0x00 {
		c.queue(0x07)
	}
	c.queue(0x0d)
	if t.Hour&0x10 != 0 {
		c.queue(0x20)
		c.queue(0x31)
	} else {
		c.queue(0xc3)
	}
	c.queue(0x30 + t.Hour&0x0f)
	c.queue(0x08)
	c.queue(0x3a)
	c.queue(0x08)
	c.queue(0x30 + t.Minute>>4)
	c.queue(0x30 + t.Minute&0x0f)
	c.queue(0x0a)
}

// readRTC reads the clock and repaints it unless the host has control.
func (c *clock) readRTC() {
	t, err := c.rtc.Read()
	if err != nil {
		log.Printf("flipclock: %v", err)
		return
	}
	if !t.Valid {
		return
	}
	if !c.external.Swap(false) {
		c.updateTime(t)
	}
}

func (c *clock) handleButtons() {
	flags := c.btn.Poll()
	if flags == 0 {
		return
	}
	switch {
	case flags == button.Pressed(btnMinute)|button.Pressed(btnHour):
		c.queue(0x0c)
		c.queue(0x10)
	case flags&button.Pressed(btnMinute) != 0:
		c.external.Store(false)
		if err := c.rtc.IncrementMinute(); err != nil {
			log.Printf("flipclock: %v", err)
			return
		}
		c.readRTC()
	case flags&button.Pressed(btnHour) != 0:
		c.external.Store(false)
		if err := c.rtc.IncrementHour(); err != nil {
			log.Printf("flipclock: %v", err)
			return
		}
		c.readRTC()
	}
}

func mainImpl() error {
	spiName := flag.String("spi", "", "SPI port of the panel chain")
	latchName := flag.String("latch", "GPIO8", "panel latch pin")
	i2cName := flag.String("i2c", "", "I2C bus of the RTC")
	alarmName := flag.String("alarm", "GPIO25", "RTC interrupt pin, active low")
	minName := flag.String("minute", "GPIO23", "minute button pin")
	hourName := flag.String("hour", "GPIO24", "hour button pin")
	serName := flag.String("serial", "/dev/ttyAMA0", "host serial device, 9600 8N1")
	groups := flag.Int("groups", flipdot.DefaultOpts.Groups, "number of 8 column panel groups")
	flag.Parse()

	if _, err := host.Init(); err != nil {
		return err
	}
	p, err := spireg.Open(*spiName)
	if err != nil {
		return err
	}
	defer p.Close()
	latch := gpioreg.ByName(*latchName)
	if latch == nil {
		return errPin(*latchName)
	}
	opts := flipdot.DefaultOpts
	opts.Groups = *groups
	dev, err := flipdot.NewSPI(p, latch, &opts)
	if err != nil {
		return err
	}

	bus, err := i2creg.Open(*i2cName)
	if err != nil {
		return err
	}
	defer bus.Close()
	rtc, err := ds3231.New(bus, nil)
	if err != nil {
		return err
	}
	if err := rtc.Init(); err != nil {
		return err
	}
	alarm := gpioreg.ByName(*alarmName)
	if alarm == nil {
		return errPin(*alarmName)
	}
	if err := alarm.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return err
	}
	minPin := gpioreg.ByName(*minName)
	hourPin := gpioreg.ByName(*hourName)
	if minPin == nil {
		return errPin(*minName)
	}
	if hourPin == nil {
		return errPin(*hourName)
	}
	btn, err := button.New(minPin, hourPin)
	if err != nil {
		return err
	}
	port, err := serial.OpenPort(&serial.Config{Name: *serName, Baud: 9600})
	if err != nil {
		return err
	}
	defer port.Close()

	c := &clock{
		dev:   dev,
		term:  &term.Terminal{Dev: dev},
		rtc:   rtc,
		btn:   btn,
		alarm: alarm,
		port:  port,
	}
	go c.readSerial()

	dev.Flush()
	c.readRTC()
	dev.Trigger()

	tick := time.NewTicker(tickPeriod)
	defer tick.Stop()
	for range tick.C {
		if err := dev.Tick(); err != nil {
			return err
		}
		c.handleButtons()
		if !dev.Pending() {
			if c.alarm.Read() == gpio.Low {
				c.readRTC()
			}
			c.drain()
		}
	}
	return nil
}

type errPin string

func (e errPin) Error() string {
	return "flipclock: no such pin " + string(e)
}

func main() {
	log.SetFlags(0)
	if err := mainImpl(); err != nil {
		log.Fatal(err)
	}
}
