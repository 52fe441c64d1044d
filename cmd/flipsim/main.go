// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command flipsim runs the text protocol against an emulated panel chain
// and renders the dots to the terminal.
//
// Pipe protocol bytes in and watch the sweep:
//
//	printf '\014HELLO\004' | flipsim -rate 100
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/ndf-zz/flipdrv/flipdot"
	"github.com/ndf-zz/flipdrv/panelsim"
	"github.com/ndf-zz/flipdrv/term"
)

func mainImpl() error {
	groups := flag.Int("groups", flipdot.DefaultOpts.Groups, "number of 8 column panel groups")
	rate := flag.Int("rate", 20, "tick rate in Hz")
	live := flag.Bool("live", false, "render after every latched frame")
	flag.Parse()

	sim := panelsim.New(*groups)
	opts := flipdot.DefaultOpts
	opts.Groups = *groups
	dev, err := flipdot.NewSPI(sim, sim.Latch(), &opts)
	if err != nil {
		return err
	}
	t := &term.Terminal{Dev: dev}

	var q term.Queue
	eof := make(chan struct{})
	go func() {
		defer close(eof)
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				for !q.Push(buf[0]) {
					time.Sleep(time.Second / time.Duration(*rate))
				}
			}
			if err != nil {
				if err != io.EOF {
					log.Printf("flipsim: %v", err)
				}
				return
			}
		}
	}()

	done := false
	tick := time.NewTicker(time.Second / time.Duration(*rate))
	defer tick.Stop()
	for range tick.C {
		wasBusy := dev.Busy()
		if err := dev.Tick(); err != nil {
			return err
		}
		if *live && dev.Busy() {
			_ = sim.Render(nil)
		}
		if !dev.Pending() {
			if wasBusy {
				if err := sim.Render(nil); err != nil {
					return err
				}
			}
			for !dev.Pending() {
				ch, ok := q.Pop()
				if !ok {
					break
				}
				t.Feed(ch)
			}
		}
		select {
		case <-eof:
			done = true
		default:
		}
		if done && q.Empty() && !dev.Pending() {
			break
		}
	}
	for _, f := range sim.Faults() {
		log.Printf("flipsim: fault: %s", f)
	}
	return sim.Render(nil)
}

func main() {
	log.SetFlags(0)
	if err := mainImpl(); err != nil {
		log.Fatal(err)
	}
}
