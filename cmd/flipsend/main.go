// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command flipsend writes display messages to a serial connected flip-dot
// sign.
//
// By default the message is sent as protocol text using the sign's builtin
// 5x4 font. With -font, the message is rasterized with a TrueType font
// instead and sent as raw pixel columns, which allows glyphs the sign does
// not carry. Without -dev the protocol bytes are written to stdout.
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/ndf-zz/flipdrv/flipdot"
	"github.com/ndf-zz/flipdrv/panelsim"
	"github.com/ndf-zz/flipdrv/term"
	"github.com/tarm/serial"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

func mainImpl() error {
	dev := flag.String("dev", "", "serial device of the sign (default stdout)")
	fontPath := flag.String("font", "", "TrueType font to rasterize with")
	size := flag.Float64("size", 6, "font size in points")
	preview := flag.String("preview", "", "write a PNG preview to this file")
	groups := flag.Int("groups", flipdot.DefaultOpts.Groups, "panel groups, for the preview")
	bell := flag.Bool("bell", false, "blacken the display instead of sending text")
	flag.Parse()

	var msg []byte
	switch {
	case *bell:
		msg = []byte{0x07}
	case *fontPath != "":
		text := strings.Join(flag.Args(), " ")
		cols, err := rasterize(text, *fontPath, *size, *groups*flipdot.GroupCols)
		if err != nil {
			return err
		}
		msg = append(msg, 0x0c)
		msg = append(msg, cols...)
		msg = append(msg, 0x04)
	default:
		text := strings.ToUpper(strings.Join(flag.Args(), " "))
		msg = append(msg, 0x0c)
		msg = append(msg, []byte(text)...)
		msg = append(msg, 0x04)
	}

	if *preview != "" {
		if err := writePreview(*preview, msg, *groups); err != nil {
			return err
		}
	}

	var w io.Writer = os.Stdout
	if *dev != "" {
		port, err := serial.OpenPort(&serial.Config{Name: *dev, Baud: 9600})
		if err != nil {
			return err
		}
		defer port.Close()
		w = port
	}
	_, err := w.Write(msg)
	return err
}

// rasterize draws text with a TrueType face onto a 5 row strip and packs
// each column into a raw-column protocol byte, bit 0 at the bottom row.
func rasterize(text, path string, size float64, maxCols int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("flipsend: %v", err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size})
	defer face.Close()

	img := image.NewGray(image.Rect(0, 0, maxCols, flipdot.Rows))
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(0, flipdot.Rows-1),
	}
	width := d.MeasureString(text).Ceil()
	if width > maxCols {
		width = maxCols
	}
	d.DrawString(text)

	out := make([]byte, 0, width)
	for col := 0; col < width; col++ {
		var bits byte
		for row := 0; row < flipdot.Rows; row++ {
			if img.GrayAt(col, row).Y >= 0x80 {
				bits |= 1 << uint(flipdot.Rows-1-row)
			}
		}
		out = append(out, 0x80|bits)
	}
	return out, nil
}

// writePreview replays the message on an emulated chain and snapshots it.
func writePreview(path string, msg []byte, groups int) error {
	sim := panelsim.New(groups)
	opts := flipdot.DefaultOpts
	opts.Groups = groups
	dev, err := flipdot.NewSPI(sim, sim.Latch(), &opts)
	if err != nil {
		return err
	}
	t := &term.Terminal{Dev: dev}
	pending := msg
	// Feed and tick until the message is consumed and the sweep ends.
	for len(pending) > 0 || dev.Pending() {
		for !dev.Pending() && len(pending) > 0 {
			t.Feed(pending[0])
			pending = pending[1:]
		}
		if err := dev.Tick(); err != nil {
			return err
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return sim.WritePNG(out)
}

func main() {
	log.SetFlags(0)
	if err := mainImpl(); err != nil {
		log.Fatal(err)
	}
}
