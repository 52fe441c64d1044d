// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panelsim

import (
	"io"

	"github.com/fogleman/gg"
)

const (
	cellPx = 16
	dotPx  = 6.5
)

// WritePNG writes a dot-matrix snapshot of the panels to w.
func (s *Sim) WritePNG(w io.Writer) error {
	s.mu.Lock()
	cols := s.groups * groupCols
	dots := append([]bool(nil), s.dots...)
	s.mu.Unlock()

	dc := gg.NewContext(cols*cellPx, rows*cellPx)
	dc.SetRGB255(16, 16, 16)
	dc.Clear()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if dots[row*cols+col] {
				dc.SetRGB255(int(dotOn.R), int(dotOn.G), int(dotOn.B))
			} else {
				dc.SetRGB255(int(dotOff.R), int(dotOff.G), int(dotOff.B))
			}
			dc.DrawCircle(float64(col*cellPx+cellPx/2), float64(row*cellPx+cellPx/2), dotPx)
			dc.Fill()
		}
	}
	return dc.EncodePNG(w)
}
