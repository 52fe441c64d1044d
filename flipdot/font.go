// Copyright 2026 The Flipdrv Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flipdot

// font5x4 packs two 5x4 glyphs per byte column: the low nibble holds
// characters 0x20..0x3f, the high nibble 0x40..0x5f. Five bytes per glyph,
// one row per byte, top row first, bit 0 at the leftmost column.
//
// Charset:
//
//	 !"#$%+'()*+,-./
//	0123456789:;<=>?
//	@ABCDEFGHIJKLMNO
//	PQRSTUVWXYZ[|]^_
//
// Hash renders as an inverse checker board fill, ampersand as '+', and
// backslash as a vertical bar.
var font5x4 = [160]byte{
	0x60, 0x90, 0xd0, 0x10, 0x60, // SP @
	0x62, 0x92, 0xf2, 0x90, 0x92, // !  A
	0x75, 0x95, 0x70, 0x90, 0x70, // "  B
	0xe5, 0x1a, 0x15, 0x1a, 0xe5, // #  C
	0x7e, 0x93, 0x96, 0x9c, 0x77, // $  D
	0xf9, 0x18, 0x76, 0x11, 0xf9, // %  E
	0xf0, 0x12, 0x77, 0x12, 0x10, // &  F
	0xe2, 0x12, 0xd0, 0x90, 0x60, // '  G
	0x94, 0x92, 0xf2, 0x92, 0x94, // (  H
	0x72, 0x24, 0x24, 0x24, 0x72, // )  I
	0x80, 0x85, 0x82, 0x95, 0x60, // *  J
	0x90, 0x52, 0x37, 0x52, 0x90, // +  K
	0x10, 0x10, 0x10, 0x12, 0xf1, // ,  L
	0x90, 0xf0, 0x97, 0x90, 0x90, // -  M
	0x90, 0xb0, 0xd0, 0x90, 0x92, // .  N
	0x68, 0x94, 0x92, 0x91, 0x61, // /  O
	0x76, 0x99, 0x79, 0x19, 0x16, // 0  P
	0x62, 0x93, 0x92, 0x52, 0xa7, // 1  Q
	0x76, 0x99, 0x74, 0x52, 0x9f, // 2  R
	0xe7, 0x18, 0x66, 0x88, 0x77, // 3  S
	0x79, 0x29, 0x2f, 0x28, 0x28, // 4  T
	0x9f, 0x91, 0x97, 0x98, 0x67, // 5  U
	0x96, 0x91, 0x97, 0x69, 0x66, // 6  V
	0x9f, 0x98, 0x94, 0xf2, 0x92, // 7  W
	0x96, 0x99, 0x66, 0x99, 0x96, // 8  X
	0x56, 0x59, 0x2e, 0x28, 0x26, // 9  Y
	0xf0, 0x42, 0x20, 0x12, 0xf0, // :  Z
	0x60, 0x22, 0x20, 0x22, 0x61, // ;  [
	0x24, 0x22, 0x21, 0x22, 0x24, // <  |
	0x60, 0x47, 0x40, 0x47, 0x60, // =  ]
	0x22, 0x54, 0x08, 0x04, 0x02, // >  ^
	0x06, 0x09, 0x04, 0x00, 0xf4, // ?  _
}
