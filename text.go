// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import "strings"

// halfBlocks[top<<1|bottom] displays two vertically adjacent pixels.
var halfBlocks = [4]string{" ", "▄", "▀", "█"}

// String returns the code as text, two pixels per character using
// Unicode half blocks, with a quiet zone of c.Border pixels.  Black
// pixels are drawn in the foreground colour of the terminal, unless
// c.Reverse is set.
func (c *Code) String() string {
	bord := c.Border
	pix := c.Size + 2*bord
	var inv int
	if c.Reverse {
		inv = 3
	}
	var b strings.Builder
	b.Grow((pix*3 + 1) * (pix + 1) / 2)
	for y := -bord; y < c.Size+bord; y += 2 {
		for x := -bord; x < c.Size+bord; x++ {
			var i int
			if c.Black(x, y) {
				i = 2
			}
			if c.Black(x, y+1) {
				i |= 1
			}
			if y+1 == c.Size+bord {
				// Last row of an odd height image.
				b.WriteString(halfBlocks[i^inv&2])
			} else {
				b.WriteString(halfBlocks[i^inv])
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ASCII returns the code as text, drawing each black pixel as "##" and
// each white one as two spaces, or the other way around if c.Reverse is
// set.
func (c *Code) ASCII() string {
	bord := c.Border
	pix := c.Size + 2*bord
	ink := [2]byte{' ', '#'}
	if c.Reverse {
		ink[0], ink[1] = ink[1], ink[0]
	}
	b := make([]byte, 0, (pix*2+1)*pix)
	for y := -bord; y < c.Size+bord; y++ {
		for x := -bord; x < c.Size+bord; x++ {
			p := ink[0]
			if c.Black(x, y) {
				p = ink[1]
			}
			b = append(b, p, p)
		}
		b = append(b, '\n')
	}
	return string(b)
}
