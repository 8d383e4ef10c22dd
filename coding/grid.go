// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A grid is a code under construction.  Alongside the bitmap it keeps
// a map of function pixels (position, alignment and timing patterns,
// format and version information), which are not data and not masked.
type grid struct {
	size   int    // number of pixels on a side
	stride int    // number of bytes per row
	bitmap []byte // 1 is black, 0 is white
	fmap   []byte // 1 is function pixel, 0 is data or checksum
}

func newGrid(v Version) *grid {
	siz := v.Size()
	stride := (siz + 7) >> 3
	n := siz * stride
	b := make([]byte, 2*n)
	return &grid{size: siz, stride: stride, bitmap: b[:n:n], fmap: b[n:]}
}

func (g *grid) pos(x, y int) (int, byte) {
	return y*g.stride + x>>3, 0x80 >> (x & 7)
}

func (g *grid) black(x, y int) bool {
	off, bit := g.pos(x, y)
	return g.bitmap[off]&bit != 0
}

func (g *grid) isFunction(x, y int) bool {
	off, bit := g.pos(x, y)
	return g.fmap[off]&bit != 0
}

func (g *grid) set(x, y int, black bool) {
	off, bit := g.pos(x, y)
	if black {
		g.bitmap[off] |= bit
	} else {
		g.bitmap[off] &^= bit
	}
}

// setFunction sets a function pixel.
func (g *grid) setFunction(x, y int, black bool) {
	g.set(x, y, black)
	off, bit := g.pos(x, y)
	g.fmap[off] |= bit
}

func (g *grid) flip(x, y int) {
	off, bit := g.pos(x, y)
	g.bitmap[off] ^= bit
}

// drawFunctionPatterns draws timing, position and alignment patterns,
// version information and format information for mask 0.  The format
// information is redrawn after choosing the mask.
func (g *grid) drawFunctionPatterns(v Version, l Level) {
	siz := g.size
	// Timing patterns, partly overwritten by position boxes.
	for i := 0; i < siz; i++ {
		g.setFunction(6, i, i&1 == 0)
		g.setFunction(i, 6, i&1 == 0)
	}

	// Position boxes, with separators.
	g.drawPositionBox(3, 3)
	g.drawPositionBox(siz-4, 3)
	g.drawPositionBox(3, siz-4)

	// Alignment boxes, except where position boxes are.
	pos := v.AlignmentPositions()
	last := len(pos) - 1
	for i, x := range pos {
		for j, y := range pos {
			if i == 0 && (j == 0 || j == last) || i == last && j == 0 {
				continue
			}
			g.drawAlignBox(x, y)
		}
	}

	g.drawFormat(l, 0)
	g.drawVersion(v)
}

// drawPositionBox draws a position box centred at x, y and the white
// separator around it, clipped to the code.
func (g *grid) drawPositionBox(x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			xx, yy := x+dx, y+dy
			if 0 <= xx && xx < g.size && 0 <= yy && yy < g.size {
				d := max(abs(dx), abs(dy))
				g.setFunction(xx, yy, d != 2 && d != 4)
			}
		}
	}
}

// drawAlignBox draws an alignment box centred at x, y.
func (g *grid) drawAlignBox(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			g.setFunction(x+dx, y+dy, max(abs(dx), abs(dy)) != 1)
		}
	}
}

// formatBits returns the 15 bit format information for level l and
// mask: 5 data bits and a BCH(15,5) code, masked with 0x5412.
func formatBits(l Level, mask int) int {
	const poly = 0x537
	data := l.FormatBits()<<3 | mask
	rem := data
	for i := 0; i < 10; i++ {
		rem = rem<<1 ^ rem>>9*poly
	}
	return (data<<10 | rem) ^ 0x5412
}

// drawFormat draws both copies of the format information, and the
// lonely black pixel next to the lower one.
func (g *grid) drawFormat(l Level, mask int) {
	fb := formatBits(l, mask)
	bit := func(i int) bool { return fb>>i&1 != 0 }
	siz := g.size
	// Around the top left position box.
	for i := 0; i < 6; i++ {
		g.setFunction(8, i, bit(i))
	}
	g.setFunction(8, 7, bit(6))
	g.setFunction(8, 8, bit(7))
	g.setFunction(7, 8, bit(8))
	for i := 9; i < 15; i++ {
		g.setFunction(14-i, 8, bit(i))
	}
	// Next to the top right and bottom left position boxes.
	for i := 0; i < 8; i++ {
		g.setFunction(siz-1-i, 8, bit(i))
	}
	for i := 8; i < 15; i++ {
		g.setFunction(8, siz-15+i, bit(i))
	}
	g.setFunction(8, siz-8, true)
}

// versionBits returns the 18 bit version information for v:
// 6 data bits and a BCH(18,6) code.
func versionBits(v Version) int {
	const poly = 0x1f25
	rem := int(v)
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ rem>>11*poly
	}
	return int(v)<<12 | rem
}

// drawVersion draws both 3x6 copies of the version information for
// versions 7 and up.
func (g *grid) drawVersion(v Version) {
	if v < 7 {
		return
	}
	vb := versionBits(v)
	for i := 0; i < 18; i++ {
		black := vb>>i&1 != 0
		a, b := g.size-11+i%3, i/3
		g.setFunction(a, b, black)
		g.setFunction(b, a, black)
	}
}

// scan calls f for every data pixel in zigzag scan order: in pairs of
// columns from right to left, alternately upwards and downwards,
// right column first in each row.  The vertical timing column is
// skipped.
func (g *grid) scan(f func(x, y int)) {
	siz := g.size
	for right := siz - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		up := (right+1)&2 == 0
		for vert := 0; vert < siz; vert++ {
			y := vert
			if up {
				y = siz - 1 - vert
			}
			for x := right; x >= right-1; x-- {
				if !g.isFunction(x, y) {
					f(x, y)
				}
			}
		}
	}
}

// drawCodewords writes the bits of data to the data pixels in scan
// order, most significant bit first.  Remainder pixels stay white.
func (g *grid) drawCodewords(data []byte) {
	i, n := 0, len(data)*8
	g.scan(func(x, y int) {
		if i < n {
			g.set(x, y, data[i>>3]>>(7&^i)&1 != 0)
			i++
		}
	})
	if i != n {
		panic("qr: internal error: codewords do not fit")
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
