// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// AutoMask requests choosing the mask with the lowest penalty.
const AutoMask = -1

// NumMasks is the number of QR mask patterns.
const NumMasks = 8

// Mask patterns:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
//
// A pixel at column x and row y is inverted where the mask is black.
var masks = [NumMasks]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (x/3+y/2)%2 == 0 },
	func(x, y int) bool { return x*y%2+x*y%3 == 0 },
	func(x, y int) bool { return (x*y%2+x*y%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+x*y%3)%2 == 0 },
}

// applyMask inverts the data pixels of g selected by mask.
// Applying the same mask twice restores g.
func (g *grid) applyMask(mask int) {
	if mask < 0 || mask >= NumMasks {
		panic(ErrMask)
	}
	m := masks[mask]
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			if m(x, y) && !g.isFunction(x, y) {
				g.flip(x, y)
			}
		}
	}
}

// code returns a Code sharing the bitmap of g.
func (g *grid) code() *Code {
	return &Code{Bitmap: g.bitmap, Size: g.size, Stride: g.stride}
}

// chooseMask returns the mask giving g the lowest penalty, with format
// information for level l drawn.  g is left unmasked.  The lowest mask
// wins a tie.
func (g *grid) chooseMask(l Level) int {
	c := g.code()
	best, pen := 0, 1<<30
	for mask := 0; mask < NumMasks; mask++ {
		g.applyMask(mask)
		g.drawFormat(l, mask)
		if p := c.Penalty(); p < pen {
			best, pen = mask, p
		}
		g.applyMask(mask)
	}
	return best
}
