// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Penalty weights.
const (
	penRun     = 3  // run of 5 same-colour pixels, plus 1 per extra pixel
	penBox     = 3  // 2x2 box of same-colour pixels
	penFinder  = 40 // finder-like pattern
	penBalance = 10 // every 5% of imbalance beyond the first
)

// MaxPenalty is the upper bound of Penalty for any code.
const MaxPenalty = 2568888

// Penalty returns the penalty value for a QR code.  The value is used
// for choosing the mask.  It is the sum of penalties for runs and boxes
// of same-colour pixels, finder-like patterns and colour balance.
//
//   - runs of n >= 5 pixels in a row or column: n-2
//   - possibly overlapping 2x2 boxes: 3
//   - patterns of runs 1:1:3:1:1 (dark first) with light runs of at
//     least 4 on either side: 40 for each side; the area beyond the
//     code counts as light
//   - k% black pixels: 10*(ceil(|k-50|/5)-1)
//
// https://www.nayuki.io/page/creating-a-qr-code-step-by-step
func (c *Code) Penalty() int {
	siz := c.Size
	p := 0
	// rows, then columns
	for dir := 0; dir < 2; dir++ {
		for i := 0; i < siz; i++ {
			r := runs{size: siz}
			for j := 0; j < siz; j++ {
				x, y := j, i
				if dir == 1 {
					x, y = i, j
				}
				p += r.add(c.Black(x, y))
			}
			p += r.end()
		}
	}

	// boxes, counted at the top left pixel
	dark := 0
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			b := c.Black(x, y)
			if b {
				dark++
			}
			if x+1 < siz && y+1 < siz && b == c.Black(x+1, y) &&
				b == c.Black(x, y+1) && b == c.Black(x+1, y+1) {
				p += penBox
			}
		}
	}

	return p + balance(dark, siz*siz)
}

// balance returns the penalty for dark out of total pixels being dark.
func balance(dark, total int) int {
	d := dark*20 - total*10
	if d < 0 {
		d = -d
	}
	k := (d+total-1)/total - 1
	return k * penBalance
}

// runs tracks runs of pixels along one line.  hist holds the lengths
// of the last 7 completed runs, the latest first.  The line starts with
// an empty light run; the first run in hist is extended by the size of
// the code to model the quiet zone.
type runs struct {
	size  int
	black bool
	n     int
	hist  [7]int
}

// add adds a pixel and returns the penalty for runs and finder-like
// patterns completed by it.
func (r *runs) add(black bool) int {
	if black == r.black {
		r.n++
		switch {
		case r.n == 5:
			return penRun
		case r.n > 5:
			return 1
		}
		return 0
	}
	r.push(r.n)
	p := 0
	if !r.black {
		p = r.finders() * penFinder
	}
	r.black, r.n = black, 1
	return p
}

// end terminates the line, extending it with a light run the size of
// the code, and returns the penalty for finder-like patterns.
func (r *runs) end() int {
	n := r.n
	if r.black {
		r.push(n)
		n = 0
	}
	r.push(n + r.size)
	return r.finders() * penFinder
}

func (r *runs) push(n int) {
	if r.hist[0] == 0 {
		n += r.size
	}
	copy(r.hist[1:], r.hist[:6])
	r.hist[0] = n
}

// finders returns the number of finder-like patterns, 0 to 2, ending
// with the light run just pushed or starting with the one before the
// dark core.
func (r *runs) finders() int {
	h := &r.hist
	n := h[1]
	if n == 0 || h[2] != n || h[3] != 3*n || h[4] != n || h[5] != n {
		return 0
	}
	f := 0
	if h[0] >= 4*n && h[6] >= n {
		f++
	}
	if h[6] >= 4*n && h[0] >= n {
		f++
	}
	return f
}
