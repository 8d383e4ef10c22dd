// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// CapacityError reports data that does not fit in any allowed version.
// It wraps ErrTooLong.
type CapacityError struct {
	Bits  int     // encoded length at Max, or Inf
	Level Level   // error correction level
	Max   Version // largest version tried
}

func (e *CapacityError) Error() string {
	if e.Bits >= Inf {
		return fmt.Sprintf("qr: segment too long for version %s-%s",
			e.Max, e.Level)
	}
	return fmt.Sprintf("qr: cannot encode %d bits into version %s-%s "+
		"(%d bits)", e.Bits, e.Max, e.Level, e.Max.DataBits(e.Level))
}

func (e *CapacityError) Unwrap() error { return ErrTooLong }

// ChooseVersion returns the smallest version between min and max
// holding segs at level l, and the encoded length of segs in bits.
// If boost is set, the level is raised to the highest of M, Q and H
// still holding the data in the chosen version.
func ChooseVersion(segs []Segment, l Level, min, max Version, boost bool) (Version, Level, int, error) {
	if !l.IsValid() {
		return 0, 0, 0, ErrLevel
	}
	if !min.IsValid() || !max.IsValid() || min > max {
		return 0, 0, 0, ErrVersion
	}
	v := min
	n := TotalBits(segs, v)
	for n > v.DataBits(l) {
		if v == max {
			return 0, 0, 0, &CapacityError{n, l, max}
		}
		v++
		n = TotalBits(segs, v)
	}
	if boost {
		for _, ll := range [...]Level{M, Q, H} {
			if ll > l && n <= v.DataBits(ll) {
				l = ll
			}
		}
	}
	return v, l, n, nil
}

// Assemble returns the data codewords for segs in a code of version v
// at level l: segment headers and data followed by terminator and
// padding.  The segments must fit.
func Assemble(segs []Segment, v Version, l Level) []byte {
	nb := v.DataBits(l)
	b := NewBits(v, l)
	for _, seg := range segs {
		cl := seg.mode.CountLength(v)
		if seg.count >= 1<<cl {
			panic("qr: internal error: character count overflow")
		}
		b.Write(uint32(seg.mode.Indicator()), 4)
		b.Write(uint32(seg.count), cl)
		b.Append(&seg.data)
	}
	if b.nbit > nb {
		panic("qr: internal error: too much data")
	}
	b.Write(0, min(4, nb-b.nbit)) // terminator
	b.Write(0, -b.nbit&7)
	for pad := uint32(0xec); b.nbit < nb; pad ^= 0xec ^ 0x11 {
		b.Write(pad, 8)
	}
	if len(b.Bytes()) != v.DataCodewords(l) {
		panic("qr: internal error: wrong data length")
	}
	return b.b
}
