// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:generate sh -c "go run gen.go | gofmt > tables.go"

// Package coding implements low-level QR coding details.
package coding // import "github.com/unixdj/qrcode/coding"

import (
	"errors"
	"strconv"

	"github.com/unixdj/qrcode/gf256"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")
	ErrMask    = errors.New("qr: invalid mask")
	ErrECI     = errors.New("qr: invalid eci number")
	ErrTooLong = errors.New("qr: data too long")
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 pixels on a side.
// Versions run from 1 to 40: the larger the version,
// the more information the code can store.
type Version int

const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

// IsValid reports whether v is between MinVersion and MaxVersion.
func (v Version) IsValid() bool { return MinVersion <= v && v <= MaxVersion }

func (v Version) check() {
	if !v.IsValid() {
		panic(ErrVersion)
	}
}

// Size returns the number of pixels on a side of a code of version v.
func (v Version) Size() int { return int(v)*4 + 17 }

// QR version size classes.
const (
	Class0 = iota // QR versions 1 to 9
	Class1        // QR versions 10 to 26
	Class2        // QR versions 27 to 40
)

// SizeClass returns the size class of v, as documented under Class0.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	return Class2
}

// RawDataModules returns the number of pixels available for data and
// error correction in a code of version v, after subtracting
// function patterns.  The result includes the remainder bits, if any,
// so it is not always a multiple of 8.
func (v Version) RawDataModules() int {
	v.check()
	n := int(v)
	r := (16*n+128)*n + 64
	if n >= 2 {
		na := n/7 + 2
		r -= (25*na-10)*na - 55
		if n >= 7 {
			r -= 36 // version information
		}
	}
	return r
}

// RawCodewords returns the number of 8-bit codewords, data and error
// correction, stored in a code of version v.
func (v Version) RawCodewords() int { return v.RawDataModules() / 8 }

// ECCBlocks returns the number of error correction blocks and the
// number of error correction codewords per block for v at level l.
func (v Version) ECCBlocks(l Level) (nblock, check int) {
	v.check()
	l.check()
	return int(numBlocks[l][v]), int(eccPerBlock[l][v])
}

// DataCodewords returns the number of data bytes that can be
// stored in a QR code with the given version and level.
func (v Version) DataCodewords(l Level) int {
	nblock, check := v.ECCBlocks(l)
	return v.RawCodewords() - nblock*check
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level.
func (v Version) DataBits(l Level) int { return v.DataCodewords(l) * 8 }

// AlignmentPositions returns the ascending coordinates of alignment
// pattern centres on either axis.  Version 1 has none.
func (v Version) AlignmentPositions() []int {
	v.check()
	if v == 1 {
		return nil
	}
	n := int(v)/7 + 2
	step := 26
	if v != 32 {
		step = (int(v)*4 + n*2 + 1) / (n*2 - 2) * 2
	}
	pos := make([]int, n)
	pos[0] = 6
	for i, p := n-1, v.Size()-7; i > 0; i-- {
		pos[i] = p
		p -= step
	}
	return pos
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string {
	if l.IsValid() {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// IsValid reports whether l is one of L, M, Q and H.
func (l Level) IsValid() bool { return L <= l && l <= H }

func (l Level) check() {
	if !l.IsValid() {
		panic(ErrLevel)
	}
}

// FormatBits returns the 2 bit level indicator used in format
// information: L=01, M=00, Q=11, H=10.
func (l Level) FormatBits() int { return int(l) ^ 1 }

// Predefined encoding modes.
const (
	Numeric      Mode = iota // numeric mode, digits
	Alphanumeric             // alphanumeric mode, digits, A-Z and " $%*+-./:"
	Byte                     // byte mode, any data
	ECI                      // eci mode, raw segment
	nmodes
)

// A Mode is a QR segment encoding mode.
type Mode int

var modes = [nmodes]struct {
	name      string
	indicator byte
	// countLength lists lengths of the character count field in
	// the three version size classes.
	countLength [3]byte
}{
	Numeric:      {"numeric", 1, [3]byte{10, 12, 14}},
	Alphanumeric: {"alphanumeric", 2, [3]byte{9, 11, 13}},
	Byte:         {"byte", 4, [3]byte{8, 16, 16}},
	ECI:          {"eci", 7, [3]byte{0, 0, 0}},
}

// IsValid reports whether mode is one of the predefined modes.
func (mode Mode) IsValid() bool { return 0 <= mode && mode < nmodes }

func (mode Mode) String() string {
	if mode.IsValid() {
		return modes[mode].name
	}
	return strconv.Itoa(int(mode))
}

// Indicator returns the 4 bit mode indicator.
func (mode Mode) Indicator() int { return int(modes[mode].indicator) }

// CountLength returns the length in bits of the character count
// field for mode in a code of version v.
func (mode Mode) CountLength(v Version) int {
	return int(modes[mode].countLength[v.SizeClass()])
}

// Bits is a buffer of bits, written most significant bit first.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with enough capacity for the data of a QR code
// of the given version and level.
func NewBits(v Version, l Level) *Bits {
	return &Bits{b: make([]byte, 0, v.DataCodewords(l))}
}

func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Bits returns the number of bits in b.
func (b *Bits) Bits() int {
	return b.nbit
}

// Bytes returns the contents of b.  It panics if the number of bits
// is not a multiple of 8.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Bit reports whether bit i of b is set.
func (b *Bits) Bit(i int) bool {
	if i < 0 || i >= b.nbit {
		panic("qr: bit index out of range")
	}
	return b.b[i>>3]>>(7&^i)&1 != 0
}

func (b *Bits) growTo(n int) {
	for cap(b.b) < n {
		b.b = append(b.b[:cap(b.b)], 0)[:len(b.b)]
	}
}

func (b *Bits) Grow(n int) { b.growTo(len(b.b) + n) }

// Write appends the nbit low bits of v to b.  v must fit in nbit bits.
func (b *Bits) Write(v uint32, nbit int) {
	if nbit < 0 || nbit > 32 || nbit < 32 && v>>nbit != 0 {
		panic("qr: value out of range")
	}
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// Append appends the contents of c to b.
func (b *Bits) Append(c *Bits) {
	if b.nbit&7 == 0 {
		b.b = append(b.b, c.b...)
		b.nbit += c.nbit
		return
	}
	n := c.nbit
	for _, v := range c.b {
		if n < 8 {
			b.Write(uint32(v>>(8-n)), n)
			break
		}
		b.Write(uint32(v), 8)
		n -= 8
	}
}
