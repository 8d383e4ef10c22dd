// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// Inf is the encoded length returned by TotalBits for segments that
// cannot be encoded in a version.
const Inf = 1 << 30

// A Segment is a QR code segment: data encoded in one mode.
// Segments are immutable.
type Segment struct {
	mode  Mode
	count int  // number of characters or bytes
	data  Bits // encoded data, without header
}

// SegmentError represents a string that cannot be encoded in a mode.
type SegmentError struct {
	Mode Mode
	Text string
}

func (e SegmentError) Error() string {
	return fmt.Sprintf("qr: non-%s string %#q", e.Mode, e.Text)
}

// Mode returns the encoding mode of seg.
func (seg Segment) Mode() Mode { return seg.mode }

// NumChars returns the character count of seg: the number of digits,
// characters or bytes, or 0 for an ECI segment.
func (seg Segment) NumChars() int { return seg.count }

// Len returns the length of the encoded data in bits, excluding the
// mode indicator and character count.
func (seg Segment) Len() int { return seg.data.nbit }

// Data returns a copy of the encoded data.
func (seg Segment) Data() *Bits {
	return &Bits{b: append([]byte(nil), seg.data.b...), nbit: seg.data.nbit}
}

// EncodedLength returns the length in bits of seg encoded in a code of
// version v, including the header.
func (seg Segment) EncodedLength(v Version) int {
	return 4 + seg.mode.CountLength(v) + seg.data.nbit
}

const alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// Alphanumeric encoding table.  Used after validation.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 010, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

func isDigit(c byte) bool { return c-'0' < 10 }

func isAlpha(c byte) bool { return alphamask>>(uint32(c)-' ')&1 != 0 }

// IsNumeric reports whether s is encodable in numeric mode.
func IsNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// IsAlphanumeric reports whether s is encodable in alphanumeric mode.
func IsAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isAlpha(s[i]) {
			return false
		}
	}
	return true
}

// NumericSegment returns a numeric mode segment encoding the digits.
// Three digits are encoded in 10 bits, the last two or one in 7 or 4.
func NumericSegment(digits string) (Segment, error) {
	if !IsNumeric(digits) {
		return Segment{}, SegmentError{Numeric, digits}
	}
	seg := Segment{mode: Numeric, count: len(digits)}
	seg.data.Grow((len(digits)*10 + 23) / 24)
	s := digits
	for ; len(s) >= 3; s = s[3:] {
		seg.data.Write(uint32(s[0]-'0')*100+uint32(s[1]-'0')*10+
			uint32(s[2]-'0'), 10)
	}
	switch len(s) {
	case 2:
		seg.data.Write(uint32(s[0]-'0')*10+uint32(s[1]-'0'), 7)
	case 1:
		seg.data.Write(uint32(s[0]-'0'), 4)
	}
	return seg, nil
}

// AlphanumericSegment returns an alphanumeric mode segment encoding
// text.  Pairs of characters are encoded in 11 bits, the last odd
// character in 6.
func AlphanumericSegment(text string) (Segment, error) {
	if !IsAlphanumeric(text) {
		return Segment{}, SegmentError{Alphanumeric, text}
	}
	seg := Segment{mode: Alphanumeric, count: len(text)}
	seg.data.Grow((len(text)*11 + 15) / 16)
	s := text
	for ; len(s) >= 2; s = s[2:] {
		seg.data.Write(uint32(alpha[s[0]&0x3f])*45+
			uint32(alpha[s[1]&0x3f]), 11)
	}
	if len(s) == 1 {
		seg.data.Write(uint32(alpha[s[0]&0x3f]), 6)
	}
	return seg, nil
}

// ByteSegment returns a byte mode segment encoding data.
func ByteSegment(data []byte) Segment {
	seg := Segment{mode: Byte, count: len(data)}
	seg.data.b = append([]byte(nil), data...)
	seg.data.nbit = len(data) * 8
	return seg
}

// ECISegment returns an ECI mode segment setting the Extended Channel
// Interpretation assignment number.  The number must be less than
// 1000000.
func ECISegment(assign int) (Segment, error) {
	seg := Segment{mode: ECI}
	switch {
	case assign < 0:
		return Segment{}, ErrECI
	case assign < 1<<7:
		seg.data.Write(uint32(assign), 8)
	case assign < 1<<14:
		seg.data.Write(0b10, 2)
		seg.data.Write(uint32(assign), 14)
	case assign < 1e6:
		seg.data.Write(0b110, 3)
		seg.data.Write(uint32(assign), 21)
	default:
		return Segment{}, ErrECI
	}
	return seg, nil
}

// MakeSegments returns the segments for text in the most compact
// single mode, trying numeric, alphanumeric and byte mode in that
// order.  Empty text produces no segments.
func MakeSegments(text string) []Segment {
	var seg Segment
	switch {
	case text == "":
		return nil
	case IsNumeric(text):
		seg, _ = NumericSegment(text)
	case IsAlphanumeric(text):
		seg, _ = AlphanumericSegment(text)
	default:
		seg = ByteSegment([]byte(text))
	}
	return []Segment{seg}
}

// TotalBits returns the encoded length in bits of the segments in a
// code of version v, including headers, or Inf if the character count
// of any segment overflows its count field.
func TotalBits(segs []Segment, v Version) int {
	n := 0
	for _, seg := range segs {
		cl := seg.mode.CountLength(v)
		if seg.count >= 1<<cl {
			return Inf
		}
		if n += 4 + cl + seg.data.nbit; n >= Inf {
			return Inf
		}
	}
	return n
}
