// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bitString returns the bits of b as a string of 0s and 1s.
func bitString(b *Bits) string {
	var sb strings.Builder
	for i := 0; i < b.Bits(); i++ {
		if b.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func TestNumericSegment(t *testing.T) {
	for _, tt := range []struct {
		in, bits string
	}{
		{"", ""},
		{"0", "0000"},
		{"42", "0101010"},
		{"999", "1111100111"},
		{"8675309", "1101100011" + "1000010010" + "1001"},
		{"01234567", "0000001100" + "0101011001" + "1000011"},
	} {
		seg, err := NumericSegment(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, Numeric, seg.Mode(), tt.in)
		assert.Equal(t, len(tt.in), seg.NumChars(), tt.in)
		assert.Equal(t, len(tt.bits), seg.Len(), tt.in)
		assert.Equal(t, tt.bits, bitString(seg.Data()), tt.in)
	}
	_, err := NumericSegment("12a")
	var se SegmentError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, Numeric, se.Mode)
	assert.Equal(t, "12a", se.Text)
	assert.EqualError(t, err, "qr: non-numeric string `12a`")
}

func TestAlphanumericSegment(t *testing.T) {
	for _, tt := range []struct {
		in, bits string
	}{
		{"", ""},
		{"A", "001010"},
		{"AC-42", "00111001110" + "11100111001" + "000010"},
		{" $%*+-./:", "11001111001" + "11011010101" +
			"11100110001" + "11110001101" + "101100"},
		{"HELLO WORLD", "01100001011" + "01111000110" + "10001011100" +
			"10110111000" + "10011010100" + "001101"},
	} {
		seg, err := AlphanumericSegment(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, Alphanumeric, seg.Mode(), tt.in)
		assert.Equal(t, len(tt.in), seg.NumChars(), tt.in)
		assert.Equal(t, tt.bits, bitString(seg.Data()), tt.in)
	}
	for _, s := range []string{"a", "HELLO, WORLD", "#", "\x00", "\xff", "É"} {
		_, err := AlphanumericSegment(s)
		assert.Equal(t, SegmentError{Alphanumeric, s}, err, s)
	}
}

func TestByteSegment(t *testing.T) {
	data := []byte{0x00, 0xff, 'a'}
	seg := ByteSegment(data)
	data[0] = 1 // segments are immutable
	assert.Equal(t, Byte, seg.Mode())
	assert.Equal(t, 3, seg.NumChars())
	assert.Equal(t, "00000000"+"11111111"+"01100001", bitString(seg.Data()))

	seg.Data().Write(1, 8)
	assert.Equal(t, 24, seg.Len())
}

func TestECISegment(t *testing.T) {
	for _, tt := range []struct {
		in   int
		bits string
	}{
		{0, "00000000"},
		{3, "00000011"},
		{127, "01111111"},
		{128, "10" + "00000010000000"},
		{1000, "10" + "00001111101000"},
		{16383, "10" + "11111111111111"},
		{16384, "110" + "000000100000000000000"},
		{999999, "110" + "011110100001000111111"},
	} {
		seg, err := ECISegment(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, ECI, seg.Mode())
		assert.Equal(t, 0, seg.NumChars())
		assert.Equal(t, tt.bits, bitString(seg.Data()), tt.in)
	}
	for _, n := range []int{-1, 1000000, 1 << 30} {
		_, err := ECISegment(n)
		assert.ErrorIs(t, err, ErrECI, n)
	}
}

func TestIsModes(t *testing.T) {
	assert.True(t, IsNumeric(""))
	assert.True(t, IsNumeric("0123456789"))
	assert.False(t, IsNumeric("12 3"))
	assert.False(t, IsNumeric("١"))
	assert.True(t, IsAlphanumeric("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"))
	assert.False(t, IsAlphanumeric("abc"))
	for c := 0; c < 256; c++ {
		s := string([]byte{byte(c)})
		want := strings.IndexByte("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:", byte(c)) >= 0
		assert.Equal(t, want, IsAlphanumeric(s), "%#x", c)
	}
}

func TestMakeSegments(t *testing.T) {
	assert.Empty(t, MakeSegments(""))
	for _, tt := range []struct {
		in    string
		mode  Mode
		count int
	}{
		{"0", Numeric, 1},
		{"8675309", Numeric, 7},
		{"HELLO WORLD", Alphanumeric, 11},
		{"Hello, world", Byte, 12},
		{"Здравствуй, мир", Byte, 28},
	} {
		segs := MakeSegments(tt.in)
		require.Len(t, segs, 1, tt.in)
		assert.Equal(t, tt.mode, segs[0].Mode(), tt.in)
		assert.Equal(t, tt.count, segs[0].NumChars(), tt.in)
	}
}

func TestTotalBits(t *testing.T) {
	segs := MakeSegments("HELLO WORLD")
	assert.Equal(t, 4+9+61, TotalBits(segs, 1))
	assert.Equal(t, 4+11+61, TotalBits(segs, 10))
	assert.Equal(t, 4+13+61, TotalBits(segs, 27))
	assert.Equal(t, 0, TotalBits(nil, 1))

	eci, err := ECISegment(26)
	require.NoError(t, err)
	segs = append([]Segment{eci}, ByteSegment([]byte("x")))
	assert.Equal(t, 4+8+4+8+8, TotalBits(segs, 1))
	assert.Equal(t, 4+8+4+16+8, TotalBits(segs, 40))

	// 256 bytes overflow the 8 bit count of small versions.
	big := []Segment{ByteSegment(make([]byte, 256))}
	assert.Equal(t, Inf, TotalBits(big, 9))
	assert.Equal(t, 4+16+256*8, TotalBits(big, 10))
	assert.Equal(t, 4+16+2048, big[0].EncodedLength(10))
}
