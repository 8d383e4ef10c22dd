// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeHelloWorld(t *testing.T) {
	c, err := EncodeSegments(MakeSegments("HELLO WORLD"), M,
		MinVersion, MaxVersion, AutoMask, true)
	require.NoError(t, err)
	assert.Equal(t, Version(1), c.Version)
	assert.Equal(t, Q, c.Level)
	assert.Equal(t, 0, c.Mask)
	assert.Equal(t, 21, c.Size)
	assert.Equal(t, 3, c.Stride)
	picture := []string{
		"#######.##....#######",
		"#.....#.#..#..#.....#",
		"#.###.#.#..##.#.###.#",
		"#.###.#.#.....#.###.#",
		"#.###.#.#.#...#.###.#",
		"#.....#...#...#.....#",
		"#######.#.#.#.#######",
		"........#............",
		".##.#.##....#.#.#####",
		".#......####....#...#",
		"..##.###.##...#.##...",
		".##.##.#..##.#.#.###.",
		"#...#.#.#.###.###.#.#",
		"........##.#..#...#.#",
		"#######.#.#....#.##..",
		"#.....#..#.##.##.#...",
		"#.###.#.#.#...#######",
		"#.###.#..#.#.#.#...#.",
		"#.###.#.#..#.###.#..#",
		"#.....#.#.####...#.##",
		"#######....#.###....#",
	}
	assert.Equal(t, strings.Join(picture, "\n"), dump(c))
	assert.False(t, c.Black(-1, 0))
	assert.False(t, c.Black(0, 21))
	assert.True(t, c.Black(0, 0))

	// Each mask scores as it did during selection.
	want := [NumMasks]int{1067, 1230, 1266, 1161, 1339, 1276, 1074, 1278}
	for mask, pen := range want {
		c, err := EncodeSegments(MakeSegments("HELLO WORLD"), M,
			MinVersion, MaxVersion, mask, true)
		require.NoError(t, err)
		assert.Equal(t, mask, c.Mask)
		assert.Equal(t, pen, c.Penalty(), "mask %d", mask)
	}
}

func dump(c *Code) string {
	var sb strings.Builder
	for y := 0; y < c.Size; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < c.Size; x++ {
			if c.Black(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

func TestEncodeGolden(t *testing.T) {
	for _, tt := range []struct {
		text    string
		l       Level
		boost   bool
		version Version
		level   Level
		mask    int
		sum     string // SHA-256 of Bitmap
	}{
		{
			"https://www.nayuki.io/", L, true, 2, M, 6,
			"332b75648902aea16e7849f20e0165b5772092214fd2d1bc0377f581fad97202",
		},
		{
			strings.Repeat("0123456789", 30), M, true, 8, M, 4,
			"552f5038c29c39b2185de964988c8cc5a8bb63e22ec735a6c677ef037a41a0c4",
		},
		{
			strings.Repeat("ABCDEF1234 ", 60), L, true, 14, L, 0,
			"a024f4a07455bc268e21a769011a79f3846b840c67efb36625e48dc7727f8fd4",
		},
		{
			strings.Repeat("The quick brown fox jumps over the lazy dog. ", 10),
			Q, false, 20, Q, 2,
			"a9c64c3ff8f2a73d932c95ebc19da218c0452bfebc81e42b41b237034dfb3b7e",
		},
	} {
		c, err := EncodeSegments(MakeSegments(tt.text), tt.l,
			MinVersion, MaxVersion, AutoMask, tt.boost)
		require.NoError(t, err)
		assert.Equal(t, tt.version, c.Version, tt.text)
		assert.Equal(t, tt.level, c.Level, tt.text)
		assert.Equal(t, tt.mask, c.Mask, tt.text)
		sum := sha256.Sum256(c.Bitmap)
		assert.Equal(t, tt.sum, hex.EncodeToString(sum[:]), tt.text)
		assert.LessOrEqual(t, c.Penalty(), MaxPenalty)
	}
}

func TestEncodeEmpty(t *testing.T) {
	c, err := EncodeSegments(MakeSegments(""), L,
		MinVersion, MaxVersion, AutoMask, true)
	require.NoError(t, err)
	assert.Equal(t, Version(1), c.Version)
	assert.Equal(t, H, c.Level)
	assert.Equal(t, 6, c.Mask)
}

func TestEncodeSegmentsErrors(t *testing.T) {
	segs := MakeSegments("HELLO WORLD")
	for _, mask := range []int{-2, 8, 100} {
		_, err := EncodeSegments(segs, L, MinVersion, MaxVersion, mask, true)
		assert.ErrorIs(t, err, ErrMask, mask)
	}
	_, err := EncodeSegments(segs, L, 2, 1, AutoMask, true)
	assert.ErrorIs(t, err, ErrVersion)
	_, err = EncodeSegments(segs, L, 0, 1, 9, true)
	assert.ErrorIs(t, err, ErrMask, "mask is checked first")
	_, err = EncodeSegments([]Segment{ByteSegment(make([]byte, 100))}, H,
		1, 5, AutoMask, true)
	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, Version(5), ce.Max)
}

func TestEncoder(t *testing.T) {
	_, err := NewEncoder(0, L)
	assert.ErrorIs(t, err, ErrVersion)
	_, err = NewEncoder(1, -1)
	assert.ErrorIs(t, err, ErrLevel)

	e, err := NewEncoder(1, Q)
	require.NoError(t, err)
	assert.Equal(t, Version(1), e.Version())
	assert.Equal(t, Q, e.Level())
	seg, err := AlphanumericSegment("HELLO WORLD")
	require.NoError(t, err)
	c, err := e.Encode(seg)
	require.NoError(t, err)
	auto, err := EncodeSegments([]Segment{seg}, M, 1, 1, AutoMask, true)
	require.NoError(t, err)
	assert.Equal(t, auto, c)

	e.Mask = 3
	c, err = e.Code()
	require.NoError(t, err)
	assert.Equal(t, 3, c.Mask)

	e.Write(seg)
	_, err = e.Code()
	require.ErrorIs(t, err, ErrTooLong)
	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, CapacityError{148, Q, 1}, *ce)
	assert.EqualError(t, err,
		"qr: cannot encode 148 bits into version 1-Q (104 bits)")

	// 256 bytes overflow the 8 bit character count of version 1.
	e.Reset()
	e.Write(ByteSegment(make([]byte, 256)))
	_, err = e.Code()
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, Inf, ce.Bits)
	assert.EqualError(t, err, "qr: segment too long for version 1-Q")

	e.Reset()
	e.Mask = 8
	_, err = e.Code()
	assert.ErrorIs(t, err, ErrMask)

	c, err = Encode(1, H)
	require.NoError(t, err)
	assert.Equal(t, H, c.Level)
}

func BenchmarkEncode(b *testing.B) {
	segs := MakeSegments(strings.Repeat("The quick brown fox jumps over the lazy dog. ", 10))
	for i := 0; i < b.N; i++ {
		EncodeSegments(segs, Q, MinVersion, MaxVersion, AutoMask, false)
	}
}
