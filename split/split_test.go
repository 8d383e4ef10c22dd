// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixdj/qrcode/coding"
)

type part struct {
	mode  coding.Mode
	count int
}

func parts(segs []coding.Segment) []part {
	p := make([]part, len(segs))
	for i, seg := range segs {
		p[i] = part{seg.Mode(), seg.NumChars()}
	}
	return p
}

func TestSegments(t *testing.T) {
	for _, tt := range []struct {
		text  string
		bits  int
		parts []part
	}{
		{"", 0, []part{}},
		{"HELLO WORLD", 74, []part{{coding.Alphanumeric, 11}}},
		{"0123456789", 48, []part{{coding.Numeric, 10}}},
		{"abc", 36, []part{{coding.Byte, 3}}},
		{"Call +1 800 555 0100 now", 187, []part{
			{coding.Byte, 4}, {coding.Alphanumeric, 17}, {coding.Byte, 3},
		}},
		{"1234567890123456789012345678ABCDEFGHIJ", 176, []part{
			{coding.Numeric, 28}, {coding.Alphanumeric, 10},
		}},
		{"a0123456789012345678b", 118, []part{
			{coding.Byte, 1}, {coding.Numeric, 19}, {coding.Byte, 1},
		}},
		{"Mañana 1234", 104, []part{{coding.Byte, 8}, {coding.Numeric, 4}}},
	} {
		segs, n := Segments(tt.text, coding.Class0)
		assert.Equal(t, tt.bits, n, tt.text)
		assert.Equal(t, tt.parts, parts(segs), tt.text)
		assert.Equal(t, n, coding.TotalBits(segs, 1), tt.text)
	}
	assert.Panics(t, func() { Segments("x", 3) })
}

// TestSegmentsOptimal compares the split with single mode encodings.
func TestSegmentsOptimal(t *testing.T) {
	for _, text := range []string{
		"0", "A", "a", "00A", "A00", "AAAA0000000000000AAAA",
		"http://example.com/?id=0123456789012345",
		strings.Repeat("ab12", 30), strings.Repeat("1", 300),
	} {
		for class := coding.Class0; class <= coding.Class2; class++ {
			v := sizeClass[class].min
			segs, n := Segments(text, class)
			require.Equal(t, n, coding.TotalBits(segs, v), text)
			single := coding.TotalBits(coding.MakeSegments(text), v)
			assert.LessOrEqual(t, n, single, text)
			byteOnly := coding.TotalBits([]coding.Segment{
				coding.ByteSegment([]byte(text)),
			}, v)
			assert.LessOrEqual(t, n, byteOnly, text)
		}
	}
}

func TestSplit(t *testing.T) {
	segs, v, err := Split("", coding.H)
	require.NoError(t, err)
	assert.Empty(t, segs)
	assert.Equal(t, coding.Version(1), v)

	// Byte mode needs 16 bit count fields from version 10.
	text := strings.Repeat("x", 300)
	segs, v, err = Split(text, coding.L)
	require.NoError(t, err)
	assert.Equal(t, coding.Version(11), v)
	assert.Equal(t, []part{{coding.Byte, 300}}, parts(segs))
	assert.LessOrEqual(t, coding.TotalBits(segs, v), v.DataBits(coding.L))
	assert.Greater(t, coding.TotalBits(segs, v-1), (v - 1).DataBits(coding.L))

	_, _, err = Split(strings.Repeat("x", 3000), coding.L)
	require.ErrorIs(t, err, coding.ErrTooLong)
	var ce *coding.CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, coding.MaxVersion, ce.Max)

	_, _, err = Split("x", 4)
	assert.ErrorIs(t, err, coding.ErrLevel)
}

func TestSplitHeader(t *testing.T) {
	eci, err := coding.ECISegment(26)
	require.NoError(t, err)
	segs, v, err := Split("HELLO WORLD", coding.Q, eci)
	require.NoError(t, err)
	assert.Equal(t, []part{{coding.ECI, 0}, {coding.Alphanumeric, 11}}, parts(segs))
	// 74 bits and a 12 bit header fit in 1-Q (104 bits), not 1-H (72).
	assert.Equal(t, coding.Version(1), v)

	segs, v, err = Split("HELLO WORLD", coding.H, eci)
	require.NoError(t, err)
	assert.Equal(t, coding.Version(2), v)
	assert.Len(t, segs, 2)
}

func TestMinimumVersion(t *testing.T) {
	for _, n := range []int{1, 10, 100, 1000, 2000} {
		text := strings.Repeat("7", n) + strings.Repeat("Z", n/2)
		for l := coding.L; l <= coding.H; l++ {
			segs, v, err := Split(text, l)
			if err != nil {
				require.ErrorIs(t, err, coding.ErrTooLong)
				continue
			}
			_, err = coding.Encode(v, l, segs...)
			require.NoError(t, err, "%d %s", n, l)
			if v > coding.MinVersion {
				assert.Greater(t, coding.TotalBits(segs, v-1), (v - 1).DataBits(l))
			}
		}
	}
}
