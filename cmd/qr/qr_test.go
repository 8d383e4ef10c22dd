// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qr "github.com/unixdj/qrcode"
)

func TestColourSet(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want rgba
		str  string
	}{
		{"black", rgba{0, 0, 0, 0xff}, "black"},
		{"Dark Green", rgba{0, 0x64, 0, 0xff}, "006400"},
		{"f00", rgba{0xff, 0, 0, 0xff}, "ff0000"},
		{"f008", rgba{0xff, 0, 0, 0x88}, "ff000088"},
		{"123456", rgba{0x12, 0x34, 0x56, 0xff}, "123456"},
		{"12345678", rgba{0x12, 0x34, 0x56, 0x78}, "12345678"},
		{"FFFFFF", rgba{0xff, 0xff, 0xff, 0xff}, "white"},
	} {
		var c rgba
		require.NoError(t, c.Set(tt.in, nil), tt.in)
		assert.Equal(t, tt.want, c, tt.in)
		assert.Equal(t, tt.str, c.String(), tt.in)
	}
	for _, s := range []string{"", "12", "12345", "chartreuse", "ggg"} {
		var c rgba
		assert.Error(t, c.Set(s, nil), s)
	}
}

func TestRandr(t *testing.T) {
	defer func(cx int, inc [2]int) { g.cx, g.inc = cx, inc }(g.cx, g.inc)
	encode := func() *qr.Code {
		c, err := qr.Encode("https://example.com/", qr.L)
		require.NoError(t, err)
		return c
	}
	orig := encode()
	siz := orig.Size

	g.cx, g.inc = 0, [2]int{1, 1}
	assert.Equal(t, orig.Bitmap, randr(encode()).Bitmap)

	flip()
	c := randr(encode())
	require.Len(t, c.Bitmap, len(orig.Bitmap))
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			require.Equal(t, orig.Black(siz-1-x, y), c.Black(x, y), "%d,%d", x, y)
		}
	}

	g.cx, g.inc = 0, [2]int{1, 1}
	rotate()
	c = randr(encode())
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			require.Equal(t, orig.Black(siz-1-y, x), c.Black(x, y), "%d,%d", x, y)
		}
	}

	// Four rotations are the identity.
	g.cx, g.inc = 0, [2]int{1, 1}
	for i := 0; i < 4; i++ {
		rotate()
	}
	assert.Equal(t, 0, g.cx)
	assert.Equal(t, [2]int{1, 1}, g.inc)
}

func TestPrintTable(t *testing.T) {
	oldMin, oldMax := g.min, g.max
	defer func() { g.min, g.max = oldMin, oldMax }()
	g.min, g.max = 1, 2
	var b strings.Builder
	printTable(&b)
	s := b.String()
	assert.Contains(t, s, "VERSION")
	assert.Contains(t, s, "21x21")
	assert.Contains(t, s, "25x25")
	assert.NotContains(t, s, "29x29")
	// 1-L holds 19 data codewords in a single block with 7 check bytes.
	assert.Contains(t, s, "19")
	assert.Contains(t, s, "1×7")
	assert.Contains(t, s, "1×17")
}
