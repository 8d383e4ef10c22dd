// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
)

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

// palette returns the background and foreground colours.
func (c *Code) palette() [2]color.Color {
	pal := [2]color.Color{whiteColor, blackColor}
	if c.Palette != nil {
		pal = *c.Palette
	}
	if c.Reverse {
		pal[0], pal[1] = pal[1], pal[0]
	}
	return pal
}

// pixels returns the width of the image in pixels.
func (c *Code) pixels() int {
	return c.Scale * (c.Size + 2*c.Border)
}

// Image returns an Image displaying the code, including the quiet zone.
func (c *Code) Image() image.Image {
	return &codeImage{c, c.palette()}
}

// codeImage implements image.Image
type codeImage struct {
	*Code
	pal [2]color.Color
}

func (c *codeImage) Bounds() image.Rectangle {
	d := c.pixels()
	return image.Rect(0, 0, d, d)
}

func (c *codeImage) At(x, y int) color.Color {
	return c.pal[c.ColorIndexAt(x, y)]
}

// ColorIndexAt implements image.PalettedImage, so that image/png
// writes a 1-bit paletted image row by row.
func (c *codeImage) ColorIndexAt(x, y int) uint8 {
	if x >= 0 && y >= 0 &&
		c.Black(x/c.Scale-c.Border, y/c.Scale-c.Border) {
		return 1
	}
	return 0
}

func (c *codeImage) ColorModel() color.Model {
	return color.Palette(c.pal[:])
}

// PNG returns a PNG image displaying the code, or nil if the image
// cannot be encoded.
func (c *Code) PNG() []byte {
	var b bytes.Buffer
	if err := c.EncodePNG(&b); err != nil {
		return nil
	}
	return b.Bytes()
}

// EncodePNG writes a PNG image displaying the code to w.  The image
// is encoded a row at a time and never held in memory.
func (c *Code) EncodePNG(w io.Writer) error {
	if w == nil || !c.isValid() {
		return ErrArgs
	}
	if c.pixels() > 32767*8 {
		return ErrLargeImage
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, c.Image())
}
