// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying the code to w,
// for use with netpbm.  EncodePBM disregards c.Palette, as other PNM
// formats are not supported.
func (c *Code) EncodePBM(w io.Writer) error {
	if w == nil || !c.isValid() {
		return ErrArgs
	}
	b := bufio.NewWriter(w)
	scale := c.Scale
	length := c.pixels()
	ls := strconv.Itoa(length)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	var white byte
	if c.Reverse {
		white = 0xff
	}
	row := make([]byte, (length+7)/8)
	for y := -c.Border; y < c.Size+c.Border; y++ {
		pbmRow(row, c, y, white)
		for i := 0; i < scale; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	return b.Flush()
}

// pbmRow encodes row y of the code, including the quiet zone, in PBM
// format.  Padding bits at the end of the row are zero.
func pbmRow(row []byte, c *Code, y int, white byte) {
	for i := range row {
		row[i] = white
	}
	if 0 <= y && y < c.Size {
		j := c.Border * c.Scale
		for x := 0; x < c.Size; x++ {
			if !c.Black(x, y) {
				j += c.Scale
				continue
			}
			for i := 0; i < c.Scale; i++ {
				row[j>>3] ^= 0x80 >> (j & 7)
				j++
			}
		}
	}
	if n := c.pixels() & 7; n != 0 {
		row[len(row)-1] &^= 0xff >> n
	}
}
