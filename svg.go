// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strconv"
)

// svgFill returns the fill attributes for colour c.
func svgFill(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	s := fmt.Sprintf(`fill="#%02x%02x%02x"`, n.R, n.G, n.B)
	if n.A != 0xff {
		s += ` fill-opacity="` +
			strconv.FormatFloat(float64(n.A)/0xff, 'g', 3, 64) + `"`
	}
	return s
}

// EncodeSVG writes an SVG image displaying the code to w.  One user
// unit is one QR pixel; the image is c.Scale pixels per QR pixel wide.
// If caption is not empty, it is written below the code.
func (c *Code) EncodeSVG(w io.Writer, caption string) error {
	if w == nil || !c.isValid() {
		return ErrArgs
	}
	pal := c.palette()
	bord := c.Border
	cells := c.Size + 2*bord
	height := cells
	if caption != "" {
		height += bord + 2
	}
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="%d" height="%d" viewBox="0 0 %d %d" version="1.1" xmlns="http://www.w3.org/2000/svg">
<path %s d="M0 0h%dv%dH0z" shape-rendering="crispEdges"/>
<path %s d="`,
		cells*c.Scale, height*c.Scale, cells, height,
		svgFill(pal[0]), cells, height, svgFill(pal[1]))
	// One subpath per horizontal run of black pixels.
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; {
			for x < c.Size && !c.Black(x, y) {
				x++
			}
			start := x
			for x < c.Size && c.Black(x, y) {
				x++
			}
			if x > start {
				fmt.Fprintf(b, "M%d %dh%dv1H%dz",
					start+bord, y+bord, x-start, start+bord)
			}
		}
	}
	b.WriteString(`" shape-rendering="crispEdges"/>` + "\n")
	if caption != "" {
		fmt.Fprintf(b, `<text x="50%%" y="%g" font-size="2.6" %s `+
			`dominant-baseline="middle" text-anchor="middle">`,
			float64(cells+height)/2, svgFill(pal[1]))
		if err := xml.EscapeText(b, []byte(caption)); err != nil {
			return err
		}
		b.WriteString("</text>\n")
	}
	b.WriteString("</svg>\n")
	return b.Flush()
}
