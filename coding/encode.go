// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Code is a square pixel grid.
type Code struct {
	Bitmap  []byte  // 1 is black, 0 is white
	Size    int     // number of pixels on a side
	Stride  int     // number of bytes per row
	Version Version // QR code version
	Level   Level   // QR error correction level
	Mask    int     // mask pattern, 0 to 7
}

// Black reports whether the pixel at x, y is black.  Pixels outside
// the code are white.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7&^x)) != 0
}

// Encoder encodes a QR code with a specific version and level.
type Encoder struct {
	Mask int // mask pattern, or AutoMask

	v    Version
	l    Level
	segs []Segment
}

// NewEncoder returns an Encoder for the given version and level.
func NewEncoder(version Version, level Level) (*Encoder, error) {
	if !version.IsValid() {
		return nil, ErrVersion
	}
	if !level.IsValid() {
		return nil, ErrLevel
	}
	return &Encoder{Mask: AutoMask, v: version, l: level}, nil
}

// Version returns the version of codes produced by e.
func (e *Encoder) Version() Version { return e.v }

// Level returns the error correction level of codes produced by e.
func (e *Encoder) Level() Level { return e.l }

// Write adds segments to e.
func (e *Encoder) Write(segs ...Segment) {
	e.segs = append(e.segs, segs...)
}

// Reset discards the segments written to e.
func (e *Encoder) Reset() { e.segs = e.segs[:0] }

// Code returns a QR code containing the segments written to e.
func (e *Encoder) Code() (*Code, error) {
	if e.Mask < AutoMask || e.Mask >= NumMasks {
		return nil, ErrMask
	}
	if n := TotalBits(e.segs, e.v); n > e.v.DataBits(e.l) {
		return nil, &CapacityError{n, e.l, e.v}
	}
	return build(e.segs, e.v, e.l, e.Mask), nil
}

// Encode is a wrapper around Write and Code.
func (e *Encoder) Encode(segs ...Segment) (*Code, error) {
	e.Write(segs...)
	return e.Code()
}

// Encode encodes segments using an Encoder with the given version and
// level, choosing the mask automatically.
func Encode(version Version, level Level, segs ...Segment) (*Code, error) {
	e, err := NewEncoder(version, level)
	if err != nil {
		return nil, err
	}
	return e.Encode(segs...)
}

// EncodeSegments encodes segments in the smallest version between min
// and max that holds them at level l.  With boost, the level is raised
// as far as the chosen version allows.  mask is 0 to 7 or AutoMask.
func EncodeSegments(segs []Segment, l Level, min, max Version, mask int, boost bool) (*Code, error) {
	if mask < AutoMask || mask >= NumMasks {
		return nil, ErrMask
	}
	v, l, _, err := ChooseVersion(segs, l, min, max, boost)
	if err != nil {
		return nil, err
	}
	return build(segs, v, l, mask), nil
}

// build constructs the code.  The segments must fit.
func build(segs []Segment, v Version, l Level, mask int) *Code {
	data := AddECC(Assemble(segs, v, l), v, l)
	g := newGrid(v)
	g.drawFunctionPatterns(v, l)
	g.drawCodewords(data)
	if mask == AutoMask {
		mask = g.chooseMask(l)
	}
	g.applyMask(mask)
	g.drawFormat(l, mask)
	c := g.code()
	c.Version, c.Level, c.Mask = v, l, mask
	return c
}
