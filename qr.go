// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes.

Encode chooses a single segment mode for the whole text, EncodeMixed
splits the text into numeric, alphanumeric and byte mode segments to
minimise the code size, EncodeBinary encodes raw bytes and
EncodeSegments encodes segments built with package coding.  The
resulting Code can be rendered as an image, PNG, PBM, SVG or text.
*/
package qr // import "github.com/unixdj/qrcode"

import (
	"errors"
	"image/color"

	"github.com/unixdj/qrcode/coding"
	"github.com/unixdj/qrcode/split"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant

	DefaultLevel = L // level used by the command line tool by default
)

func (l Level) String() string { return coding.Level(l).String() }

var (
	ErrArgs       = errors.New("qr: invalid arguments")
	ErrLargeImage = errors.New("qr: image too large")
)

type options struct {
	min, max coding.Version
	mask     int
	boost    bool
	header   []coding.Segment
}

// An Option modifies the encoding of a QR code.
type Option func(*options) error

// WithVersions limits the version of the code to the range from min to
// max inclusive.  The default range is 1 to 40.
func WithVersions(min, max coding.Version) Option {
	return func(o *options) error {
		if !min.IsValid() || !max.IsValid() || min > max {
			return coding.ErrVersion
		}
		o.min, o.max = min, max
		return nil
	}
}

// WithMask sets the mask pattern, 0 to 7, or coding.AutoMask to choose
// the pattern with the lowest penalty, which is the default.
func WithMask(mask int) Option {
	return func(o *options) error {
		if mask < coding.AutoMask || mask >= coding.NumMasks {
			return coding.ErrMask
		}
		o.mask = mask
		return nil
	}
}

// WithBoost controls raising the error correction level when the data
// fits at a higher level in the same version.  Boost is on by default.
func WithBoost(boost bool) Option {
	return func(o *options) error {
		o.boost = boost
		return nil
	}
}

// WithECI prepends an ECI segment announcing the character encoding of
// the data, e.g., 3 for ISO 8859-1, 26 for UTF-8.
func WithECI(assign int) Option {
	return func(o *options) error {
		seg, err := coding.ECISegment(assign)
		if err != nil {
			return err
		}
		o.header = append(o.header, seg)
		return nil
	}
}

func newOptions(level Level, opts []Option) (*options, error) {
	if !coding.Level(level).IsValid() {
		return nil, coding.ErrLevel
	}
	o := &options{
		min:   coding.MinVersion,
		max:   coding.MaxVersion,
		mask:  coding.AutoMask,
		boost: true,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *options) encode(segs []coding.Segment, level Level) (*Code, error) {
	if len(o.header) != 0 {
		segs = append(o.header[:len(o.header):len(o.header)], segs...)
	}
	cc, err := coding.EncodeSegments(segs, coding.Level(level),
		o.min, o.max, o.mask, o.boost)
	if err != nil {
		return nil, err
	}
	return newCode(cc), nil
}

// Encode returns an encoding of text at the given error correction
// level.  The text is encoded as a single numeric, alphanumeric or byte
// mode segment, whichever is the most compact that can hold all of it.
func Encode(text string, level Level, opts ...Option) (*Code, error) {
	o, err := newOptions(level, opts)
	if err != nil {
		return nil, err
	}
	return o.encode(coding.MakeSegments(text), level)
}

// EncodeBinary returns an encoding of data as a byte mode segment.
func EncodeBinary(data []byte, level Level, opts ...Option) (*Code, error) {
	o, err := newOptions(level, opts)
	if err != nil {
		return nil, err
	}
	return o.encode([]coding.Segment{coding.ByteSegment(data)}, level)
}

// EncodeSegments returns an encoding of segs.
// If the segments do not fit in any allowed version, EncodeSegments
// returns a *coding.CapacityError.
func EncodeSegments(segs []coding.Segment, level Level, opts ...Option) (*Code, error) {
	o, err := newOptions(level, opts)
	if err != nil {
		return nil, err
	}
	return o.encode(segs, level)
}

// EncodeMixed returns an encoding of text split into numeric,
// alphanumeric and byte mode segments of minimal total length.
func EncodeMixed(text string, level Level, opts ...Option) (*Code, error) {
	o, err := newOptions(level, opts)
	if err != nil {
		return nil, err
	}
	segs, v, err := split.Split(text, coding.Level(level), o.header...)
	if err != nil {
		return nil, err
	}
	o.min = max(o.min, min(v, o.max))
	o.header = nil
	return o.encode(segs, level)
}

// A Code is a square pixel grid.  Scale, Border, Reverse and Palette
// control rendering.
type Code struct {
	Bitmap  []byte          // 1 is black, 0 is white
	Size    int             // number of pixels on a side
	Stride  int             // number of bytes per row
	Version coding.Version  // QR version
	Level   Level           // error correction level
	Mask    int             // mask pattern
	Scale   int             // number of image pixels per QR pixel
	Border  int             // quiet zone width in QR pixels
	Reverse bool            // swap black and white
	Palette *[2]color.Color // background and foreground colours
}

func newCode(cc *coding.Code) *Code {
	return &Code{
		Bitmap:  cc.Bitmap,
		Size:    cc.Size,
		Stride:  cc.Stride,
		Version: cc.Version,
		Level:   Level(cc.Level),
		Mask:    cc.Mask,
		Scale:   8,
		Border:  4,
	}
}

// Black returns true if the pixel at (x,y) is black.
// Pixels outside the code, including the quiet zone, are white.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7-x&7)) != 0
}

// isValid reports whether c can be rendered.
func (c *Code) isValid() bool {
	return c != nil && c.Size > 0 && c.Scale > 0 && c.Border >= 0 &&
		c.Stride >= (c.Size+7)/8 && len(c.Bitmap) >= c.Size*c.Stride
}
