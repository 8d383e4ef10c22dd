// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits text into QR code segments.

Text is split into numeric, alphanumeric and byte mode segments to
minimise the encoded length.  The encoded length of a segment depends
on the character count field, the length of which depends on the QR
version size class, so the split is calculated for a size class and
recalculated if the data does not fit in it.
*/
package split // import "github.com/unixdj/qrcode/split"

import "github.com/unixdj/qrcode/coding"

var sizeClass = [3]struct {
	min, max coding.Version
}{
	{1, 9}, {10, 26}, {27, 40},
}

const (
	numMode   = iota // numeric
	alphaMode        // alphanumeric
	byteMode         // byte
	modes            // total number of modes

	numModes   = 1<<numMode | 1<<alphaMode | 1<<byteMode
	alphaModes = 1<<alphaMode | 1<<byteMode
	byteModes  = 1 << byteMode
)

const inf = coding.Inf

// bits[m] returns segment size in bits for a string of n bytes at QR
// version size class class encoded in mode m.
var bits = [modes]func(n, class int) int{
	func(n, class int) int { return 14 + class*2 + (10*n+2)/3 },
	func(n, class int) int { return 13 + class*2 + (11*n+1)/2 },
	func(n, class int) int { return 12 + (class<<1>>class+n)*8 },
}

type (
	// segment describes a segment encoded in a certain mode.
	segment struct {
		next   *segment // link to next segment in the chain
		start  int      // start of string
		slen   int      // length of string in bytes
		weight int      // encoded size of all segments in the chain
		mode   byte     // encoding mode
	}

	// span describes a span of bytes encodable in the same modes.
	span struct {
		start int            // start of string
		slen  int            // length of string in bytes
		modes byte           // bit field of valid encoding modes
		seg   [modes]segment // segments
	}
)

// classify splits text into spans of bytes encodable in the same modes.
func classify(text string) []span {
	if text == "" {
		return nil
	}

	// Scan the string, detect valid encoding modes for each byte
	modes := make([]byte, len(text))
	common := ^byte(0) // bit field of modes common to all spans
	n := 0
	m := byte(0)
	for i := 0; i < len(text); i++ {
		old := m
		switch s := text[i : i+1]; {
		case coding.IsNumeric(s):
			m = numModes
		case coding.IsAlphanumeric(s):
			m = alphaModes
		default:
			m = byteModes
		}
		modes[i] = m
		if m != old {
			common &= m
			n++
		}
	}

	mask := ^common | common&-common // Mask common modes except the lowest

	// Set spans
	sp := make([]span, n)
	old, n := byte(0), 0
	for i, v := range modes {
		if v != old {
			if i != 0 {
				sp[n].slen = i - sp[n].start
				n++
			}
			sp[n].start = i
			sp[n].modes = v & mask
			old = v
		}
	}
	sp[n].slen = len(modes) - sp[n].start
	return sp
}

/*
split returns the optimal split for the string described by sp at
the given QR version size class.

For last span, for each valid mode j:
  - Create a segment sp[len(sp)-1].seg[j] describing the span
    encoded in mode j.  Calculate the weight (encoded length in
    bits).

Then walk backwards through the rest of the spans.
For each span i, for each valid mode j:
  - For each mode k valid for span i+1, create a segment linking
    to next=sp[i+1].seg[k].  If k==j, merge the segments by
    adding the length of next and linking to next.next instead.
    Calculate the weight of the segment.  If next is not nil, add
    the weight of next to get the combined weight of the chain.
  - From those segments choose the one with the smallest weight.
    Assign it to sp[i].seg[j].

Return the address of the segment in sp[0].seg with the smallest
weight.
*/
func split(sp []span, class int) *segment {
	// Process last span.  Create a segment for each valid mode.
	i := len(sp) - 1
	if i < 0 {
		return nil
	}
	for j := byte(0); j < modes; j++ {
		seg := &sp[i].seg[j]
		*seg = segment{weight: inf}
		if sp[i].modes>>j&1 != 0 {
			*seg = segment{
				start:  sp[i].start,
				slen:   sp[i].slen,
				weight: bits[j](sp[i].slen, class),
				mode:   j,
			}
		}
	}

	// Process the rest of the spans.
	for i--; i >= 0; i-- {
		v := &sp[i]
		for j := byte(0); j < modes; j++ {
			seg := &v.seg[j]
			*seg = segment{weight: inf}
			if v.modes>>j&1 == 0 {
				continue
			}
			weight := bits[j](v.slen, class)
			ns := &sp[i+1].seg
			for k := byte(0); k < modes; k++ {
				next := &ns[k]
				if next.weight == inf {
					continue
				}
				c := segment{
					next:   next,
					start:  v.start,
					slen:   v.slen,
					weight: weight,
					mode:   j,
				}
				if k == j {
					c.slen += c.next.slen
					c.next = c.next.next
					c.weight = bits[j](c.slen, class)
				}
				if c.next != nil {
					c.weight += c.next.weight
				}
				if c.weight < seg.weight {
					*seg = c
				}
			}
		}
	}

	// Choose the first segment with the smallest weight
	seg := &sp[0].seg[0]
	for j := 1; j < modes; j++ {
		if sp[0].seg[j].weight < seg.weight {
			seg = &sp[0].seg[j]
		}
	}
	return seg
}

// segments returns the coding segments for the chain starting at seg.
func segments(text string, seg *segment) []coding.Segment {
	n := 0
	for s := seg; s != nil; s = s.next {
		n++
	}
	segs := make([]coding.Segment, 0, n)
	for ; seg != nil; seg = seg.next {
		s := text[seg.start : seg.start+seg.slen]
		var (
			cs  coding.Segment
			err error
		)
		switch seg.mode {
		case numMode:
			cs, err = coding.NumericSegment(s)
		case alphaMode:
			cs, err = coding.AlphanumericSegment(s)
		default:
			cs = coding.ByteSegment([]byte(s))
		}
		if err != nil {
			panic("qr: internal error: " + err.Error())
		}
		segs = append(segs, cs)
	}
	return segs
}

// Segments returns an optimal split of text for a QR version size
// class, and its encoded length in bits.
func Segments(text string, class int) ([]coding.Segment, int) {
	if class < coding.Class0 || class > coding.Class2 {
		panic("qr: invalid size class")
	}
	seg := split(classify(text), class)
	if seg == nil {
		return nil, 0
	}
	return segments(text, seg), seg.weight
}

/*
Split returns segments and minimum QR code version for text at the
given error correction level.  header segments, if any, are placed
before the text, and their length is accounted for.  Use an ECI
segment as header to announce the character encoding of text.

If the text does not fit, Split returns a *coding.CapacityError.
*/
func Split(text string, level coding.Level, header ...coding.Segment) ([]coding.Segment, coding.Version, error) {
	if !level.IsValid() {
		return nil, 0, coding.ErrLevel
	}
	limit := func(class int) int {
		return sizeClass[class].max.DataBits(level) -
			coding.TotalBits(header, sizeClass[class].max)
	}
	// Estimate minimum QR version size class in a crude manner.
	class := 0
	weight := bits[numMode](len(text), class)
	for class < 2 && limit(class) < weight {
		class++
	}
	// Split string into spans.
	sp := classify(text)
	// Split string into segments for the size class.
	seg := split(sp, class)
	weight = 0
	if seg != nil { // seg is nil if text == ""
		weight = seg.weight
	}
	// If string is too big for the size class, increment class
	// and resplit.  The weight will change, hence the loop.
	for limit(class) < weight {
		class++
		for class < 3 && limit(class) < weight {
			class++
		}
		if class == 3 {
			return nil, 0, &coding.CapacityError{
				Bits:  weight + coding.TotalBits(header, coding.MaxVersion),
				Level: level,
				Max:   coding.MaxVersion,
			}
		}
		if seg = split(sp, class); seg != nil {
			weight = seg.weight
		}
	}

	// Find version in the size class.
	weight += coding.TotalBits(header, sizeClass[class].min)
	v := sizeClass[class].min
	for max := sizeClass[class].max; v < max; {
		if mid := (v + max) / 2; mid.DataBits(level) < weight {
			v = mid + 1
		} else {
			max = mid
		}
	}

	segs := append([]coding.Segment(nil), header...)
	return append(segs, segments(text, seg)...), v, nil
}
