// Copyright 2010 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import "strconv"

// An RSEncoder implements Reed-Solomon encoding
// over a given field using a given number of error correction bytes.
type RSEncoder struct {
	f    *Field
	c    int
	gen  []byte // generator polynomial
	lgen []byte // logarithms of gen
}

// NewRSEncoder returns a new Reed-Solomon encoder
// over the given field and number of error correction bytes.
// The number of bytes must be between 1 and 255.
func NewRSEncoder(f *Field, c int) *RSEncoder {
	gen := Divisor(f, c)
	lgen := make([]byte, c)
	for i, v := range gen {
		lgen[i] = byte(f.Log(v))
	}
	return &RSEncoder{f: f, c: c, gen: gen, lgen: lgen}
}

// Divisor returns the Reed-Solomon generator polynomial of degree c,
// the product of (x - α^i) for i in [0, c).  The coefficients are
// listed from the highest power down, omitting the leading 1 of x^c.
//
// The polynomial is built from the monomial x^(c-1) by repeatedly
// multiplying by the next root and adding the shifted polynomial.
func Divisor(f *Field, c int) []byte {
	if c < 1 || c > 255 {
		panic("gf256: invalid degree " + strconv.Itoa(c))
	}
	p := make([]byte, c)
	p[c-1] = 1
	root := byte(1)
	for i := 0; i < c; i++ {
		// p = p*(x-root), with x^c implied.
		for j := range p {
			p[j] = f.Mul(p[j], root)
			if j+1 < len(p) {
				p[j] ^= p[j+1]
			}
		}
		root = f.Mul(root, f.Exp(1))
	}
	return p
}

// Divisor returns a copy of the generator polynomial used by rs.
func (rs *RSEncoder) Divisor() []byte {
	return append([]byte(nil), rs.gen...)
}

// Len returns the number of error correction bytes rs produces.
func (rs *RSEncoder) Len() int { return rs.c }

// ECC writes to check the error correcting code bytes
// for data using the given Reed-Solomon parameters: the remainder of
// data·x^c divided by the generator polynomial.  check must have
// length rs.Len().
func (rs *RSEncoder) ECC(data []byte, check []byte) {
	if len(check) != rs.c {
		panic("gf256: invalid check byte length")
	}
	for i := range check {
		check[i] = 0
	}
	f, lgen := rs.f, rs.lgen
	for _, b := range data {
		factor := b ^ check[0]
		copy(check, check[1:])
		check[len(check)-1] = 0
		if factor == 0 {
			continue
		}
		lf := int(f.log[factor])
		for i, lg := range lgen {
			if rs.gen[i] != 0 {
				check[i] ^= f.exp[lf+int(lg)]
			}
		}
	}
}
