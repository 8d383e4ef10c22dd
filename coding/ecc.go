// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "github.com/unixdj/qrcode/gf256"

// AddECC splits data into blocks for the given version and level, adds
// error correction codewords to each block and returns the blocks
// interleaved, data first.  data must contain exactly
// v.DataCodewords(l) bytes.
//
// Blocks come in two lengths.  The short blocks come first and have
// one data codeword less than the long ones.  Short blocks are padded
// with a zero codeword before the error correction codewords to keep
// the columns aligned; the padding is skipped when interleaving.
func AddECC(data []byte, v Version, l Level) []byte {
	if len(data) != v.DataCodewords(l) {
		panic("qr: wrong data length")
	}
	nblock, check := v.ECCBlocks(l)
	raw := v.RawCodewords()
	nshort := nblock - raw%nblock // number of short blocks
	blen := raw/nblock + 1        // padded block length
	pad := blen - 1 - check       // index of the padding codeword
	rs := gf256.NewRSEncoder(Field, check)
	buf := make([]byte, nblock*blen)
	for i := 0; i < nblock; i++ {
		blk := buf[i*blen : (i+1)*blen]
		n := pad
		if i >= nshort {
			n++
		}
		data = data[copy(blk[:n], data):]
		rs.ECC(blk[:n], blk[blen-check:])
	}
	if len(data) != 0 {
		panic("qr: internal error: data left over")
	}

	dst := make([]byte, 0, raw)
	for i := 0; i < blen; i++ {
		for j := 0; j < nblock; j++ {
			if i != pad || j >= nshort {
				dst = append(dst, buf[j*blen+i])
			}
		}
	}
	if len(dst) != raw {
		panic("qr: internal error: wrong codeword count")
	}
	return dst
}
