// Copyright (c) 2024 Philipp Lay <philipp.lay@illunis.net>. All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are
// met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived from
// this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS
// IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED
// TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A
// PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
// HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED
// TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR
// PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF
// LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE OF THIS
// SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package edwards

import (
	"github.com/phlay/libeddsa/internal/scalar"
)

// basepointBytes is the packed encoding of the base point B, the point
// with y = 4/5 and even x.
var basepointBytes = [32]byte{
	0x58, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
}

var (
	// basepoint is B in extended coordinates.
	basepoint Point

	// basepointPC is B in precomputed form, for the mixed additions of
	// dual scalar multiplication.
	basepointPC Precomputed

	// basepointTable holds basepointTable[i][k] = (k+1) * 16^(2i) * B.
	// Together with four trailing doublings this covers all 64 signed
	// radix-16 digits of a scalar with half the table size.
	basepointTable [32][8]Precomputed
)

// The table is derived from the encoded base point rather than
// transcribed; the entry-by-entry check against an independent
// implementation lives in the tests.
func init() {
	if !basepoint.SetBytes(&basepointBytes) {
		panic("edwards: failed to decode base point")
	}
	basepointPC.FromPoint(&basepoint)

	q := basepoint
	for i := range basepointTable {
		e := q
		for k := range basepointTable[i] {
			basepointTable[i][k].FromPoint(&e)
			e.Add(&e, &q)
		}
		for j := 0; j < 8; j++ {
			q.Double(&q)
		}
	}
}

// equal returns 1 if a == b and 0 otherwise, without branching.
func equal(a, b int32) int32 {
	x := uint32(a ^ b)
	x--
	return int32(x >> 31)
}

// negative returns 1 if a < 0 and 0 otherwise, without branching.
func negative(a int32) int32 {
	return (a >> 31) & 1
}

func (pc *Precomputed) condMove(u *Precomputed, cond int32) {
	pc.Diff.Select(&u.Diff, &pc.Diff, int(cond))
	pc.Sum.Select(&u.Sum, &pc.Sum, int(cond))
	pc.Prod.Select(&u.Prod, &pc.Prod, int(cond))
}

// selectMultiple sets pc = digit * 16^(2*pos) * B for digit in [-8, 7],
// scanning the whole table group so that neither the memory access
// pattern nor the flow of control depends on the digit.
func selectMultiple(pc *Precomputed, pos int, digit int8) {
	b := int32(digit)
	bNegative := negative(b)
	bAbs := b - (((-bNegative) & b) << 1)

	// digit 0 selects the neutral element (1, 1, 0)
	pc.Diff.One()
	pc.Sum.One()
	pc.Prod.Zero()
	for i := int32(0); i < 8; i++ {
		pc.condMove(&basepointTable[pos][i], equal(bAbs, i+1))
	}

	// negating a precomputed point swaps y-x with y+x and flips the
	// sign of 2dxy
	var neg Precomputed
	neg.Diff.Set(&pc.Sum)
	neg.Sum.Set(&pc.Diff)
	neg.Prod.Negate(&pc.Prod)
	pc.condMove(&neg, bNegative)
}

// ScalarBaseMult sets p = x*B in constant time.
//
// The scalar is offset by 8*(16^64-1)/15 so that its 64 base-16 digits
// minus 8 each land in [-8, 7]. Even-indexed digits accumulate into one
// partial sum, odd-indexed digits into a second one, which four
// doublings shift by the missing factor of 16 before the final
// addition.
func (p *Point) ScalarBaseMult(x *scalar.Scalar) *Point {
	var t scalar.Scalar
	t.Add(x, &scalar.Offset)
	pack := t.Bytes()

	var digits [64]int8
	for i, v := range pack {
		digits[2*i] = int8(v&0x0f) - 8
		digits[2*i+1] = int8(v>>4) - 8
	}

	var r0, r1 Point
	var pc Precomputed
	r0.Identity()
	r1.Identity()
	for i := 0; i < 63; i += 2 {
		selectMultiple(&pc, i/2, digits[i])
		r0.AddPrecomputed(&r0, &pc)

		selectMultiple(&pc, i/2, digits[i+1])
		r1.AddPrecomputed(&r1, &pc)
	}

	for i := 0; i < 4; i++ {
		r1.Double(&r1)
	}
	return p.Add(&r0, &r1)
}
