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

// Package montgomery implements x-coordinate-only scalar
// multiplication on the Montgomery curve
//
//	v^2 = u^3 + 486662 u^2 + u
//
// over GF(2^255-19), birationally equivalent to the Ed25519 curve,
// following Bernstein's Curve25519 paper.
package montgomery

import (
	"github.com/phlay/libeddsa/internal/field"
)

// Point holds a curve point as the projective pair (X, Z) with
// u = X/Z; the ladder never needs the v-coordinate.
type Point struct {
	X, Z field.Element
}

// swap conditionally exchanges a and b under a mask derived from the
// current scalar bit, so the memory access pattern is independent of
// the scalar.
func swap(a, b *Point, bit int) {
	a.X.Swap(&b.X, bit)
	a.Z.Swap(&b.Z, bit)
}

// ladderStep computes Montgomery's combined double-and-add formula:
// a <- 2*a and b <- a + b, with c = a - b fixed and normalized to
// Z = 1.
func ladderStep(a, b, c *Point) {
	var sumA, subA, sqSumA, sqSubA field.Element
	var sumB, subB field.Element
	var t1, t2, t3 field.Element

	// 2*a
	sumA.Add(&a.X, &a.Z)
	sqSumA.Square(&sumA)

	subA.Sub(&a.X, &a.Z)
	sqSubA.Square(&subA)

	a.X.Mul(&sqSubA, &sqSumA)

	t1.Sub(&sqSumA, &sqSubA)
	t2.Scale(&t1, 121665)
	t2.Add(&t2, &sqSumA)
	a.Z.Mul(&t1, &t2)

	// a + b
	sumB.Add(&b.X, &b.Z)
	subB.Sub(&b.X, &b.Z)

	t1.Mul(&subA, &sumB)
	t2.Mul(&sumA, &subB)

	t3.Add(&t1, &t2)
	b.X.Square(&t3)

	t3.Sub(&t1, &t2)
	t3.Square(&t3)
	b.Z.Mul(&t3, &c.X)
}

// ScalarMult sets out = x*p, iterating over all 256 bits of x in
// constant time. out must not alias p, and p must have Z = 1.
//
// The scalar is used as-is; callers clamp per the X25519 contract.
func ScalarMult(out, p *Point, x *[32]byte) {
	out.X.One()
	out.Z.Zero()
	t := *p

	for i := 31; i >= 0; i-- {
		for j := 7; j >= 0; j-- {
			bit := int(x[i]>>uint(j)) & 1

			swap(out, &t, bit)
			ladderStep(out, &t, p)
			swap(out, &t, bit)
		}
	}
}
