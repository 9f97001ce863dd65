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

package eddsa

import (
	"github.com/phlay/libeddsa/internal/edwards"
	"github.com/phlay/libeddsa/internal/field"
	"github.com/phlay/libeddsa/internal/montgomery"
	"github.com/phlay/libeddsa/internal/scalar"
)

// clamp forces a 32-byte secret into the base-point subgroup and fixes
// its bit length: the three cofactor bits and bit 255 are cleared, bit
// 254 is set.
func clamp(dst, src *[X25519KeySize]byte) {
	*dst = *src
	dst[0] &= 0xf8
	dst[31] &= 0x7f
	dst[31] |= 0x40
}

// X25519 computes the Diffie-Hellman function out = sec * point on the
// Montgomery u-line, in constant time with respect to sec. The high
// bit of the u-coordinate is ignored on import.
func X25519(out, sec, point *[X25519KeySize]byte) {
	var s [X25519KeySize]byte
	clamp(&s, sec)

	var p, res montgomery.Point
	p.X.SetBytes(point)
	p.Z.One()

	montgomery.ScalarMult(&res, &p, &s)

	// normalize u = X/Z
	res.Z.Invert(&res.Z)
	res.X.Mul(&res.X, &res.Z)
	*out = res.X.Bytes()

	burn(s[:])
}

// X25519Base computes the public value out = sec * 9, equivalent to
// X25519 with the base point but going through the fixed-base Edwards
// table and the birational map u = (Z + Y) / (Z - Y), which is
// considerably faster than the ladder.
func X25519Base(out, sec *[X25519KeySize]byte) {
	var s [X25519KeySize]byte
	clamp(&s, sec)

	var x scalar.Scalar
	x.SetBytes(s[:])

	var R edwards.Point
	R.ScalarBaseMult(&x)

	// pull the Montgomery u-coordinate out of the Edwards point
	var u, t field.Element
	t.Sub(&R.Z, &R.Y)
	t.Invert(&t)
	u.Add(&R.Z, &R.Y)
	u.Mul(&u, &t)

	*out = u.Bytes()

	burn(s[:])
	x = scalar.Scalar{}
}

// DH computes out = sec * base on the Montgomery u-line.
//
// Deprecated: DH is the historic name of this operation; use X25519.
func DH(out, sec, base *[X25519KeySize]byte) {
	X25519(out, sec, base)
}
