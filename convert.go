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
	"crypto/sha512"

	"github.com/phlay/libeddsa/internal/edwards"
	"github.com/phlay/libeddsa/internal/field"
)

// PubEd25519ToX25519 converts an Ed25519 public key to the X25519
// public key of the same secret.
//
// The Edwards point (x, y) maps to the birationally equivalent
// Montgomery curve via y = (u - 1)/(u + 1), which inverts to
// u = (1 + y)/(1 - y), or in projective coordinates u = (Z + Y)/(Z - Y).
//
// It returns false if in is not a valid point encoding.
func PubEd25519ToX25519(out *[X25519KeySize]byte, in *[Ed25519KeySize]byte) bool {
	var P edwards.Point
	if !P.SetBytes(in) {
		return false
	}

	var u, t field.Element
	t.Sub(&P.Z, &P.Y)
	t.Invert(&t)
	u.Add(&P.Z, &P.Y)
	u.Mul(&u, &t)

	*out = u.Bytes()
	return true
}

// SecEd25519ToX25519 converts an Ed25519 secret key to the
// corresponding X25519 secret key: the first half of SHA-512(sec),
// returned unclamped. X25519 clamps on use, so the conversion commutes
// with public key derivation either way.
func SecEd25519ToX25519(out *[X25519KeySize]byte, sec *[Ed25519KeySize]byte) {
	h := sha512.Sum512(sec[:])
	copy(out[:], h[:32])
	burn(h[:])
}
