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

// Package eddsa provides the Ed25519 signature scheme, the X25519
// Diffie-Hellman function and conversions between the two key formats,
// built on its own Curve25519 arithmetic with no dependency on a
// larger cryptographic framework.
//
// All operations on secret keys run in constant time; verification and
// public key handling are variable time.
package eddsa

import (
	"crypto/sha512"
	"crypto/subtle"

	"github.com/phlay/libeddsa/internal/edwards"
	"github.com/phlay/libeddsa/internal/scalar"
)

const (
	// Ed25519KeySize is the size of Ed25519 secret and public keys in
	// bytes.
	Ed25519KeySize = 32

	// Ed25519SignatureSize is the size of an Ed25519 signature in
	// bytes.
	Ed25519SignatureSize = 64

	// X25519KeySize is the size of X25519 secret keys, public points
	// and shared secrets in bytes.
	X25519KeySize = 32
)

// ed25519KeySetup expands a secret key: h holds SHA-512 of sec with
// the first half clamped into a valid scalar (cofactor bits cleared,
// bit 255 cleared, bit 254 set). The second half seeds the
// deterministic nonce during signing.
func ed25519KeySetup(h *[64]byte, sec *[Ed25519KeySize]byte) {
	hash := sha512.New()
	hash.Write(sec[:])
	hash.Sum(h[:0])

	h[0] &= 0xf8
	h[31] &= 0x7f
	h[31] |= 0x40
}

// Ed25519GenPub derives the public key belonging to the secret key
// sec.
func Ed25519GenPub(pub, sec *[Ed25519KeySize]byte) {
	var h [64]byte
	var a scalar.Scalar
	var A edwards.Point

	ed25519KeySetup(&h, sec)
	a.SetBytes(h[:32])

	A.ScalarBaseMult(&a)
	*pub = A.Bytes()

	burn(h[:])
	a = scalar.Scalar{}
}

// Ed25519Sign signs data with the secret key sec and its public key
// pub, producing a deterministic 64-byte signature R || S. The
// expanded secret is rederived from sec on every call, so only the
// 32-byte secret key needs to be stored.
func Ed25519Sign(sig *[Ed25519SignatureSize]byte, sec, pub *[Ed25519KeySize]byte, data []byte) {
	var h, digest [64]byte
	var a, r, t, s scalar.Scalar
	var R edwards.Point

	// derive the secret scalar a
	ed25519KeySetup(&h, sec)
	a.SetBytes(h[:32])

	// r = H(prefix || data)
	hash := sha512.New()
	hash.Write(h[32:])
	hash.Write(data)
	hash.Sum(digest[:0])
	r.SetBytes(digest[:])

	// R = r*B is the first half of the signature
	R.ScalarBaseMult(&r)
	enc := R.Bytes()
	copy(sig[:32], enc[:])

	// t = H(R || A || data)
	hash.Reset()
	hash.Write(sig[:32])
	hash.Write(pub[:])
	hash.Write(data)
	hash.Sum(digest[:0])
	t.SetBytes(digest[:])

	// S = r + t*a finishes the signature
	s.Mul(&t, &a)
	s.Add(&r, &s)
	sb := s.Bytes()
	copy(sig[32:], sb[:])

	burn(h[:])
	burn(digest[:])
	a, r, s = scalar.Scalar{}, scalar.Scalar{}, scalar.Scalar{}
}

// Ed25519Verify reports whether sig is a valid signature of data under
// the public key pub. It runs in variable time; all inputs are public.
//
// Beyond recomputing the verification equation it rejects
// non-canonical S scalars (S >= ell) and public keys of small order,
// closing the usual malleability routes per RFC 8032, section 8.4.
func Ed25519Verify(sig *[Ed25519SignatureSize]byte, pub *[Ed25519KeySize]byte, data []byte) bool {
	var sEnc [32]byte
	copy(sEnc[:], sig[32:])
	if !scalar.IsCanonical(&sEnc) {
		return false
	}

	var A edwards.Point
	if !A.SetBytes(pub) {
		return false
	}
	if A.IsSmallOrder() {
		return false
	}

	var s, t scalar.Scalar
	s.SetBytes(sig[32:])

	// t = H(R || A || data)
	var digest [64]byte
	hash := sha512.New()
	hash.Write(sig[:32])
	hash.Write(pub[:])
	hash.Write(data)
	hash.Sum(digest[:0])
	t.SetBytes(digest[:])

	// C = S*B + t*(-A) must reproduce R
	A.Negate(&A)
	var C edwards.Point
	C.DualScalarMult(&s, &t, &A)
	check := C.Bytes()

	return subtle.ConstantTimeCompare(check[:], sig[:32]) == 1
}
