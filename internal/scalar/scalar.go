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

// Package scalar implements the ring Z/ellZ for the group order
//
//	ell = 2^252 + 27742317777372353535851937790883648493
//
// of the Ed25519 base point, with Barrett reduction and the joint
// sparse form recoding used by dual scalar multiplication.
package scalar

import "math/bits"

const (
	limbs    = 5
	limbBits = 52
	limbMask = (1 << limbBits) - 1
)

// Scalar represents an integer modulo ell as five 52-bit limbs. After
// Reduce (and after SetBytes and Mul, which reduce internally) the
// value is canonical in [0, ell). Add leaves limbs uncarried, which a
// following Reduce, Bytes or Mul absorbs.
type Scalar [limbs]uint64

var (
	// order holds ell, one extra zero limb for the Barrett loops.
	order = [limbs + 1]uint64{671914833335277, 3916664325105025, 1367801,
		0, 17592186044416, 0}

	// mu = floor(b^(2k) / ell) with b = 2^52 and k = 5.
	mu = [limbs + 1]uint64{1586638968003385, 147551898491342,
		4503509987107165, 4503599627370495, 4503599627370495, 255}

	// Offset = 8 * (16^64 - 1) / 15 mod ell, added before the
	// signed-radix-16 recoding of base-point scalar multiplication so
	// that every base-16 digit lands in [0, 15].
	Offset = Scalar{1530200761952544, 2593802592017535, 2401919790321849,
		2401919801264264, 9382499223688}

	// orderBytes is the canonical little-endian encoding of ell, for
	// the vartime canonicity check on signature scalars.
	orderBytes = [32]byte{
		0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
		0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
	}
)

// mul64 accumulates x*y onto the 128-bit value lo:hi.
func mul64(lo, hi, x, y uint64) (uint64, uint64) {
	h, l := bits.Mul64(x, y)
	l, c := bits.Add64(lo, l, 0)
	h, _ = bits.Add64(hi, h, c)
	return l, h
}

// barrett reduces the carried, non-negative 10-limb value x modulo ell
// (HAC 14.42). The quotient estimate is built from the high half of
// x*mu only; a single mask-selected subtraction of ell finishes the
// reduction for every input produced by Mul, Reduce or SetBytes.
func barrett(res *Scalar, x *[2 * limbs]uint64) {
	var q, r [limbs + 1]uint64

	// step 1: q = floor( floor(x / b^(k-1)) * mu / b^(k+1) ), starting
	// with the carry out of columns k-1 and k.
	var c0, c1 uint64
	for i := 0; i <= limbs-1; i++ {
		c0, c1 = mul64(c0, c1, x[limbs-1+i], mu[limbs-1-i])
	}
	c0 = c1<<12 | c0>>limbBits
	c1 >>= limbBits
	for i := 0; i <= limbs; i++ {
		c0, c1 = mul64(c0, c1, x[limbs-1+i], mu[limbs-i])
	}
	for j := limbs + 1; j <= 2*limbs; j++ {
		c0 = c1<<12 | c0>>limbBits
		c1 >>= limbBits
		for i := j - limbs; i <= limbs; i++ {
			c0, c1 = mul64(c0, c1, x[limbs-1+i], mu[j-i])
		}
		q[j-limbs-1] = c0 & limbMask
	}
	q[limbs] = c1<<12 | c0>>limbBits

	// step 2: r = (x - q*ell) mod b^(k+1)
	c0, c1 = 0, 0
	for j := 0; j <= limbs; j++ {
		c0 = c1<<12 | c0>>limbBits
		c1 >>= limbBits
		for i := 0; i <= j; i++ {
			c0, c1 = mul64(c0, c1, q[i], order[j-i])
		}
		r[j] = c0 & limbMask
	}

	var borrow uint64
	for i := 0; i <= limbs; i++ {
		t := x[i] - r[i] - borrow
		r[i] = t & limbMask
		borrow = t >> 63
	}
	// A final borrow here would mean r < 0; dropping it is exactly the
	// "add b^(k+1)" step of the algorithm.

	// step 3: subtract ell once if r >= ell, selected by mask.
	borrow = 0
	for i := 0; i <= limbs; i++ {
		t := r[i] - order[i] - borrow
		q[i] = t & limbMask
		borrow = t >> 63
	}
	mask := borrow - 1
	for i := 0; i < limbs; i++ {
		res[i] = r[i] ^ (r[i]^q[i])&mask
	}
}

// Reduce carries a and fully reduces it modulo ell.
func (s *Scalar) Reduce(a *Scalar) *Scalar {
	var wide [2 * limbs]uint64
	var c uint64
	for i := 0; i < limbs; i++ {
		c = c>>limbBits + a[i]
		wide[i] = c & limbMask
	}
	wide[limbs] = c >> limbBits
	barrett(s, &wide)
	return s
}

// SetBytes imports a little-endian integer of up to 64 bytes and
// reduces it modulo ell. It cannot fail on inputs within that bound.
func (s *Scalar) SetBytes(x []byte) *Scalar {
	if len(x) > 64 {
		panic("scalar: import of more than 64 bytes")
	}

	var wide [2 * limbs]uint64
	var acc uint64
	fill, j := 0, 0
	for i := 0; i < 2*limbs; i++ {
		for j < len(x) && fill < limbBits {
			acc |= uint64(x[j]) << uint(fill)
			fill += 8
			j++
		}
		wide[i] = acc & limbMask
		acc >>= limbBits
		fill -= limbBits
	}
	barrett(s, &wide)
	return s
}

// Bytes returns the canonical 32-byte little-endian encoding of s.
func (s *Scalar) Bytes() [32]byte {
	var t Scalar
	t.Reduce(s)

	var out [32]byte
	var acc uint64
	fill, j := 0, 0
	for i := 0; i < limbs; i++ {
		acc |= t[i] << uint(fill)
		for fill += limbBits; fill >= 8 && j < 32; fill -= 8 {
			out[j] = byte(acc)
			acc >>= 8
			j++
		}
	}
	return out
}

// Add sets s = a + b limb-wise. The sum is left uncarried; every
// consumer (Mul, Bytes, Reduce) restores the limb bound.
func (s *Scalar) Add(a, b *Scalar) *Scalar {
	for i := 0; i < limbs; i++ {
		s[i] = a[i] + b[i]
	}
	return s
}

// Mul sets s = a * b mod ell via a full convolution and Barrett
// reduction. Inputs must be reduced.
func (s *Scalar) Mul(a, b *Scalar) *Scalar {
	var wide [2 * limbs]uint64
	var c0, c1 uint64

	for k := 0; k < limbs; k++ {
		c0 = c1<<12 | c0>>limbBits
		c1 >>= limbBits
		for i := 0; i <= k; i++ {
			c0, c1 = mul64(c0, c1, a[i], b[k-i])
		}
		wide[k] = c0 & limbMask
	}
	for k := limbs; k < 2*limbs-1; k++ {
		c0 = c1<<12 | c0>>limbBits
		c1 >>= limbBits
		for i := k - limbs + 1; i <= limbs-1; i++ {
			c0, c1 = mul64(c0, c1, a[i], b[k-i])
		}
		wide[k] = c0 & limbMask
	}
	wide[2*limbs-1] = c1<<12 | c0>>limbBits

	barrett(s, &wide)
	return s
}

// IsCanonical reports whether the 32-byte little-endian value x is
// strictly below ell. Runs in variable time; only used on public
// signature data.
func IsCanonical(x *[32]byte) bool {
	for i := 31; i >= 0; i-- {
		if x[i] < orderBytes[i] {
			return true
		}
		if x[i] > orderBytes[i] {
			return false
		}
	}
	return false
}
