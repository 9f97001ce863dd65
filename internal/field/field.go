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

// Package field implements arithmetic over GF(2^255-19) in radix 2^51.
package field

import (
	"crypto/subtle"
	"encoding/binary"
	"math/bits"
)

// Element represents an element of the field GF(2^255-19). An element t
// stands for the integer t[0] + t[1]*2^51 + t[2]*2^102 + t[3]*2^153 +
// t[4]*2^204.
//
// Limbs are allowed to grow beyond 51 bits between reductions, as long
// as every input to Mul, Square and Scale stays below 2^54 per limb.
// Mul, Square and Scale leave all limbs below 2^52, so one further Add,
// Sub, Negate or Scale2 is always safe before the next multiplication.
type Element [5]uint64

const maskLow51Bits uint64 = (1 << 51) - 1

// Zero sets v = 0.
func (v *Element) Zero() *Element {
	*v = Element{}
	return v
}

// One sets v = 1.
func (v *Element) One() *Element {
	*v = Element{1, 0, 0, 0, 0}
	return v
}

// SetSmall sets v = x for a small non-negative integer x.
func (v *Element) SetSmall(x uint64) *Element {
	*v = Element{x, 0, 0, 0, 0}
	return v
}

// Set sets v = a.
func (v *Element) Set(a *Element) *Element {
	*v = *a
	return v
}

// Add sets v = a + b limb-wise without carrying.
func (v *Element) Add(a, b *Element) *Element {
	v[0] = a[0] + b[0]
	v[1] = a[1] + b[1]
	v[2] = a[2] + b[2]
	v[3] = a[3] + b[3]
	v[4] = a[4] + b[4]
	return v
}

// Sub sets v = a - b. Since the limbs are unsigned, b is first carried
// below 2^51 and then subtracted from a plus a multiple of p.
func (v *Element) Sub(a, b *Element) *Element {
	t := *b

	t[1] += t[0] >> 51
	t[0] &= maskLow51Bits
	t[2] += t[1] >> 51
	t[1] &= maskLow51Bits
	t[3] += t[2] >> 51
	t[2] &= maskLow51Bits
	t[4] += t[3] >> 51
	t[3] &= maskLow51Bits
	t[0] += (t[4] >> 51) * 19
	t[4] &= maskLow51Bits

	// 2*p = 2^256 - 38, spelled out per limb.
	v[0] = (a[0] + 0xFFFFFFFFFFFDA) - t[0]
	v[1] = (a[1] + 0xFFFFFFFFFFFFE) - t[1]
	v[2] = (a[2] + 0xFFFFFFFFFFFFE) - t[2]
	v[3] = (a[3] + 0xFFFFFFFFFFFFE) - t[3]
	v[4] = (a[4] + 0xFFFFFFFFFFFFE) - t[4]
	return v
}

// Negate sets v = -a.
func (v *Element) Negate(a *Element) *Element {
	var zero Element
	return v.Sub(&zero, a)
}

// Scale2 sets v = 2*a limb-wise without carrying.
func (v *Element) Scale2(a *Element) *Element {
	v[0] = a[0] << 1
	v[1] = a[1] << 1
	v[2] = a[2] << 1
	v[3] = a[3] << 1
	v[4] = a[4] << 1
	return v
}

// Scale sets v = s*a mod p for a small scalar s, carrying the result
// below 2^52 per limb.
func (v *Element) Scale(a *Element, s uint64) *Element {
	var c uint64
	for i := 0; i < 5; i++ {
		hi, lo := bits.Mul64(s, a[i])
		lo, carry := bits.Add64(lo, c, 0)
		hi += carry
		v[i] = lo & maskLow51Bits
		c = hi<<13 | lo>>51
	}
	v[0] += 19 * c
	return v
}

// mul64 accumulates x*y onto the 128-bit value lo:hi.
func mul64(lo, hi, x, y uint64) (uint64, uint64) {
	h, l := bits.Mul64(x, y)
	l, c := bits.Add64(lo, l, 0)
	h, _ = bits.Add64(hi, h, c)
	return l, h
}

// Mul sets v = a * b mod p. The top half of the schoolbook convolution
// is folded down with 2^255 = 19, followed by a carry chain restoring
// the limb bound. The output may alias either input.
func (v *Element) Mul(a, b *Element) *Element {
	a0, a1, a2, a3, a4 := a[0], a[1], a[2], a[3], a[4]
	b0, b1, b2, b3, b4 := b[0], b[1], b[2], b[3], b[4]

	a1_19 := a1 * 19
	a2_19 := a2 * 19
	a3_19 := a3 * 19
	a4_19 := a4 * 19

	// r0 = a0*b0 + 19*(a1*b4 + a2*b3 + a3*b2 + a4*b1)
	r00, r01 := mul64(0, 0, a0, b0)
	r00, r01 = mul64(r00, r01, a1_19, b4)
	r00, r01 = mul64(r00, r01, a2_19, b3)
	r00, r01 = mul64(r00, r01, a3_19, b2)
	r00, r01 = mul64(r00, r01, a4_19, b1)

	// r1 = a0*b1 + a1*b0 + 19*(a2*b4 + a3*b3 + a4*b2)
	r10, r11 := mul64(0, 0, a0, b1)
	r10, r11 = mul64(r10, r11, a1, b0)
	r10, r11 = mul64(r10, r11, a2_19, b4)
	r10, r11 = mul64(r10, r11, a3_19, b3)
	r10, r11 = mul64(r10, r11, a4_19, b2)

	// r2 = a0*b2 + a1*b1 + a2*b0 + 19*(a3*b4 + a4*b3)
	r20, r21 := mul64(0, 0, a0, b2)
	r20, r21 = mul64(r20, r21, a1, b1)
	r20, r21 = mul64(r20, r21, a2, b0)
	r20, r21 = mul64(r20, r21, a3_19, b4)
	r20, r21 = mul64(r20, r21, a4_19, b3)

	// r3 = a0*b3 + a1*b2 + a2*b1 + a3*b0 + 19*a4*b4
	r30, r31 := mul64(0, 0, a0, b3)
	r30, r31 = mul64(r30, r31, a1, b2)
	r30, r31 = mul64(r30, r31, a2, b1)
	r30, r31 = mul64(r30, r31, a3, b0)
	r30, r31 = mul64(r30, r31, a4_19, b4)

	// r4 = a0*b4 + a1*b3 + a2*b2 + a3*b1 + a4*b0
	r40, r41 := mul64(0, 0, a0, b4)
	r40, r41 = mul64(r40, r41, a1, b3)
	r40, r41 = mul64(r40, r41, a2, b2)
	r40, r41 = mul64(r40, r41, a3, b1)
	r40, r41 = mul64(r40, r41, a4, b0)

	return v.carryWide(r00, r01, r10, r11, r20, r21, r30, r31, r40, r41)
}

// Square sets v = a * a mod p, exploiting the symmetry of the
// cross-terms. The output may alias the input.
func (v *Element) Square(a *Element) *Element {
	a0, a1, a2, a3, a4 := a[0], a[1], a[2], a[3], a[4]

	a0_2 := a0 << 1
	a1_2 := a1 << 1

	a1_38 := a1 * 38
	a2_38 := a2 * 38
	a3_38 := a3 * 38

	a3_19 := a3 * 19
	a4_19 := a4 * 19

	// r0 = a0*a0 + 38*(a1*a4 + a2*a3)
	r00, r01 := mul64(0, 0, a0, a0)
	r00, r01 = mul64(r00, r01, a1_38, a4)
	r00, r01 = mul64(r00, r01, a2_38, a3)

	// r1 = 2*a0*a1 + 38*a2*a4 + 19*a3*a3
	r10, r11 := mul64(0, 0, a0_2, a1)
	r10, r11 = mul64(r10, r11, a2_38, a4)
	r10, r11 = mul64(r10, r11, a3_19, a3)

	// r2 = 2*a0*a2 + a1*a1 + 38*a3*a4
	r20, r21 := mul64(0, 0, a0_2, a2)
	r20, r21 = mul64(r20, r21, a1, a1)
	r20, r21 = mul64(r20, r21, a3_38, a4)

	// r3 = 2*a0*a3 + 2*a1*a2 + 19*a4*a4
	r30, r31 := mul64(0, 0, a0_2, a3)
	r30, r31 = mul64(r30, r31, a1_2, a2)
	r30, r31 = mul64(r30, r31, a4_19, a4)

	// r4 = 2*a0*a4 + 2*a1*a3 + a2*a2
	r40, r41 := mul64(0, 0, a0_2, a4)
	r40, r41 = mul64(r40, r41, a1_2, a3)
	r40, r41 = mul64(r40, r41, a2, a2)

	return v.carryWide(r00, r01, r10, r11, r20, r21, r30, r31, r40, r41)
}

// carryWide folds the 128-bit convolution columns back into 51-bit
// limbs, ending with a carry chain that leaves every limb below 2^52.
func (v *Element) carryWide(r00, r01, r10, r11, r20, r21, r30, r31, r40, r41 uint64) *Element {
	r01 = r01<<13 | r00>>51
	r00 &= maskLow51Bits

	r11 = r11<<13 | r10>>51
	r10 &= maskLow51Bits
	r10 += r01

	r21 = r21<<13 | r20>>51
	r20 &= maskLow51Bits
	r20 += r11

	r31 = r31<<13 | r30>>51
	r30 &= maskLow51Bits
	r30 += r21

	r41 = r41<<13 | r40>>51
	r40 &= maskLow51Bits
	r40 += r31

	r00 += 19 * r41

	r10 += r00 >> 51
	r00 &= maskLow51Bits
	r20 += r10 >> 51
	r10 &= maskLow51Bits
	r30 += r20 >> 51
	r20 &= maskLow51Bits
	r40 += r30 >> 51
	r30 &= maskLow51Bits
	r00 += (r40 >> 51) * 19
	r40 &= maskLow51Bits

	v[0] = r00
	v[1] = r10
	v[2] = r20
	v[3] = r30
	v[4] = r40
	return v
}

// carryPropagate brings all limbs below 2^52 with one round of carries.
func (v *Element) carryPropagate() *Element {
	c0 := v[0] >> 51
	c1 := v[1] >> 51
	c2 := v[2] >> 51
	c3 := v[3] >> 51
	c4 := v[4] >> 51

	v[0] = v[0]&maskLow51Bits + c4*19
	v[1] = v[1]&maskLow51Bits + c0
	v[2] = v[2]&maskLow51Bits + c1
	v[3] = v[3]&maskLow51Bits + c2
	v[4] = v[4]&maskLow51Bits + c3
	return v
}

// Reduce sets v to the unique representative of a in [0, p).
func (v *Element) Reduce(a *Element) *Element {
	v.Set(a).carryPropagate()

	// After the light reduction v < 2^255 + small. Compute
	// q = (v + 19) div 2^255; q is 1 iff v is in [p, 2^255 + small).
	q := (v[0] + 19) >> 51
	q = (v[1] + q) >> 51
	q = (v[2] + q) >> 51
	q = (v[3] + q) >> 51
	q = (v[4] + q) >> 51

	// Adding 19*q and masking bit 255 subtracts p exactly when q = 1.
	v[0] += 19 * q

	v[1] += v[0] >> 51
	v[0] &= maskLow51Bits
	v[2] += v[1] >> 51
	v[1] &= maskLow51Bits
	v[3] += v[2] >> 51
	v[2] &= maskLow51Bits
	v[4] += v[3] >> 51
	v[3] &= maskLow51Bits
	v[4] &= maskLow51Bits
	return v
}

// Invert sets v = a^(p-2) = a^-1, using the fixed addition chain from
// Bernstein's reference code: 254 squarings and 11 multiplications.
// v = 0 if a = 0.
func (v *Element) Invert(a *Element) *Element {
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t Element

	z2.Square(a)        // 2
	t.Square(&z2)       // 4
	t.Square(&t)        // 8
	z9.Mul(&t, a)       // 9
	z11.Mul(&z9, &z2)   // 11
	t.Square(&z11)      // 22
	z2_5_0.Mul(&t, &z9) // 2^5 - 2^0

	t.Square(&z2_5_0) // 2^6 - 2^1
	for i := 1; i < 5; i++ {
		t.Square(&t) // 2^10 - 2^5
	}
	z2_10_0.Mul(&t, &z2_5_0) // 2^10 - 2^0

	t.Square(&z2_10_0) // 2^11 - 2^1
	for i := 1; i < 10; i++ {
		t.Square(&t) // 2^20 - 2^10
	}
	z2_20_0.Mul(&t, &z2_10_0) // 2^20 - 2^0

	t.Square(&z2_20_0) // 2^21 - 2^1
	for i := 1; i < 20; i++ {
		t.Square(&t) // 2^40 - 2^20
	}
	t.Mul(&t, &z2_20_0) // 2^40 - 2^0

	t.Square(&t) // 2^41 - 2^1
	for i := 1; i < 10; i++ {
		t.Square(&t) // 2^50 - 2^10
	}
	z2_50_0.Mul(&t, &z2_10_0) // 2^50 - 2^0

	t.Square(&z2_50_0) // 2^51 - 2^1
	for i := 1; i < 50; i++ {
		t.Square(&t) // 2^100 - 2^50
	}
	z2_100_0.Mul(&t, &z2_50_0) // 2^100 - 2^0

	t.Square(&z2_100_0) // 2^101 - 2^1
	for i := 1; i < 100; i++ {
		t.Square(&t) // 2^200 - 2^100
	}
	t.Mul(&t, &z2_100_0) // 2^200 - 2^0

	t.Square(&t) // 2^201 - 2^1
	for i := 1; i < 50; i++ {
		t.Square(&t) // 2^250 - 2^50
	}
	t.Mul(&t, &z2_50_0) // 2^250 - 2^0

	for i := 0; i < 5; i++ {
		t.Square(&t) // 2^255 - 2^5
	}
	return v.Mul(&t, &z11) // 2^255 - 21 = p - 2
}

// Pow2523 sets v = a^((p-5)/8), used for the square root in point
// decoding: if a is a square, (a*v)^2 is either a or -a modulo p.
func (v *Element) Pow2523(a *Element) *Element {
	var z2, z9, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t Element

	z2.Square(a)        // 2
	t.Square(&z2)       // 4
	t.Square(&t)        // 8
	z9.Mul(&t, a)       // 9
	t.Mul(&z9, &z2)     // 11
	t.Square(&t)        // 22
	z2_5_0.Mul(&t, &z9) // 2^5 - 2^0

	t.Square(&z2_5_0) // 2^6 - 2^1
	for i := 1; i < 5; i++ {
		t.Square(&t) // 2^10 - 2^5
	}
	z2_10_0.Mul(&t, &z2_5_0) // 2^10 - 2^0

	t.Square(&z2_10_0) // 2^11 - 2^1
	for i := 1; i < 10; i++ {
		t.Square(&t) // 2^20 - 2^10
	}
	z2_20_0.Mul(&t, &z2_10_0) // 2^20 - 2^0

	t.Square(&z2_20_0) // 2^21 - 2^1
	for i := 1; i < 20; i++ {
		t.Square(&t) // 2^40 - 2^20
	}
	t.Mul(&t, &z2_20_0) // 2^40 - 2^0

	t.Square(&t) // 2^41 - 2^1
	for i := 1; i < 10; i++ {
		t.Square(&t) // 2^50 - 2^10
	}
	z2_50_0.Mul(&t, &z2_10_0) // 2^50 - 2^0

	t.Square(&z2_50_0) // 2^51 - 2^1
	for i := 1; i < 50; i++ {
		t.Square(&t) // 2^100 - 2^50
	}
	z2_100_0.Mul(&t, &z2_50_0) // 2^100 - 2^0

	t.Square(&z2_100_0) // 2^101 - 2^1
	for i := 1; i < 100; i++ {
		t.Square(&t) // 2^200 - 2^100
	}
	t.Mul(&t, &z2_100_0) // 2^200 - 2^0

	t.Square(&t) // 2^201 - 2^1
	for i := 1; i < 50; i++ {
		t.Square(&t) // 2^250 - 2^50
	}
	t.Mul(&t, &z2_50_0) // 2^250 - 2^0

	t.Square(&t) // 2^251 - 2^1
	t.Square(&t) // 2^252 - 2^2
	return v.Mul(&t, a) // 2^252 - 3 = (p-5)/8
}

// Equal returns 1 if v and u represent the same field element and 0
// otherwise, in constant time.
func (v *Element) Equal(u *Element) int {
	sv, su := v.Bytes(), u.Bytes()
	return subtle.ConstantTimeCompare(sv[:], su[:])
}

// IsNegative returns the sign bit of v: the lowest bit of its canonical
// representative.
func (v *Element) IsNegative() int {
	b := v.Bytes()
	return int(b[0] & 1)
}

// SetBytes unpacks a 256-bit little-endian integer into v, ignoring the
// top bit. Callers extract the sign bit from byte 31 themselves.
func (v *Element) SetBytes(x *[32]byte) *Element {
	v[0] = binary.LittleEndian.Uint64(x[0:8]) & maskLow51Bits
	v[1] = (binary.LittleEndian.Uint64(x[6:14]) >> 3) & maskLow51Bits
	v[2] = (binary.LittleEndian.Uint64(x[12:20]) >> 6) & maskLow51Bits
	v[3] = (binary.LittleEndian.Uint64(x[19:27]) >> 1) & maskLow51Bits
	v[4] = (binary.LittleEndian.Uint64(x[24:32]) >> 12) & maskLow51Bits
	return v
}

// Bytes returns the canonical 32-byte little-endian encoding of v. The
// high bit of byte 31 is always clear.
func (v *Element) Bytes() [32]byte {
	var t Element
	t.Reduce(v)

	var out [32]byte
	var buf [8]byte
	for i, l := range t {
		bitsOffset := i * 51
		binary.LittleEndian.PutUint64(buf[:], l<<uint(bitsOffset%8))
		for j, bb := range buf {
			off := bitsOffset/8 + j
			if off >= len(out) {
				break
			}
			out[off] |= bb
		}
	}
	return out
}

// Select sets v = a if cond == 1 and v = b if cond == 0.
func (v *Element) Select(a, b *Element, cond int) *Element {
	m := uint64(0) - uint64(cond)
	v[0] = m&a[0] | ^m&b[0]
	v[1] = m&a[1] | ^m&b[1]
	v[2] = m&a[2] | ^m&b[2]
	v[3] = m&a[3] | ^m&b[3]
	v[4] = m&a[4] | ^m&b[4]
	return v
}

// Swap exchanges v and u if cond == 1 and leaves both untouched if
// cond == 0, without branching on cond.
func (v *Element) Swap(u *Element, cond int) {
	m := uint64(0) - uint64(cond)
	for i := 0; i < 5; i++ {
		d := m & (v[i] ^ u[i])
		v[i] ^= d
		u[i] ^= d
	}
}
