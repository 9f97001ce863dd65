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

// Package edwards implements the group of the twisted Edwards curve
//
//	-x^2 + y^2 = 1 - (121665/121666) x^2 y^2
//
// over GF(2^255-19) in extended projective coordinates, following
// Hisil-Wong-Carter-Dawson ("Twisted Edwards Curves Revisited", 2008)
// and the Ed25519 paper.
package edwards

import (
	"github.com/phlay/libeddsa/internal/field"
)

// Point is a curve point in extended coordinates: the affine point is
// (X/Z, Y/Z) and T carries the auxiliary product with T/Z = x*y. The
// neutral element is (0, 1, 0, 1).
type Point struct {
	X, Y, T, Z field.Element
}

// Precomputed is a point in the form (y-x, y+x, 2*d*x*y) used for
// mixed addition: the base-point table entries and the Q operand of
// dual scalar multiplication.
type Precomputed struct {
	Diff, Sum, Prod field.Element
}

// Identity sets p to the neutral element.
func (p *Point) Identity() *Point {
	p.X.Zero()
	p.Y.One()
	p.T.Zero()
	p.Z.One()
	return p
}

// Set sets p = q.
func (p *Point) Set(q *Point) *Point {
	*p = *q
	return p
}

// Add sets p = q + r using the unified extended-coordinate formulas
// with the cached 2d constant. Any of the arguments may alias.
func (p *Point) Add(q, r *Point) *Point {
	var a, b, c, d, e, f, g, h, t field.Element

	a.Sub(&q.Y, &q.X)
	t.Sub(&r.Y, &r.X)
	a.Mul(&a, &t)

	b.Add(&q.Y, &q.X)
	t.Add(&r.Y, &r.X)
	b.Mul(&b, &t)

	c.Mul(&q.T, &r.T)
	c.Mul(&c, field.D2)

	d.Mul(&q.Z, &r.Z)
	d.Scale2(&d)

	e.Sub(&b, &a)
	f.Sub(&d, &c)
	g.Add(&d, &c)
	h.Add(&b, &a)

	p.X.Mul(&e, &f)
	p.Y.Mul(&g, &h)
	p.T.Mul(&e, &h)
	p.Z.Mul(&f, &g)
	return p
}

// Sub sets p = q - r. A touch faster than negating r and adding, since
// negation only swaps the y-x and y+x factors of r and flips the sign
// of the 2d term.
func (p *Point) Sub(q, r *Point) *Point {
	var a, b, c, d, e, f, g, h, t field.Element

	a.Sub(&q.Y, &q.X)
	t.Add(&r.Y, &r.X)
	a.Mul(&a, &t)

	b.Add(&q.Y, &q.X)
	t.Sub(&r.Y, &r.X)
	b.Mul(&b, &t)

	c.Mul(&q.T, &r.T)
	c.Mul(&c, field.MinusD2)

	d.Mul(&q.Z, &r.Z)
	d.Scale2(&d)

	e.Sub(&b, &a)
	f.Sub(&d, &c)
	g.Add(&d, &c)
	h.Add(&b, &a)

	p.X.Mul(&e, &f)
	p.Y.Mul(&g, &h)
	p.T.Mul(&e, &h)
	p.Z.Mul(&f, &g)
	return p
}

// Double sets p = 2*q. Special case of Add turning four
// multiplications into squarings.
func (p *Point) Double(q *Point) *Point {
	var a, b, c, d, e, f, g, h field.Element

	a.Sub(&q.Y, &q.X)
	a.Square(&a)

	b.Add(&q.Y, &q.X)
	b.Square(&b)

	c.Square(&q.T)
	c.Mul(&c, field.D2)

	d.Square(&q.Z)
	d.Scale2(&d)

	e.Sub(&b, &a)
	f.Sub(&d, &c)
	g.Add(&d, &c)
	h.Add(&b, &a)

	p.X.Mul(&e, &f)
	p.Y.Mul(&g, &h)
	p.T.Mul(&e, &h)
	p.Z.Mul(&f, &g)
	return p
}

// AddPrecomputed sets p = q + r with r in precomputed form. This is
// the hot path of base-point scalar multiplication.
func (p *Point) AddPrecomputed(q *Point, r *Precomputed) *Point {
	var a, b, c, d, e, f, g, h field.Element

	a.Sub(&q.Y, &q.X)
	a.Mul(&a, &r.Diff)

	b.Add(&q.Y, &q.X)
	b.Mul(&b, &r.Sum)

	c.Mul(&q.T, &r.Prod)
	d.Scale2(&q.Z)

	e.Sub(&b, &a)
	f.Sub(&d, &c)
	g.Add(&d, &c)
	h.Add(&b, &a)

	p.X.Mul(&e, &f)
	p.Y.Mul(&g, &h)
	p.T.Mul(&e, &h)
	p.Z.Mul(&f, &g)
	return p
}

// SubPrecomputed sets p = q - r with r in precomputed form.
func (p *Point) SubPrecomputed(q *Point, r *Precomputed) *Point {
	var a, b, c, d, e, f, g, h field.Element

	a.Sub(&q.Y, &q.X)
	a.Mul(&a, &r.Sum)

	b.Add(&q.Y, &q.X)
	b.Mul(&b, &r.Diff)

	c.Mul(&q.T, &r.Prod)
	c.Negate(&c)

	d.Scale2(&q.Z)

	e.Sub(&b, &a)
	f.Sub(&d, &c)
	g.Add(&d, &c)
	h.Add(&b, &a)

	p.X.Mul(&e, &f)
	p.Y.Mul(&g, &h)
	p.T.Mul(&e, &h)
	p.Z.Mul(&f, &g)
	return p
}

// FromPoint builds the precomputed form of p, normalizing to Z = 1 on
// the way so the mixed-addition formulas apply for any input.
func (pc *Precomputed) FromPoint(p *Point) *Precomputed {
	var invZ field.Element

	pc.Diff.Sub(&p.Y, &p.X)
	pc.Sum.Add(&p.Y, &p.X)
	pc.Prod.Mul(&p.T, field.D2)

	invZ.Invert(&p.Z)
	pc.Diff.Mul(&pc.Diff, &invZ)
	pc.Sum.Mul(&pc.Sum, &invZ)
	pc.Prod.Mul(&pc.Prod, &invZ)
	return pc
}

// Negate sets p = -q.
func (p *Point) Negate(q *Point) *Point {
	p.X.Negate(&q.X)
	p.Y.Set(&q.Y)
	p.T.Negate(&q.T)
	p.Z.Set(&q.Z)
	return p
}

// Equal returns 1 if p and q represent the same projective point and 0
// otherwise, by cross-multiplying out the Z denominators.
func (p *Point) Equal(q *Point) int {
	var t1, t2, t3, t4 field.Element
	t1.Mul(&p.X, &q.Z)
	t2.Mul(&q.X, &p.Z)
	t3.Mul(&p.Y, &q.Z)
	t4.Mul(&q.Y, &p.Z)
	return t1.Equal(&t2) & t3.Equal(&t4)
}

// IsSmallOrder reports whether p vanishes under multiplication by the
// cofactor, i.e. lies in the 8-torsion subgroup.
func (p *Point) IsSmallOrder() bool {
	var t, id Point
	t.Double(p)
	t.Double(&t)
	t.Double(&t)
	id.Identity()
	return t.Equal(&id) == 1
}

// SetBytes decodes the packed 256-bit encoding of a point: 255 bits of
// y and the sign of x. The missing x is recovered by solving the curve
// equation with one combined square root and inversion. It returns
// false if no square root exists or the encoding is the invalid
// x = 0 / sign = 1 form; p is unusable in that case.
func (p *Point) SetBytes(in *[32]byte) bool {
	tmp := *in
	sign := int(tmp[31] >> 7)
	tmp[31] &= 0x7f

	p.Y.SetBytes(&tmp)
	p.Z.One()

	// u = y^2 - 1, v = d*y^2 + 1
	var one, u, v field.Element
	one.One()
	u.Square(&p.Y)
	v.Mul(field.D, &u)
	u.Sub(&u, &one)
	v.Add(&v, &one)

	// x = u*v^3 * (u*v^7)^((p-5)/8) is a square root of u/v whenever
	// one exists, up to a factor of sqrt(-1).
	var a, b, x field.Element
	a.Square(&v)  // v^2
	b.Square(&a)  // v^4
	a.Mul(&a, &u) // u*v^2
	a.Mul(&a, &v) // u*v^3
	b.Mul(&b, &a) // u*v^7
	b.Pow2523(&b)
	x.Mul(&b, &a)

	var vxx, negU field.Element
	vxx.Square(&x)
	vxx.Mul(&vxx, &v)
	negU.Negate(&u)
	switch {
	case vxx.Equal(&u) == 1:
		// x is already the right root
	case vxx.Equal(&negU) == 1:
		x.Mul(&x, field.SqrtM1)
	default:
		return false
	}

	var zero field.Element
	if sign == 1 && x.Equal(&zero) == 1 {
		return false
	}

	x.Reduce(&x)
	if x.IsNegative() != sign {
		x.Negate(&x)
	}

	p.X.Set(&x)
	p.T.Mul(&p.X, &p.Y)
	return true
}

// Bytes encodes p into the packed 256-bit format: y in affine
// coordinates with the sign of x in bit 255.
func (p *Point) Bytes() [32]byte {
	var zinv, x, y field.Element

	zinv.Invert(&p.Z)
	x.Mul(&p.X, &zinv)
	y.Mul(&p.Y, &zinv)

	out := y.Bytes()
	out[31] |= byte(x.IsNegative() << 7)
	return out
}
