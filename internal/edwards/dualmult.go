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

// DualScalarMult sets p = x*B + y*q using Shamir's trick over the
// joint sparse form of the two scalars.
//
// This runs in variable time and must only be used on public inputs,
// like the signature scalar, hash scalar and public key of Ed25519
// verification. Both scalars must be reduced, and p must not alias q.
func (p *Point) DualScalarMult(x, y *scalar.Scalar, q *Point) *Point {
	var u0, u1 [scalar.JSFLen]int8
	n := scalar.JSF(&u0, &u1, x, y)

	p.Identity()
	if n < 0 {
		return p
	}

	// precompute Q, Q+B and Q-B so that every nonzero digit pair costs
	// a single addition
	var qpb, qmb Point
	var pcq Precomputed
	qpb.AddPrecomputed(q, &basepointPC)
	qmb.SubPrecomputed(q, &basepointPC)
	pcq.FromPoint(q)

	for i := n; ; i-- {
		switch u0[i] {
		case 1:
			switch u1[i] {
			case 1:
				p.Add(p, &qpb)
			case -1:
				p.Sub(p, &qmb)
			default:
				p.AddPrecomputed(p, &basepointPC)
			}
		case -1:
			switch u1[i] {
			case 1:
				p.Add(p, &qmb)
			case -1:
				p.Sub(p, &qpb)
			default:
				p.SubPrecomputed(p, &basepointPC)
			}
		default:
			switch u1[i] {
			case 1:
				p.AddPrecomputed(p, &pcq)
			case -1:
				p.SubPrecomputed(p, &pcq)
			}
		}

		if i == 0 {
			break
		}
		p.Double(p)
	}
	return p
}
