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

package scalar

// JSFLen is the number of digit slots a joint sparse form can occupy:
// one per scalar bit plus a possible carry digit.
const JSFLen = limbs*limbBits + 1

func jsfDigit(a, b uint64) int8 {
	u := 2 - int8(a&3)
	if u == 2 {
		return 0
	}
	if ((a&7) == 3 || (a&7) == 5) && (b&3) == 2 {
		return -u
	}
	return u
}

// JSF computes the joint sparse form of a and b, writing signed digits
// in {-1, 0, 1} to u0 and u1. It returns the highest index k with
// (u0[k], u1[k]) != (0, 0), or -1 if both scalars are zero.
//
// Runs in variable time; the recoding only feeds the vartime dual
// scalar multiplication over public inputs. Both scalars must be
// reduced.
func JSF(u0, u1 *[JSFLen]int8, a, b *Scalar) int {
	var n0, n1 uint64
	k := 0

	for i := 0; i < limbs; i++ {
		n0 += a[i]
		n1 += b[i]

		for j := 0; j < limbBits; j++ {
			d0 := jsfDigit(n0, n1)
			d1 := jsfDigit(n1, n0)
			u0[k] = d0
			u1[k] = d1

			n0 = (n0 - uint64(int64(d0))) >> 1
			n1 = (n1 - uint64(int64(d1))) >> 1
			k++
		}
	}
	u0[k] = jsfDigit(n0, n1)
	u1[k] = jsfDigit(n1, n0)

	for k >= 0 && u0[k] == 0 && u1[k] == 0 {
		k--
	}
	return k
}
