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

package montgomery

import (
	"bytes"
	"encoding/hex"
	mathrand "math/rand"
	"testing"

	"golang.org/x/crypto/curve25519"
)

// scalarMult clamps x and runs the ladder on the packed point u,
// returning the packed result, mirroring how the public X25519
// function drives this package.
func scalarMult(x, u *[32]byte) [32]byte {
	s := *x
	s[0] &= 0xf8
	s[31] &= 0x7f
	s[31] |= 0x40

	var p, res Point
	p.X.SetBytes(u)
	p.Z.One()

	ScalarMult(&res, &p, &s)

	res.Z.Invert(&res.Z)
	res.X.Mul(&res.X, &res.Z)
	return res.X.Bytes()
}

func mustUnhex32(t *testing.T, s string) *[32]byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		t.Fatalf("montgomery: bad test vector %q", s)
	}
	var out [32]byte
	copy(out[:], b)
	return &out
}

func TestRFC7748Vectors(t *testing.T) {
	vectors := []struct {
		scalar, point, want string
	}{
		{
			scalar: "a546e36bf0527c9d3b16154b82465edd62144c0ac1fc5a18506a2244ba449ac4",
			point:  "e6db6867583030db3594c1a424b15f7c726624ec26b3353b10a903a6d0ab1c4c",
			want:   "c3da55379de9c6908e94ea4df28d084f32eccf03491c71f754b4075577a28552",
		},
		{
			scalar: "4b66e9d4d1b4673c5ad22691957d6af5c11b6421e0ea01d42ca4169e7918ba0d",
			point:  "e5210f12786811d3f4b7959d0538ae2c31dbe7106fc03c3efc4cd549c715a493",
			want:   "95cbde9476e8907d7aade45cb4b873f88b595a68799fa152e6f8f7647aac7957",
		},
	}

	for i, vec := range vectors {
		got := scalarMult(mustUnhex32(t, vec.scalar), mustUnhex32(t, vec.point))
		want := mustUnhex32(t, vec.want)
		if !bytes.Equal(got[:], want[:]) {
			t.Fatalf("montgomery: vector %d mismatch (got %x)", i, got)
		}
	}
}

func TestAgainstReference(t *testing.T) {
	rng := mathrand.New(mathrand.NewSource(1))

	for i := 0; i < 256; i++ {
		var x, u [32]byte
		rng.Read(x[:])
		rng.Read(u[:])
		u[31] &= 0x7f

		got := scalarMult(&x, &u)

		var want [32]byte
		curve25519.ScalarMult(&want, &x, &u) //nolint:staticcheck // reference without the zero check

		if !bytes.Equal(got[:], want[:]) {
			t.Fatalf("montgomery: ladder disagrees with reference for "+
				"scalar %x, point %x", x, u)
		}
	}
}

func TestLadderOfZero(t *testing.T) {
	// u = 0 is the image of the point at infinity and must map to 0
	// under every scalar.
	var x, u [32]byte
	x[0] = 0xff

	got := scalarMult(&x, &u)
	var zero [32]byte
	if !bytes.Equal(got[:], zero[:]) {
		t.Fatalf("montgomery: scalar multiple of u=0 is %x, want 0", got)
	}
}
