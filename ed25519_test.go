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
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"math/big"
	mathrand "math/rand"
	"testing"

	"filippo.io/edwards25519"
)

func mustUnhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("eddsa: bad hex in test vector: %v", err)
	}
	return b
}

func unhex32(t *testing.T, s string) *[32]byte {
	t.Helper()
	var out [32]byte
	if copy(out[:], mustUnhex(t, s)) != 32 {
		t.Fatalf("eddsa: test vector %q is not 32 bytes", s)
	}
	return &out
}

func unhex64(t *testing.T, s string) *[64]byte {
	t.Helper()
	var out [64]byte
	if copy(out[:], mustUnhex(t, s)) != 64 {
		t.Fatalf("eddsa: test vector %q is not 64 bytes", s)
	}
	return &out
}

// RFC 8032, section 7.1.
var ed25519Vectors = []struct {
	sec, pub, msg, sig string
}{
	{
		sec: "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60",
		pub: "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a",
		msg: "",
		sig: "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e06522490155" +
			"5fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b",
	},
	{
		sec: "4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb",
		pub: "3d4017c3e843895a92b70aa74d1b7ebc9c982ccf2ec4968cc0cd55f12af4660c",
		msg: "72",
		sig: "92a009a9f0d4cab8720e820b5f642540a2b27b5416503f8fb3762223ebdb69da" +
			"085ac1e43e15996e458f3613d0f11d8c387b2eaeb4302aeeb00d291612bb0c00",
	},
	{
		sec: "c5aa8df43f9f837bedb7442f31dcb7b166d38535076f094b85ce3a2e0b4458f7",
		pub: "fc51cd8e6218a1a38da47ed00230f0580816ed13ba3303ac5deb911548908025",
		msg: "af82",
		sig: "6291d657deec24024827e69c3abe01a30ce548a284743a445e3680d7db5ac3ac" +
			"18ff9b538d16f290ae67f760984dc6594a7c15e9716ed28dc027beceea1ec40a",
	},
}

func TestEd25519Vectors(t *testing.T) {
	for i, vec := range ed25519Vectors {
		sec := unhex32(t, vec.sec)
		wantPub := unhex32(t, vec.pub)
		wantSig := unhex64(t, vec.sig)
		msg := mustUnhex(t, vec.msg)

		var pub [32]byte
		Ed25519GenPub(&pub, sec)
		if pub != *wantPub {
			t.Fatalf("eddsa: vector %d public key mismatch (got %x)", i, pub)
		}

		var sig [64]byte
		Ed25519Sign(&sig, sec, &pub, msg)
		if sig != *wantSig {
			t.Fatalf("eddsa: vector %d signature mismatch (got %x)", i, sig)
		}

		if !Ed25519Verify(&sig, &pub, msg) {
			t.Fatalf("eddsa: vector %d signature does not verify", i)
		}

		sig[0] ^= 1
		if Ed25519Verify(&sig, &pub, msg) {
			t.Fatalf("eddsa: vector %d verifies with corrupted signature", i)
		}
	}
}

func TestEd25519MessageLengths(t *testing.T) {
	rng := mathrand.New(mathrand.NewSource(1))

	var table [1023]byte
	for i := range table {
		table[i] = byte(i)
	}

	var sec, pub [32]byte
	rng.Read(sec[:])
	Ed25519GenPub(&pub, &sec)

	for _, n := range []int{0, 1, 32, 64, 128, 512, 1023} {
		msg := table[:n]

		var sig [64]byte
		Ed25519Sign(&sig, &sec, &pub, msg)
		if !Ed25519Verify(&sig, &pub, msg) {
			t.Fatalf("eddsa: %d-byte message does not verify", n)
		}

		if n == 0 {
			continue
		}
		flipped := make([]byte, n)
		copy(flipped, msg)
		bit := rng.Intn(8 * n)
		flipped[bit/8] ^= 1 << uint(bit%8)
		if Ed25519Verify(&sig, &pub, flipped) {
			t.Fatalf("eddsa: %d-byte message verifies after bit flip", n)
		}
	}
}

func TestEd25519BitFlips(t *testing.T) {
	rng := mathrand.New(mathrand.NewSource(2))

	var sec, pub [32]byte
	rng.Read(sec[:])
	Ed25519GenPub(&pub, &sec)

	msg := []byte("test message for bit flipping")
	var sig [64]byte
	Ed25519Sign(&sig, &sec, &pub, msg)

	t.Run("Signature", func(t *testing.T) {
		for i := 0; i < 64; i++ {
			flipped := sig
			flipped[rng.Intn(64)] ^= 1 << uint(rng.Intn(8))
			if flipped == sig {
				continue
			}
			if Ed25519Verify(&flipped, &pub, msg) {
				t.Fatalf("eddsa: corrupted signature verifies")
			}
		}
	})

	t.Run("PublicKey", func(t *testing.T) {
		for i := 0; i < 64; i++ {
			badPub := pub
			badPub[rng.Intn(32)] ^= 1 << uint(rng.Intn(8))
			if badPub == pub {
				continue
			}
			if Ed25519Verify(&sig, &badPub, msg) {
				t.Fatalf("eddsa: signature verifies under corrupted key")
			}
		}
	})
}

func TestEd25519AgainstStdlib(t *testing.T) {
	rng := mathrand.New(mathrand.NewSource(3))

	for i := 0; i < 128; i++ {
		var sec, pub [32]byte
		rng.Read(sec[:])
		Ed25519GenPub(&pub, &sec)

		priv := ed25519.NewKeyFromSeed(sec[:])
		if !bytes.Equal(pub[:], priv.Public().(ed25519.PublicKey)) {
			t.Fatalf("eddsa: public key disagrees with crypto/ed25519")
		}

		msg := make([]byte, rng.Intn(256))
		rng.Read(msg)

		var sig [64]byte
		Ed25519Sign(&sig, &sec, &pub, msg)
		if !bytes.Equal(sig[:], ed25519.Sign(priv, msg)) {
			t.Fatalf("eddsa: signature disagrees with crypto/ed25519")
		}

		if !ed25519.Verify(priv.Public().(ed25519.PublicKey), msg, sig[:]) {
			t.Fatalf("eddsa: crypto/ed25519 rejects our signature")
		}
		if !Ed25519Verify(&sig, &pub, msg) {
			t.Fatalf("eddsa: we reject our own signature")
		}
	}
}

func TestEd25519VerifyRejectsNonCanonicalS(t *testing.T) {
	sec := unhex32(t, ed25519Vectors[0].sec)
	pub := unhex32(t, ed25519Vectors[0].pub)

	var sig [64]byte
	Ed25519Sign(&sig, sec, pub, nil)
	if !Ed25519Verify(&sig, pub, nil) {
		t.Fatalf("eddsa: canonical signature does not verify")
	}

	// adding the group order to S preserves the verification equation
	// but must be rejected as non-canonical
	order, _ := new(big.Int).SetString(
		"7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
	s := new(big.Int).SetBytes(reverse32(sig[32:]))
	s.Add(s, order)

	mangled := sig
	sb := s.Bytes()
	for i := range mangled[32:] {
		mangled[32+i] = 0
	}
	for i, b := range sb {
		mangled[32+len(sb)-1-i] = b
	}

	if Ed25519Verify(&mangled, pub, nil) {
		t.Fatalf("eddsa: signature with S + ell verifies")
	}
}

func TestEd25519VerifyRejectsSmallOrderKey(t *testing.T) {
	// the point of order two as a public key
	badPub := unhex32(t,
		"ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f")

	var sig [64]byte
	if Ed25519Verify(&sig, badPub, []byte("x")) {
		t.Fatalf("eddsa: small-order public key accepted")
	}
}

func TestEd25519VerifyRejectsInvalidKey(t *testing.T) {
	rng := mathrand.New(mathrand.NewSource(4))

	var sec, pub [32]byte
	rng.Read(sec[:])
	Ed25519GenPub(&pub, &sec)

	msg := []byte("message")
	var sig [64]byte
	Ed25519Sign(&sig, &sec, &pub, msg)

	// hunt for an undecodable mutation of the public key; about half
	// of all y-coordinates have no matching x
	found := false
	for i := 0; i < 64 && !found; i++ {
		badPub := pub
		badPub[rng.Intn(31)] ^= byte(1 + rng.Intn(255))
		if _, err := edwards25519.NewIdentityPoint().SetBytes(badPub[:]); err == nil {
			continue
		}
		if Ed25519Verify(&sig, &badPub, msg) {
			t.Fatalf("eddsa: signature verifies under mutated key %x", badPub)
		}
		found = true
	}
	if !found {
		t.Fatalf("eddsa: could not construct a rejected key mutation")
	}
}

func reverse32(b []byte) []byte {
	out := make([]byte, 32)
	for i := 0; i < 32; i++ {
		out[31-i] = b[i]
	}
	return out
}
