// Copyright 2026 The sm3audit Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sm3

import (
	"encoding/binary"
	"math/bits"
)

// tTable holds ROTL(T_j, j mod 32) for all 64 rounds, with
// T_j = 0x79cc4519 for j < 16 and 0x7a879d8a otherwise.
var tTable = func() [64]uint32 {
	var t [64]uint32
	for j := range t {
		base := uint32(0x79cc4519)
		if j >= 16 {
			base = 0x7a879d8a
		}
		t[j] = bits.RotateLeft32(base, j%32)
	}
	return t
}()

func p0(x uint32) uint32 { return x ^ bits.RotateLeft32(x, 9) ^ bits.RotateLeft32(x, 17) }
func p1(x uint32) uint32 { return x ^ bits.RotateLeft32(x, 15) ^ bits.RotateLeft32(x, 23) }

// ff and gg are the boolean functions for rounds 16..63. Rounds 0..15
// use plain XOR for both and are inlined at the call sites.
func ff(x, y, z uint32) uint32 { return (x & y) | (x & z) | (y & z) }
func gg(x, y, z uint32) uint32 { return (x & y) | (^x & z) }

// expand fills the 68-word message schedule and the 64 derived words
// for one 512-bit block.
func expand(p []byte, w *[68]uint32, w1 *[64]uint32) {
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	for j := 16; j < 68; j++ {
		w[j] = p1(w[j-16]^w[j-9]^bits.RotateLeft32(w[j-3], 15)) ^
			bits.RotateLeft32(w[j-13], 7) ^ w[j-6]
	}
	for j := 0; j < 64; j++ {
		w1[j] = w[j] ^ w[j+4]
	}
}

// block is the default compression path: XOR rounds 0..15 hoisted out
// of the round-type branch. Must stay bit-identical to blockGeneric;
// TestBlockPathsAgree pins the equivalence.
func block(s *State, p []byte) {
	var w [68]uint32
	var w1 [64]uint32
	for len(p) >= BlockSize {
		expand(p, &w, &w1)

		a, b, c, d := s.h[0], s.h[1], s.h[2], s.h[3]
		e, f, g, h := s.h[4], s.h[5], s.h[6], s.h[7]

		for j := 0; j < 16; j++ {
			a12 := bits.RotateLeft32(a, 12)
			ss1 := bits.RotateLeft32(a12+e+tTable[j], 7)
			ss2 := ss1 ^ a12
			tt1 := (a ^ b ^ c) + d + ss2 + w1[j]
			tt2 := (e ^ f ^ g) + h + ss1 + w[j]
			d = c
			c = bits.RotateLeft32(b, 9)
			b = a
			a = tt1
			h = g
			g = bits.RotateLeft32(f, 19)
			f = e
			e = p0(tt2)
		}
		for j := 16; j < 64; j++ {
			a12 := bits.RotateLeft32(a, 12)
			ss1 := bits.RotateLeft32(a12+e+tTable[j], 7)
			ss2 := ss1 ^ a12
			tt1 := ff(a, b, c) + d + ss2 + w1[j]
			tt2 := gg(e, f, g) + h + ss1 + w[j]
			d = c
			c = bits.RotateLeft32(b, 9)
			b = a
			a = tt1
			h = g
			g = bits.RotateLeft32(f, 19)
			f = e
			e = p0(tt2)
		}

		s.h[0] ^= a
		s.h[1] ^= b
		s.h[2] ^= c
		s.h[3] ^= d
		s.h[4] ^= e
		s.h[5] ^= f
		s.h[6] ^= g
		s.h[7] ^= h

		p = p[BlockSize:]
	}
}

// blockGeneric is the straight-from-the-standard reference path: a
// single 64-round loop branching on the round index. It exists so the
// optimised path above always has a second source of truth to be
// tested against.
func blockGeneric(s *State, p []byte) {
	var w [68]uint32
	var w1 [64]uint32
	for len(p) >= BlockSize {
		expand(p, &w, &w1)

		a, b, c, d := s.h[0], s.h[1], s.h[2], s.h[3]
		e, f, g, h := s.h[4], s.h[5], s.h[6], s.h[7]

		for j := 0; j < 64; j++ {
			a12 := bits.RotateLeft32(a, 12)
			ss1 := bits.RotateLeft32(a12+e+tTable[j], 7)
			ss2 := ss1 ^ a12
			var tt1, tt2 uint32
			if j < 16 {
				tt1 = (a ^ b ^ c) + d + ss2 + w1[j]
				tt2 = (e ^ f ^ g) + h + ss1 + w[j]
			} else {
				tt1 = ff(a, b, c) + d + ss2 + w1[j]
				tt2 = gg(e, f, g) + h + ss1 + w[j]
			}
			d = c
			c = bits.RotateLeft32(b, 9)
			b = a
			a = tt1
			h = g
			g = bits.RotateLeft32(f, 19)
			f = e
			e = p0(tt2)
		}

		s.h[0] ^= a
		s.h[1] ^= b
		s.h[2] ^= c
		s.h[3] ^= d
		s.h[4] ^= e
		s.h[5] ^= f
		s.h[6] ^= g
		s.h[7] ^= h

		p = p[BlockSize:]
	}
}
