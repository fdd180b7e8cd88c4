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

// Package sm3 implements the SM3 cryptographic hash algorithm
// (GB/T 32905-2016) with its compression state exposed.
//
// Besides the usual streaming interface, the package deliberately
// exposes the Merkle–Damgård chaining state: Resume reinterprets any
// 32-byte digest as an intermediate compression state with a declared
// bit count. A resumed state is structurally indistinguishable from
// one produced by hashing real blocks, which is what makes unkeyed
// SM3 (like any unkeyed MD-style hash) subject to length extension.
// See the lengthext package for the construction built on top of it.
package sm3

import (
	"encoding/binary"
	"hash"
)

const (
	// Size is the size of an SM3 digest in bytes.
	Size = 32
	// BlockSize is the compression block size in bytes.
	BlockSize = 64
)

// Initialisation vector from the standard.
const (
	iv0 = 0x7380166f
	iv1 = 0x4914b2b9
	iv2 = 0x172442d7
	iv3 = 0xda8a0600
	iv4 = 0xa96f30bc
	iv5 = 0x163138aa
	iv6 = 0xe38dee4d
	iv7 = 0xb0fb0e4e
)

// State holds an in-progress SM3 computation: the 8-word running
// digest, a partial block buffer and the count of bits fed so far.
// The zero value is not usable; obtain a State from New or Resume.
//
// State implements hash.Hash. Sum follows the stdlib convention and
// does not consume the state; Finalize does, and a finalized State
// must not be used again.
type State struct {
	h    [8]uint32
	x    [BlockSize]byte
	nx   int
	bits uint64
	done bool
}

var _ hash.Hash = (*State)(nil)

// New returns a State initialised to the standard IV.
func New() *State {
	s := new(State)
	s.Reset()
	return s
}

// Resume returns a State whose running digest is the given digest,
// reinterpreted as 8 big-endian words, and whose bit counter is set
// to totalBits. The block buffer is empty.
//
// Any 32-byte value is accepted; there is no way to tell a genuine
// intermediate state from an arbitrary one. Callers declaring a
// totalBits that does not match how the digest was really produced
// get a well-formed but meaningless continuation.
func Resume(digest [Size]byte, totalBits uint64) *State {
	s := &State{bits: totalBits}
	for i := range s.h {
		s.h[i] = binary.BigEndian.Uint32(digest[i*4:])
	}
	return s
}

// Reset restores the State to its initial (IV) condition, clearing
// any finalized flag.
func (s *State) Reset() {
	s.h = [8]uint32{iv0, iv1, iv2, iv3, iv4, iv5, iv6, iv7}
	s.nx = 0
	s.bits = 0
	s.done = false
}

// Size returns the digest size in bytes.
func (s *State) Size() int { return Size }

// BlockSize returns the compression block size in bytes.
func (s *State) BlockSize() int { return BlockSize }

// BitCount returns the number of bits the state has accounted for so
// far, including any bits declared via Resume.
func (s *State) BitCount() uint64 { return s.bits }

// Write absorbs p into the state. It never fails; input is bounded
// only by the 64-bit bit counter.
func (s *State) Write(p []byte) (n int, err error) {
	if s.done {
		panic("sm3: Write after Finalize")
	}
	n = len(p)
	s.bits += uint64(n) * 8
	if s.nx > 0 {
		c := copy(s.x[s.nx:], p)
		s.nx += c
		if s.nx == BlockSize {
			block(s, s.x[:])
			s.nx = 0
		}
		p = p[c:]
	}
	if len(p) >= BlockSize {
		nn := len(p) &^ (BlockSize - 1)
		block(s, p[:nn])
		p = p[nn:]
	}
	if len(p) > 0 {
		s.nx = copy(s.x[:], p)
	}
	return n, nil
}

// Sum appends the digest of the data written so far to b and returns
// the result. Per hash.Hash convention it operates on a copy and
// leaves the state usable.
func (s *State) Sum(b []byte) []byte {
	d := *s
	digest := d.Finalize()
	return append(b, digest[:]...)
}

// Finalize pads the remaining input, runs the final compression and
// returns the digest as 32 big-endian bytes. The state is consumed:
// any further Write, Sum or Finalize panics.
func (s *State) Finalize() [Size]byte {
	if s.done {
		panic("sm3: Finalize on finalized state")
	}
	// The length field encodes the bits absorbed before padding; the
	// counter increment from writing the padding itself is irrelevant
	// because the state is consumed below.
	pad := padding(s.nx, s.bits)
	s.Write(pad)
	if s.nx != 0 {
		panic("sm3: padding did not end on a block boundary")
	}
	s.done = true

	var digest [Size]byte
	for i, w := range s.h {
		binary.BigEndian.PutUint32(digest[i*4:], w)
	}
	return digest
}

// Sum returns the SM3 digest of data.
func Sum(data []byte) [Size]byte {
	s := New()
	s.Write(data)
	return s.Finalize()
}
