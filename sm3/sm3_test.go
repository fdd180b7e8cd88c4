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
	"bytes"
	"strings"
	"testing"

	"github.com/gmtrust/sm3audit/testonly"
)

// Vectors from GB/T 32905-2016 appendix A.
func TestSumVectors(t *testing.T) {
	for _, tc := range []struct {
		desc string
		in   string
		want []byte
	}{
		{
			desc: "abc",
			in:   "abc",
			want: testonly.MustHexDecode("66c7f0f462eeedd9d1f2d46bdc10e4e24167c4875cf2f7a2297da02b8f4ba8e0"),
		},
		{
			desc: "two blocks",
			in:   strings.Repeat("abcd", 16),
			want: testonly.MustHexDecode("debe9ff92275b8a138604889c18e5a4d6fdb70e5387e5765293dcba39c0c5732"),
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			got := Sum([]byte(tc.in))
			if !bytes.Equal(got[:], tc.want) {
				t.Errorf("Sum(%q)=%x, want %x", tc.in, got, tc.want)
			}
		})
	}
}

// testMessage returns a deterministic pseudo-random message of n bytes.
func testMessage(n int) []byte {
	msg := make([]byte, n)
	for i := range msg {
		msg[i] = byte(i*131 + 89)
	}
	return msg
}

func TestChunkingInvariance(t *testing.T) {
	msg := testMessage(200)
	want := Sum(msg)

	// Every single split point.
	for cut := 0; cut <= len(msg); cut++ {
		s := New()
		s.Write(msg[:cut])
		s.Write(msg[cut:])
		if got := s.Finalize(); got != want {
			t.Fatalf("split at %d: digest mismatch", cut)
		}
	}

	// Irregular multi-chunk feeds, including zero-length writes.
	for _, sizes := range [][]int{
		{1, 1, 1, 197},
		{0, 64, 0, 64, 72},
		{63, 65, 72},
		{13, 17, 19, 23, 128},
		{200},
	} {
		s := New()
		rest := msg
		for _, n := range sizes {
			s.Write(rest[:n])
			rest = rest[n:]
		}
		s.Write(rest)
		if got := s.Finalize(); got != want {
			t.Errorf("chunks %v: digest mismatch", sizes)
		}
	}
}

func TestSumDoesNotConsume(t *testing.T) {
	s := New()
	s.Write([]byte("abc"))
	first := s.Sum(nil)
	second := s.Sum(nil)
	if !bytes.Equal(first, second) {
		t.Errorf("repeated Sum disagrees: %x vs %x", first, second)
	}
	// The state must still accept writes after Sum.
	s.Write([]byte("def"))
	want := Sum([]byte("abcdef"))
	if got := s.Finalize(); got != want {
		t.Errorf("Write after Sum: got %x, want %x", got, want)
	}
}

func TestFinalizeConsumes(t *testing.T) {
	mustPanic := func(desc string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", desc)
			}
		}()
		f()
	}

	s := New()
	s.Write([]byte("abc"))
	s.Finalize()
	mustPanic("Write after Finalize", func() { s.Write([]byte("x")) })
	mustPanic("double Finalize", func() { s.Finalize() })
	mustPanic("Sum after Finalize", func() { s.Sum(nil) })

	// Reset clears the finalized flag.
	s.Reset()
	s.Write([]byte("abc"))
	if got, want := s.Finalize(), Sum([]byte("abc")); got != want {
		t.Errorf("after Reset: got %x, want %x", got, want)
	}
}

// TestResumeMatchesStreaming checks that a state resumed from a
// genuine digest with the right bit count continues exactly like the
// original computation extended past its padding.
func TestResumeMatchesStreaming(t *testing.T) {
	suffix := []byte("continuation data")
	for _, n := range []int{0, 1, 55, 56, 63, 64, 65, 119, 200} {
		prefix := testMessage(n)
		d := Sum(prefix)
		pad := PaddingFor(uint64(n))

		s := Resume(d, uint64(n+len(pad))*8)
		s.Write(suffix)
		got := s.Finalize()

		full := append(append(append([]byte{}, prefix...), pad...), suffix...)
		if want := Sum(full); got != want {
			t.Errorf("n=%d: resumed digest %x, want %x", n, got, want)
		}
	}
}

func TestResumeRoundTripsState(t *testing.T) {
	d := Sum([]byte("abc"))
	s := Resume(d, 24)
	if got := s.BitCount(); got != 24 {
		t.Errorf("BitCount=%d, want 24", got)
	}
	var out [Size]byte
	for i, w := range s.h {
		out[i*4] = byte(w >> 24)
		out[i*4+1] = byte(w >> 16)
		out[i*4+2] = byte(w >> 8)
		out[i*4+3] = byte(w)
	}
	if out != d {
		t.Errorf("resumed words re-encode to %x, want %x", out, d)
	}
}

// TestBlockPathsAgree pins the unrolled compression path to the
// reference path on every block of a long pseudo-random stream.
func TestBlockPathsAgree(t *testing.T) {
	data := testMessage(64 * 257)
	fast, ref := New(), New()
	for off := 0; off < len(data); off += BlockSize {
		chunk := data[off : off+BlockSize]
		block(fast, chunk)
		blockGeneric(ref, chunk)
		if fast.h != ref.h {
			t.Fatalf("state diverged after block at offset %d:\nfast %08x\nref  %08x", off, fast.h, ref.h)
		}
	}
}

func TestHashInterface(t *testing.T) {
	s := New()
	if got := s.Size(); got != Size {
		t.Errorf("Size()=%d, want %d", got, Size)
	}
	if got := s.BlockSize(); got != BlockSize {
		t.Errorf("BlockSize()=%d, want %d", got, BlockSize)
	}
	s.Write([]byte("abc"))
	want := Sum([]byte("abc"))
	if got := s.Sum(nil); !bytes.Equal(got, want[:]) {
		t.Errorf("Sum(nil)=%x, want %x", got, want)
	}
}
