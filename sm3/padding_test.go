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
	"testing"
)

func TestPaddingForProperties(t *testing.T) {
	for n := uint64(0); n <= 200; n++ {
		pad := PaddingFor(n)

		if got := len(pad); got < 9 || got > 72 {
			t.Errorf("n=%d: padding length %d outside [9,72]", n, got)
		}
		if (n+uint64(len(pad)))%BlockSize != 0 {
			t.Errorf("n=%d: padded length %d not a multiple of %d", n, n+uint64(len(pad)), BlockSize)
		}
		if pad[0] != 0x80 {
			t.Errorf("n=%d: padding starts with %#x, want 0x80", n, pad[0])
		}
		for i, b := range pad[1 : len(pad)-8] {
			if b != 0 {
				t.Errorf("n=%d: non-zero byte %#x at padding offset %d", n, b, i+1)
			}
		}
		if got := binary.BigEndian.Uint64(pad[len(pad)-8:]); got != n*8 {
			t.Errorf("n=%d: length field %d, want %d", n, got, n*8)
		}
	}
}

// The padding emitted by Finalize must agree with PaddingFor: hashing
// msg‖PaddingFor(len(msg)) with no further padding content before the
// final block means Sum(msg) equals the raw compression of the padded
// stream. Resume-based tests in sm3_test.go cover the same agreement
// end to end; here we check the block alignment directly.
func TestPaddingMatchesFinalize(t *testing.T) {
	for n := 0; n <= 130; n++ {
		msg := testMessage(n)
		pad := PaddingFor(uint64(n))
		padded := append(append([]byte{}, msg...), pad...)
		if len(padded)%BlockSize != 0 {
			t.Fatalf("n=%d: padded stream not block aligned", n)
		}

		// Drive the padded stream through the raw compression and
		// compare with the streaming digest.
		s := New()
		block(s, padded)
		var want [Size]byte
		for i, w := range s.h {
			binary.BigEndian.PutUint32(want[i*4:], w)
		}
		if got := Sum(msg); got != want {
			t.Errorf("n=%d: Finalize digest %x, raw padded compression %x", n, got, want)
		}
	}
}
