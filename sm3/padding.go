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

import "encoding/binary"

// PaddingFor returns the exact padding SM3 appends to a message of n
// bytes: 0x80, then zero bytes, then the 8-byte big-endian bit length,
// sized so the padded message is a whole number of 64-byte blocks with
// the length field in the last 8 bytes. The result depends only on n,
// never on message content, and is between 9 and 72 bytes long.
//
// Finalize uses the same construction internally, so a digest resumed
// past PaddingFor(n) bytes continues exactly where a real computation
// over some n-byte message left off.
func PaddingFor(n uint64) []byte {
	return padding(int(n%BlockSize), n*8)
}

// padding builds the padding for a state with buffered bytes pending
// in the current block and bits absorbed in total.
func padding(buffered int, bits uint64) []byte {
	padLen := BlockSize - buffered
	if padLen < 9 {
		padLen += BlockSize
	}
	pad := make([]byte, padLen)
	pad[0] = 0x80
	binary.BigEndian.PutUint64(pad[padLen-8:], bits)
	return pad
}
