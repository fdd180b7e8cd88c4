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

// Package merkle implements an RFC 6962 Merkle audit tree over SM3,
// with inclusion proof generation and verification.
//
// Trees are built once from an ordered leaf sequence and are read-only
// afterwards. Non-power-of-two leaf counts are handled by the RFC 6962
// recursive split rule (split at the largest power of two strictly
// below the span size); no synthetic padding leaves are introduced.
//
// Error contract: out-of-range proof requests surface as
// ErrIndexOutOfRange, structurally broken proof objects as
// ErrMalformedProof, and configured size limits as errors wrapping
// ErrResourceExhausted. A proof that simply fails to verify is not an
// error; see Verifier.VerifyInclusion.
package merkle

import (
	"hash"

	"github.com/gmtrust/sm3audit/sm3"
)

// Domain separation prefixes from RFC 6962. Any interop partner must
// use identical values or leaf and node hashes trade places.
const (
	RFC6962LeafHashPrefix = 0
	RFC6962NodeHashPrefix = 1
)

// TreeHasher implements the RFC 6962 tree hashing algorithm over an
// arbitrary underlying hash.
type TreeHasher struct {
	newHash func() hash.Hash
	size    int
}

// NewTreeHasher creates a TreeHasher over the hash constructed by f.
func NewTreeHasher(f func() hash.Hash) TreeHasher {
	return TreeHasher{newHash: f, size: f().Size()}
}

// DefaultHasher is the SM3-backed TreeHasher used throughout this
// module.
var DefaultHasher = NewTreeHasher(func() hash.Hash { return sm3.New() })

// HashLeaf returns the Merkle tree leaf hash of the data passed in
// through leaf. The data in leaf is prefixed by the LeafHashPrefix.
func (t TreeHasher) HashLeaf(leaf []byte) []byte {
	h := t.newHash()
	h.Write([]byte{RFC6962LeafHashPrefix})
	h.Write(leaf)
	return h.Sum(nil)
}

// HashChildren returns the inner Merkle tree node hash of the two
// child nodes l and r. The hashed structure is NodeHashPrefix||l||r.
func (t TreeHasher) HashChildren(l, r []byte) []byte {
	h := t.newHash()
	h.Write([]byte{RFC6962NodeHashPrefix})
	h.Write(l)
	h.Write(r)
	return h.Sum(nil)
}

// Size returns the number of bytes in output hashes.
func (t TreeHasher) Size() int { return t.size }
