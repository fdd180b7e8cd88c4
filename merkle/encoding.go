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

package merkle

import (
	"fmt"

	"golang.org/x/crypto/cryptobyte"

	"github.com/gmtrust/sm3audit/sm3"
)

// Wire format of an InclusionProof, all integers big-endian:
//
//	leaf_index  uint64
//	leaf_hash   32 bytes
//	tree_size   uint64
//	path        N × { direction uint8, sibling 32 bytes }
//	root_hash   32 bytes
//
// direction is 1 when the sibling is on the left, 0 when on the right.
// N is not encoded: it is implied by (leaf_index, tree_size), and a
// decoder rejects buffers of any other length. The claimed root rides
// at the end so the decoded object stays self-contained.
const (
	siblingOnLeft  = 1
	siblingOnRight = 0
)

// MarshalBinary encodes the proof in the wire format above.
func (p *InclusionProof) MarshalBinary() ([]byte, error) {
	if p.TreeSize == 0 || p.LeafIndex >= p.TreeSize {
		return nil, fmt.Errorf("%w: leaf index %d not below tree size %d", ErrMalformedProof, p.LeafIndex, p.TreeSize)
	}
	if len(p.LeafHash) != sm3.Size || len(p.Root) != sm3.Size {
		return nil, fmt.Errorf("%w: digest fields must be %d bytes", ErrMalformedProof, sm3.Size)
	}
	if want := pathLength(p.LeafIndex, p.TreeSize); len(p.Path) != want {
		return nil, fmt.Errorf("%w: path has %d steps, want %d", ErrMalformedProof, len(p.Path), want)
	}

	var b cryptobyte.Builder
	b.AddUint64(p.LeafIndex)
	b.AddBytes(p.LeafHash)
	b.AddUint64(p.TreeSize)
	for i, step := range p.Path {
		if len(step.Sibling) != sm3.Size {
			return nil, fmt.Errorf("%w: sibling %d must be %d bytes", ErrMalformedProof, i, sm3.Size)
		}
		if step.SiblingOnLeft {
			b.AddUint8(siblingOnLeft)
		} else {
			b.AddUint8(siblingOnRight)
		}
		b.AddBytes(step.Sibling)
	}
	b.AddBytes(p.Root)
	return b.Bytes()
}

// UnmarshalBinary decodes a proof from the wire format, rejecting
// buffers whose path length disagrees with what (leaf_index,
// tree_size) imply. All digest fields are copied out of data, so the
// caller may reuse the buffer after a successful decode.
func (p *InclusionProof) UnmarshalBinary(data []byte) error {
	s := cryptobyte.String(data)

	var out InclusionProof
	var leafHash, root []byte
	if !s.ReadUint64(&out.LeafIndex) ||
		!s.ReadBytes(&leafHash, sm3.Size) ||
		!s.ReadUint64(&out.TreeSize) {
		return fmt.Errorf("%w: truncated header", ErrMalformedProof)
	}
	if out.TreeSize == 0 || out.LeafIndex >= out.TreeSize {
		return fmt.Errorf("%w: leaf index %d not below tree size %d", ErrMalformedProof, out.LeafIndex, out.TreeSize)
	}

	steps := pathLength(out.LeafIndex, out.TreeSize)
	out.Path = make([]ProofStep, steps)
	for i := range out.Path {
		var dir uint8
		var sibling []byte
		if !s.ReadUint8(&dir) || !s.ReadBytes(&sibling, sm3.Size) {
			return fmt.Errorf("%w: truncated path at step %d of %d", ErrMalformedProof, i, steps)
		}
		if dir != siblingOnLeft && dir != siblingOnRight {
			return fmt.Errorf("%w: direction byte %#x at step %d", ErrMalformedProof, dir, i)
		}
		// ReadBytes aliases data; copy so the decoded proof outlives
		// the wire buffer.
		out.Path[i] = ProofStep{Sibling: append([]byte(nil), sibling...), SiblingOnLeft: dir == siblingOnLeft}
	}
	if !s.ReadBytes(&root, sm3.Size) {
		return fmt.Errorf("%w: truncated root", ErrMalformedProof)
	}
	if !s.Empty() {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformedProof, len(s))
	}

	out.LeafHash = append([]byte(nil), leafHash...)
	out.Root = append([]byte(nil), root...)
	*p = out
	return nil
}
