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
	"bytes"
	"fmt"
)

// Verifier replays inclusion proofs against their claimed roots. It
// needs no tree access, only the tree hasher both sides agreed on.
type Verifier struct {
	hasher TreeHasher
}

// NewVerifier returns a Verifier for trees built with the given
// hasher.
func NewVerifier(hasher TreeHasher) Verifier {
	return Verifier{hasher: hasher}
}

// VerifyInclusion replays the audit path from the leaf hash and
// compares the result to the claimed root.
//
// A structurally inconsistent proof is rejected with
// ErrMalformedProof before any recomputation. A structurally sound
// proof that does not reproduce the root yields (false, nil): failed
// verification is the expected outcome for a bad claim, not an
// exceptional condition.
func (v Verifier) VerifyInclusion(p *InclusionProof) (bool, error) {
	if err := v.checkShape(p); err != nil {
		return false, err
	}

	computed := p.LeafHash
	for _, step := range p.Path {
		if step.SiblingOnLeft {
			computed = v.hasher.HashChildren(step.Sibling, computed)
		} else {
			computed = v.hasher.HashChildren(computed, step.Sibling)
		}
	}

	ok := bytes.Equal(computed, p.Root)
	proofsVerified.Inc(verifyOutcome(ok))
	return ok, nil
}

// checkShape validates the proof object against what (LeafIndex,
// TreeSize) imply, without touching the hash function.
func (v Verifier) checkShape(p *InclusionProof) error {
	initMetrics(nil)
	if p == nil {
		return fmt.Errorf("%w: nil proof", ErrMalformedProof)
	}
	if p.TreeSize == 0 {
		return fmt.Errorf("%w: tree size 0", ErrMalformedProof)
	}
	if p.LeafIndex >= p.TreeSize {
		return fmt.Errorf("%w: leaf index %d not below tree size %d", ErrMalformedProof, p.LeafIndex, p.TreeSize)
	}
	if len(p.LeafHash) != v.hasher.Size() {
		return fmt.Errorf("%w: leaf hash is %d bytes, want %d", ErrMalformedProof, len(p.LeafHash), v.hasher.Size())
	}
	if len(p.Root) != v.hasher.Size() {
		return fmt.Errorf("%w: root hash is %d bytes, want %d", ErrMalformedProof, len(p.Root), v.hasher.Size())
	}
	if want := pathLength(p.LeafIndex, p.TreeSize); len(p.Path) != want {
		return fmt.Errorf("%w: path has %d steps, index %d in tree of %d requires %d",
			ErrMalformedProof, len(p.Path), p.LeafIndex, p.TreeSize, want)
	}
	for i, step := range p.Path {
		if len(step.Sibling) != v.hasher.Size() {
			return fmt.Errorf("%w: sibling %d is %d bytes, want %d", ErrMalformedProof, i, len(step.Sibling), v.hasher.Size())
		}
	}
	return nil
}

func verifyOutcome(ok bool) string {
	if ok {
		return "match"
	}
	return "mismatch"
}
