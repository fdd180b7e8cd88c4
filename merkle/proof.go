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

import "fmt"

// ProofStep is one element of an audit path: the digest of the
// sibling subtree and which side of the split it sits on.
type ProofStep struct {
	Sibling       []byte
	SiblingOnLeft bool
}

// InclusionProof proves that a leaf is included under a claimed root.
// It is a self-contained value object: verification needs no access to
// the tree that produced it, and copies may be shared freely across
// goroutines.
type InclusionProof struct {
	// LeafIndex is the zero-based position of the leaf.
	LeafIndex uint64
	// LeafHash is the domain-separated digest of the leaf data.
	LeafHash []byte
	// TreeSize is the leaf count of the tree the proof was drawn from.
	TreeSize uint64
	// Path holds the sibling digests, ordered from the leaf up to the
	// root. Its length is fixed by (LeafIndex, TreeSize).
	Path []ProofStep
	// Root is the claimed root digest.
	Root []byte
}

// InclusionProof returns the audit path for the leaf at the given
// index, or ErrIndexOutOfRange if the tree has no such leaf. It never
// degrades to a default proof.
func (t *Tree) InclusionProof(index uint64) (*InclusionProof, error) {
	initMetrics(nil)
	if index >= t.size {
		return nil, fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, index, t.size)
	}

	// Walk root to leaf, recording the digest of whichever side the
	// target is not on; reverse at the end so the path runs leaf to
	// root as verifiers consume it.
	path := make([]ProofStep, 0, pathLength(index, t.size))
	n := t.root
	lo, hi := uint64(0), t.size
	for hi-lo > 1 {
		k := splitPoint(hi - lo)
		if index < lo+k {
			path = append(path, ProofStep{Sibling: append([]byte{}, n.right.hash...), SiblingOnLeft: false})
			n, hi = n.left, lo+k
		} else {
			path = append(path, ProofStep{Sibling: append([]byte{}, n.left.hash...), SiblingOnLeft: true})
			n, lo = n.right, lo+k
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	proofsGenerated.Inc()
	return &InclusionProof{
		LeafIndex: index,
		LeafHash:  append([]byte{}, t.leaves[index]...),
		TreeSize:  t.size,
		Path:      path,
		Root:      t.Root(),
	}, nil
}

// pathLength returns the audit path length the recursive split
// structure implies for the given leaf index and tree size. Requires
// index < size and size > 0.
func pathLength(index, size uint64) int {
	l := 0
	lo, hi := uint64(0), size
	for hi-lo > 1 {
		if k := splitPoint(hi - lo); index < lo+k {
			hi = lo + k
		} else {
			lo += k
		}
		l++
	}
	return l
}
