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
	"errors"
	"fmt"
	"math/bits"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

var (
	// ErrIndexOutOfRange is returned when a proof is requested for a
	// leaf index at or beyond the tree size.
	ErrIndexOutOfRange = errors.New("merkle: leaf index out of range")
	// ErrMalformedProof is returned when a proof object is structurally
	// inconsistent, before any recomputation is attempted.
	ErrMalformedProof = errors.New("merkle: malformed proof")
	// ErrResourceExhausted is wrapped by errors reporting that an input
	// exceeds a configured limit.
	ErrResourceExhausted = errors.New("merkle: resource limit exceeded")
)

// Tree is an immutable RFC 6962 Merkle tree over a fixed, ordered leaf
// sequence. Leaf source data is not retained; only leaf digests and
// derived internal node digests are kept.
type Tree struct {
	hasher TreeHasher
	size   uint64
	leaves [][]byte // leaf digests, in leaf order
	root   *node    // nil iff size == 0
}

// node is one internal or leaf position of the recursive split
// structure. Leaves have nil children.
type node struct {
	hash        []byte
	left, right *node
}

type options struct {
	hasher      TreeHasher
	workers     int
	maxLeaves   uint64
	maxLeafSize uint64
}

// Option configures Build.
type Option func(*options)

// WithHasher overrides DefaultHasher.
func WithHasher(h TreeHasher) Option {
	return func(o *options) { o.hasher = h }
}

// WithWorkers bounds the worker pool used for leaf and internal node
// hashing. Values below 1 fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithMaxLeaves rejects inputs with more than n leaves. Zero means no
// limit.
func WithMaxLeaves(n uint64) Option {
	return func(o *options) { o.maxLeaves = n }
}

// WithMaxLeafSize rejects any single leaf larger than n bytes. Zero
// means no limit.
func WithMaxLeafSize(n uint64) Option {
	return func(o *options) { o.maxLeafSize = n }
}

// Build constructs the tree for the given ordered leaf data. Leaf
// order is significant and fixes all indices. An empty input yields a
// valid tree with no root.
//
// Limits are checked before any hashing happens, so oversized
// untrusted input fails fast with an error wrapping
// ErrResourceExhausted.
func Build(data [][]byte, opts ...Option) (*Tree, error) {
	o := options{hasher: DefaultHasher, workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	if o.maxLeaves > 0 && uint64(len(data)) > o.maxLeaves {
		return nil, fmt.Errorf("%w: %d leaves, limit %d", ErrResourceExhausted, len(data), o.maxLeaves)
	}
	if o.maxLeafSize > 0 {
		for i, d := range data {
			if uint64(len(d)) > o.maxLeafSize {
				return nil, fmt.Errorf("%w: leaf %d is %d bytes, limit %d", ErrResourceExhausted, i, len(d), o.maxLeafSize)
			}
		}
	}

	initMetrics(nil)
	start := time.Now()

	t := &Tree{hasher: o.hasher, size: uint64(len(data))}
	if t.size == 0 {
		treesBuilt.Inc()
		return t, nil
	}

	leaves, err := hashLeaves(o.hasher, data, o.workers)
	if err != nil {
		return nil, err
	}
	t.leaves = leaves
	root, err := buildSubtree(o.hasher, t.leaves, o.workers)
	if err != nil {
		return nil, err
	}
	t.root = root

	leavesHashed.Add(float64(t.size))
	treesBuilt.Inc()
	buildSeconds.Observe(time.Since(start).Seconds())
	klog.V(1).Infof("built merkle tree: size=%d root=%x", t.size, t.root.hash)
	return t, nil
}

// hashLeaves computes all leaf digests using at most workers
// goroutines.
func hashLeaves(h TreeHasher, data [][]byte, workers int) ([][]byte, error) {
	leaves := make([][]byte, len(data))
	var eg errgroup.Group
	eg.SetLimit(workers)
	// Chunked so the pool isn't flooded with one Go call per leaf.
	chunk := (len(data) + workers - 1) / workers
	for begin := 0; begin < len(data); begin += chunk {
		begin, end := begin, min(begin+chunk, len(data))
		eg.Go(func() error {
			for i := begin; i < end; i++ {
				leaves[i] = h.HashLeaf(data[i])
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return leaves, nil
}

// buildSubtree builds the recursive split structure over the given
// leaf digests. par is the remaining parallelism allowance: each split
// hands half to the left side, which runs on its own goroutine while
// the right side is built inline.
func buildSubtree(h TreeHasher, leaves [][]byte, par int) (*node, error) {
	if len(leaves) == 1 {
		return &node{hash: leaves[0]}, nil
	}
	k := splitPoint(uint64(len(leaves)))
	var left, right *node
	if par > 1 {
		var eg errgroup.Group
		eg.Go(func() error {
			var err error
			left, err = buildSubtree(h, leaves[:k], par/2)
			return err
		})
		var rerr error
		right, rerr = buildSubtree(h, leaves[k:], par-par/2)
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		if rerr != nil {
			return nil, rerr
		}
	} else {
		var err error
		if left, err = buildSubtree(h, leaves[:k], 1); err != nil {
			return nil, err
		}
		if right, err = buildSubtree(h, leaves[k:], 1); err != nil {
			return nil, err
		}
	}
	return &node{
		hash:  h.HashChildren(left.hash, right.hash),
		left:  left,
		right: right,
	}, nil
}

// splitPoint returns the largest power of two strictly less than n.
// n must be >= 2.
func splitPoint(n uint64) uint64 {
	return uint64(1) << (bits.Len64(n-1) - 1)
}

// Size returns the number of leaves the tree was built from.
func (t *Tree) Size() uint64 { return t.size }

// Root returns the root digest, or nil for the empty tree. The empty
// tree deliberately has no root rather than a sentinel digest.
func (t *Tree) Root() []byte {
	if t.root == nil {
		return nil
	}
	return append([]byte{}, t.root.hash...)
}

// LeafHash returns the domain-separated digest of the leaf at the
// given index.
func (t *Tree) LeafHash(index uint64) ([]byte, error) {
	if index >= t.size {
		return nil, fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, index, t.size)
	}
	return append([]byte{}, t.leaves[index]...), nil
}
