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
	"testing"

	"github.com/gmtrust/sm3audit/sm3"
)

func TestHashLeafDomainSeparation(t *testing.T) {
	leaf := []byte("L123456")
	want := sm3.Sum(append([]byte{RFC6962LeafHashPrefix}, leaf...))
	if got := DefaultHasher.HashLeaf(leaf); !bytes.Equal(got, want[:]) {
		t.Errorf("HashLeaf=%x, want %x", got, want)
	}

	// A leaf hashed as a leaf must not collide with the same bytes
	// hashed as a node preimage.
	if plain := sm3.Sum(leaf); bytes.Equal(DefaultHasher.HashLeaf(leaf), plain[:]) {
		t.Error("HashLeaf must not equal the undecorated hash")
	}
}

func TestHashChildrenDomainSeparation(t *testing.T) {
	l, r := []byte("N123"), []byte("N456")
	pre := append([]byte{RFC6962NodeHashPrefix}, l...)
	pre = append(pre, r...)
	want := sm3.Sum(pre)
	if got := DefaultHasher.HashChildren(l, r); !bytes.Equal(got, want[:]) {
		t.Errorf("HashChildren=%x, want %x", got, want)
	}

	if bytes.Equal(DefaultHasher.HashChildren(l, r), DefaultHasher.HashChildren(r, l)) {
		t.Error("HashChildren must be order sensitive")
	}
}

func TestHasherSize(t *testing.T) {
	if got := DefaultHasher.Size(); got != sm3.Size {
		t.Errorf("Size()=%d, want %d", got, sm3.Size)
	}
	if got := len(DefaultHasher.HashLeaf([]byte("x"))); got != sm3.Size {
		t.Errorf("len(HashLeaf)=%d, want %d", got, sm3.Size)
	}
}
