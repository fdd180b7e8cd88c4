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

// Package lengthext computes SM3 length-extension continuations.
//
// Given only H(prefix) and len(prefix), Extend produces
// H(prefix‖pad‖suffix) for an arbitrary suffix, where pad is the
// padding SM3 appended when hashing the prefix. The prefix is
// typically secret‖message with the secret unknown to the caller;
// only its total length matters.
//
// This is an inherent structural property of any unkeyed
// Merkle–Damgård hash without a finalization transform, not a defect
// of this implementation. There is no failure mode: if the claimed
// prefix length is wrong, Extend still returns a well-formed digest,
// it just matches no hash of any related message. Callers must
// establish the exact prefix length out of band.
package lengthext

import "github.com/gmtrust/sm3audit/sm3"

// Extend returns SM3(prefix ‖ sm3.PaddingFor(prefixLen) ‖ suffix)
// computed from knownDigest = SM3(prefix) and prefixLen = len(prefix)
// alone. knownDigest must be a genuine SM3 output over some byte
// string of exactly prefixLen bytes; this cannot be checked from the
// digest itself.
func Extend(knownDigest [sm3.Size]byte, prefixLen uint64, suffix []byte) [sm3.Size]byte {
	pad := sm3.PaddingFor(prefixLen)
	s := sm3.Resume(knownDigest, (prefixLen+uint64(len(pad)))*8)
	s.Write(suffix)
	return s.Finalize()
}

// Payload assembles message ‖ sm3.PaddingFor(prefixLen) ‖ suffix: the
// byte string an attacker submits alongside the digest from Extend.
// prefixLen is the length of the full hashed prefix (for a keyed tag,
// secret length plus message length), so the embedded padding is the
// one the original computation consumed.
func Payload(message []byte, prefixLen uint64, suffix []byte) []byte {
	pad := sm3.PaddingFor(prefixLen)
	out := make([]byte, 0, len(message)+len(pad)+len(suffix))
	out = append(out, message...)
	out = append(out, pad...)
	return append(out, suffix...)
}
