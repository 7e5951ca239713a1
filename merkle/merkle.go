// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"bytes"
)

// HashPair - digest of the ordered pair, smaller digest first
func HashPair(a Digest, b Digest) Digest {
	buffer := make([]byte, 0, 2*DigestLength)
	if bytes.Compare(a[:], b[:]) <= 0 {
		buffer = append(buffer, a[:]...)
		buffer = append(buffer, b[:]...)
	} else {
		buffer = append(buffer, b[:]...)
		buffer = append(buffer, a[:]...)
	}
	return NewDigest(buffer)
}

// VerifyProof - fold the proof over the leaf and compare with root
//
// an empty proof only verifies a single leaf tree (leaf == root)
func VerifyProof(leaf Digest, proof []Digest, root Digest) bool {
	computed := leaf
	for _, sibling := range proof {
		computed = HashPair(computed, sibling)
	}
	return computed == root
}
