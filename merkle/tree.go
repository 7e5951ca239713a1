// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

// Tree - all levels of a sorted pair tree
//
// structure is:
//   level 0: N * leaf digests
//   level 1..m: pair digests, an odd last node is carried up unchanged
//   level m: single root digest
type Tree struct {
	levels [][]Digest
}

// NewTree - build a tree over already hashed leaves
func NewTree(leaves []Digest) *Tree {
	level := make([]Digest, len(leaves))
	copy(level, leaves)

	levels := [][]Digest{level}
	for len(level) > 1 {
		next := make([]Digest, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
				continue
			}
			next = append(next, HashPair(level[i], level[i+1]))
		}
		levels = append(levels, next)
		level = next
	}
	return &Tree{levels: levels}
}

// NewTreeFromRecords - hash each record to a leaf then build the tree
func NewTreeFromRecords(records [][]byte) *Tree {
	leaves := make([]Digest, len(records))
	for i, r := range records {
		leaves[i] = NewDigest(r)
	}
	return NewTree(leaves)
}

// Root - the root digest, zero for an empty tree
func (t *Tree) Root() Digest {
	top := t.levels[len(t.levels)-1]
	if 0 == len(top) {
		return Digest{}
	}
	return top[0]
}

// Proof - sibling path for the leaf at index
//
// second result is false if index is not a leaf
func (t *Tree) Proof(index int) ([]Digest, bool) {
	if index < 0 || index >= len(t.levels[0]) {
		return nil, false
	}

	proof := make([]Digest, 0, len(t.levels))
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := index ^ 1
		if sibling < len(level) {
			proof = append(proof, level[sibling])
		}
		index /= 2
	}
	return proof, true
}

// Index - position of a leaf, -1 if absent
func (t *Tree) Index(leaf Digest) int {
	for i, d := range t.levels[0] {
		if d == leaf {
			return i
		}
	}
	return -1
}
