// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ctdledger/merkle"
)

// make n distinct 20 byte records
func makeRecords(n int) [][]byte {
	records := make([][]byte, n)
	for i := range records {
		r := make([]byte, 20)
		binary.BigEndian.PutUint64(r[12:], uint64(i))
		records[i] = r
	}
	return records
}

func TestHashPairIsOrderIndependent(t *testing.T) {
	a := merkle.NewDigest([]byte("a"))
	b := merkle.NewDigest([]byte("b"))
	assert.Equal(t, merkle.HashPair(a, b), merkle.HashPair(b, a), "pair hash depends on order")
}

func TestSingleLeaf(t *testing.T) {
	tree := merkle.NewTreeFromRecords(makeRecords(1))
	leaf := merkle.NewDigest(makeRecords(1)[0])

	assert.Equal(t, leaf, tree.Root(), "single leaf root is not the leaf")
	proof, ok := tree.Proof(0)
	assert.True(t, ok, "no proof")
	assert.Equal(t, 0, len(proof), "single leaf proof is not empty")
	assert.True(t, merkle.VerifyProof(leaf, proof, tree.Root()), "single leaf did not verify")
}

func TestTwoLeaves(t *testing.T) {
	records := makeRecords(2)
	a := merkle.NewDigest(records[0])
	b := merkle.NewDigest(records[1])
	tree := merkle.NewTree([]merkle.Digest{a, b})

	assert.Equal(t, merkle.HashPair(a, b), tree.Root(), "wrong root")
	proof, _ := tree.Proof(0)
	assert.Equal(t, []merkle.Digest{b}, proof, "wrong proof")
}

// every leaf of every tree size verifies, and only against its own root
func TestAllProofsVerify(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 7, 8, 9, 16, 17, 1001} {
		records := makeRecords(n)
		tree := merkle.NewTreeFromRecords(records)
		root := tree.Root()

		for i, r := range records {
			leaf := merkle.NewDigest(r)
			proof, ok := tree.Proof(i)
			if !ok {
				t.Fatalf("n=%d i=%d: no proof", n, i)
			}
			if !merkle.VerifyProof(leaf, proof, root) {
				t.Errorf("n=%d i=%d: proof did not verify", n, i)
			}
			assert.Equal(t, i, tree.Index(leaf), "n=%d: wrong index", n)
		}
	}
}

func TestProofRejections(t *testing.T) {
	records := makeRecords(5)
	tree := merkle.NewTreeFromRecords(records)
	root := tree.Root()

	leaf0 := merkle.NewDigest(records[0])
	proof1, _ := tree.Proof(1)

	// another leaf's proof
	assert.False(t, merkle.VerifyProof(leaf0, proof1, root), "foreign proof verified")

	// leaf outside the set
	outsider := merkle.NewDigest([]byte("outsider"))
	proof0, _ := tree.Proof(0)
	assert.False(t, merkle.VerifyProof(outsider, proof0, root), "outsider verified")

	// truncated proof
	assert.False(t, merkle.VerifyProof(leaf0, proof0[:len(proof0)-1], root), "truncated proof verified")

	// out of range index
	_, ok := tree.Proof(5)
	assert.False(t, ok, "proof for missing index")
	assert.Equal(t, -1, tree.Index(outsider), "outsider has an index")
}

func TestEmptyTree(t *testing.T) {
	tree := merkle.NewTree(nil)
	assert.True(t, tree.Root().IsZero(), "empty tree root is not zero")
}
