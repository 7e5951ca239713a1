// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package allowlist

import (
	"github.com/bitmark-inc/ctdledger/account"
	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/merkle"
	"github.com/bitmark-inc/ctdledger/registry"
	"github.com/bitmark-inc/ctdledger/storage"
)

// key in the state pool
var rootKey = []byte("allowlist-root")

// Verifier - merkle root of eligible accounts and the set of
// accounts that have claimed
type Verifier struct {
	state   storage.Handle
	claimed storage.Handle
}

// New - verifier over the state and claimed pools
func New(state, claimed storage.Handle) *Verifier {
	return &Verifier{
		state:   state,
		claimed: claimed,
	}
}

// Leaf - the leaf digest committed for an account
func Leaf(a account.Account) merkle.Digest {
	return merkle.NewDigest(a.Bytes())
}

// Root - current root, zero if never set
func (v *Verifier) Root() merkle.Digest {
	var root merkle.Digest
	packed := v.state.Get(rootKey)
	if nil != packed {
		_ = merkle.DigestFromBytes(&root, packed)
	}
	return root
}

// SetRoot - replace the root
//
// the claimed set is kept
func (v *Verifier) SetRoot(root merkle.Digest) {
	v.state.Put(rootKey, root[:])
}

// Verify - check an account is committed to by the current root
func (v *Verifier) Verify(a account.Account, proof []merkle.Digest) error {
	root := v.Root()
	if root.IsZero() {
		return fault.NoMerkleRoot
	}
	if !merkle.VerifyProof(Leaf(a), proof, root) {
		return fault.CannotVerify
	}
	return nil
}

// IsClaimed - true once an account has claimed
func (v *Verifier) IsClaimed(a account.Account) bool {
	return v.claimed.Has(a[:])
}

// ClaimedId - the id an account claimed
func (v *Verifier) ClaimedId(a account.Account) (uint64, bool) {
	return v.claimed.GetN(a[:])
}

// MarkClaimed - add an account to the claimed set
//
// must share a transaction with the allocation of id
func (v *Verifier) MarkClaimed(a account.Account, id uint64) error {
	if v.IsClaimed(a) {
		return fault.AlreadyClaimed
	}
	v.claimed.Put(a[:], registry.Key(id))
	return nil
}
