// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/binary"

	"github.com/bitmark-inc/ctdledger/account"
	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/storage"
)

// from storage/doc.go:
//
//   T ⧺ id               - owner of an issued token
//                          data: account
//   O ⧺ owner ⧺ id       - tokens held by an owner, in id order
//                          data: (empty)
//   B ⧺ owner            - number of tokens held by an owner
//                          data: count

const (
	uint64ByteSize = 8
)

// Registry - the record of every issued token and its owner
type Registry interface {
	Exists(uint64) bool
	OwnerOf(uint64) (account.Account, error)
	BalanceOf(account.Account) uint64
	Record(uint64, account.Account) error
	TokensOf(account.Account, uint64, int) ([]uint64, error)
}

type registry struct {
	PoolTokens       storage.Handle
	PoolOwnerTokens  storage.Handle
	PoolOwnerBalance storage.Handle
}

// New - a registry over the token and owner pools
func New(tokens, ownerTokens, ownerBalance storage.Handle) Registry {
	return &registry{
		PoolTokens:       tokens,
		PoolOwnerTokens:  ownerTokens,
		PoolOwnerBalance: ownerBalance,
	}
}

// Key - the storage key of a token id
func Key(id uint64) []byte {
	key := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(key, id)
	return key
}

func ownerKey(owner account.Account, id uint64) []byte {
	key := make([]byte, 0, account.AccountLength+uint64ByteSize)
	key = append(key, owner[:]...)
	return append(key, Key(id)...)
}

// Exists - true once a token has been issued
func (r *registry) Exists(id uint64) bool {
	return r.PoolTokens.Has(Key(id))
}

// OwnerOf - the account a token was issued to
func (r *registry) OwnerOf(id uint64) (account.Account, error) {
	var owner account.Account
	packed := r.PoolTokens.Get(Key(id))
	if nil == packed {
		return owner, fault.NonexistentToken
	}
	err := account.FromBytes(&owner, packed)
	return owner, err
}

// BalanceOf - number of tokens held by an account
func (r *registry) BalanceOf(owner account.Account) uint64 {
	n, _ := r.PoolOwnerBalance.GetN(owner[:])
	return n
}

// Record - record first issuance of a token
//
// must be called inside a storage transaction
func (r *registry) Record(id uint64, owner account.Account) error {
	if owner.IsZero() {
		return fault.InvalidAccount
	}
	if r.Exists(id) {
		return fault.AlreadyMinted
	}

	r.PoolTokens.Put(Key(id), owner.Bytes())
	r.PoolOwnerTokens.Put(ownerKey(owner, id), []byte{})
	r.PoolOwnerBalance.PutN(owner[:], r.BalanceOf(owner)+1)
	return nil
}

// TokensOf - committed token ids held by an owner, from start in id order
func (r *registry) TokensOf(owner account.Account, start uint64, count int) ([]uint64, error) {
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	cursor := r.PoolOwnerTokens.NewPrefixCursor(owner[:]).Seek(ownerKey(owner, start))
	items, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	ids := make([]uint64, 0, len(items))
	for _, item := range items {
		if len(item.Key) != account.AccountLength+uint64ByteSize {
			return nil, fault.InvalidCursor
		}
		ids = append(ids, binary.BigEndian.Uint64(item.Key[account.AccountLength:]))
	}
	return ids, nil
}
