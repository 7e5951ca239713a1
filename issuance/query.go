// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package issuance

import (
	"github.com/bitmark-inc/ctdledger/account"
	"github.com/bitmark-inc/ctdledger/constants"
	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/merkle"
	"github.com/bitmark-inc/ctdledger/metadata"
	"github.com/bitmark-inc/ctdledger/treasury"
)

// Supply - issue counts for each range
type Supply struct {
	Public            uint64 `json:"public"`
	PublicIssued      uint64 `json:"publicIssued"`
	RemainingForSale  uint64 `json:"remainingForSale"`
	Reserved          uint64 `json:"reserved"`
	ReserveIssued     uint64 `json:"reserveIssued"`
	RemainingReserved uint64 `json:"remainingReserved"`
	NextReserveId     uint64 `json:"nextReserveId"`
	Minted            uint64 `json:"minted"`
}

// Price - unit price
func (e *Engine) Price() uint64 {
	e.Lock()
	defer e.Unlock()
	return e.sale.Price()
}

// IsOnSale - true while public minting is open
func (e *Engine) IsOnSale() bool {
	e.Lock()
	defer e.Unlock()
	return e.sale.IsOnSale()
}

// MerkleRoot - current allowlist root, zero if unset
func (e *Engine) MerkleRoot() merkle.Digest {
	e.Lock()
	defer e.Unlock()
	return e.allowlist.Root()
}

// IsClaimed - true once an account has claimed
func (e *Engine) IsClaimed(a account.Account) bool {
	e.Lock()
	defer e.Unlock()
	return e.allowlist.IsClaimed(a)
}

// RemainingForSale - public ids not yet issued
func (e *Engine) RemainingForSale() uint64 {
	e.Lock()
	defer e.Unlock()
	return e.allocator.RemainingForSale()
}

// RemainingReserved - reserved ids not yet issued
func (e *Engine) RemainingReserved() uint64 {
	e.Lock()
	defer e.Unlock()
	return e.allocator.RemainingReserved()
}

// NextReserveId - the id the next reserve issue starts at
func (e *Engine) NextReserveId() uint64 {
	e.Lock()
	defer e.Unlock()
	return e.allocator.NextReserveId()
}

// Supply - all range counters at once
func (e *Engine) Supply() Supply {
	e.Lock()
	defer e.Unlock()
	return Supply{
		Public:            constants.PublicSupply,
		PublicIssued:      e.allocator.PublicIssued(),
		RemainingForSale:  e.allocator.RemainingForSale(),
		Reserved:          constants.ReservedSupply,
		ReserveIssued:     e.allocator.ReserveIssued(),
		RemainingReserved: e.allocator.RemainingReserved(),
		NextReserveId:     e.allocator.NextReserveId(),
		Minted:            e.index.Length(),
	}
}

// MintedSalesTokenIdList - sold and claimed ids in issue order
//
// clipped to the list, never fails
func (e *Engine) MintedSalesTokenIdList(offset uint64, limit uint64) []uint64 {
	e.Lock()
	defer e.Unlock()
	return e.index.Page(offset, limit)
}

// OwnerOf - the account holding a token
func (e *Engine) OwnerOf(id uint64) (account.Account, error) {
	e.Lock()
	defer e.Unlock()
	return e.registry.OwnerOf(id)
}

// BalanceOf - number of tokens held by an account
func (e *Engine) BalanceOf(owner account.Account) uint64 {
	e.Lock()
	defer e.Unlock()
	return e.registry.BalanceOf(owner)
}

// TokensOf - ids held by an account from start in id order
func (e *Engine) TokensOf(owner account.Account, start uint64, count int) ([]uint64, error) {
	e.Lock()
	defer e.Unlock()
	return e.registry.TokensOf(owner, start, count)
}

// TokenURI - metadata data URI of an issued token
func (e *Engine) TokenURI(id uint64) (string, error) {
	e.Lock()
	defer e.Unlock()
	if !e.registry.Exists(id) {
		return "", fault.NonexistentToken
	}
	return e.metadata.URI(id)
}

// PrepareMetadataJSON - the metadata document for any id
func (e *Engine) PrepareMetadataJSON(id uint64) (string, error) {
	e.Lock()
	defer e.Unlock()
	return e.metadata.JSON(id)
}

// Metadata - the current collection wide metadata
func (e *Engine) Metadata() (*metadata.Document, bool) {
	e.Lock()
	defer e.Unlock()
	doc := e.metadata.Document(0)
	doc.Name = e.metadata.Name()
	return doc, e.metadata.IsFrozen()
}

// Balance - value held by the treasury
func (e *Engine) Balance() uint64 {
	e.Lock()
	defer e.Unlock()
	return e.treasury.Balance()
}

// Payments - treasury ledger entries from start
func (e *Engine) Payments(start uint64, count int) ([]treasury.Payment, error) {
	e.Lock()
	defer e.Unlock()
	return e.treasury.Payments(start, count)
}

// Name - collection name
func (e *Engine) Name() string {
	return e.metadata.Name()
}

// Symbol - collection symbol
func (e *Engine) Symbol() string {
	return e.symbol
}
