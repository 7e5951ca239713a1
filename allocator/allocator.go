// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package allocator partitions token ids into the public and reserved
// ranges and counts issuance in each
//
//   public:   [0, PublicSupply)
//   reserved: [PublicSupply, PublicSupply + ReservedSupply)
//
// only the issued counts are stored, remaining supply is derived
package allocator

import (
	"github.com/bitmark-inc/ctdledger/account"
	"github.com/bitmark-inc/ctdledger/constants"
	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/registry"
	"github.com/bitmark-inc/ctdledger/storage"
)

// keys in the state pool
var (
	publicIssuedKey  = []byte("issued-public")
	reserveIssuedKey = []byte("issued-reserve")
)

// Allocator - issues ids into the registry
type Allocator struct {
	registry registry.Registry
	state    storage.Handle
}

// New - allocator over a registry and a state pool
func New(r registry.Registry, state storage.Handle) *Allocator {
	return &Allocator{
		registry: r,
		state:    state,
	}
}

// InPublicRange - true if id may be sold or claimed
func InPublicRange(id uint64) bool {
	return id < constants.PublicSupply
}

// PublicIssued - number of public range ids issued
func (a *Allocator) PublicIssued() uint64 {
	n, _ := a.state.GetN(publicIssuedKey)
	return n
}

// ReserveIssued - number of reserved range ids issued
func (a *Allocator) ReserveIssued() uint64 {
	n, _ := a.state.GetN(reserveIssuedKey)
	return n
}

// RemainingForSale - public ids not yet issued
func (a *Allocator) RemainingForSale() uint64 {
	return constants.PublicSupply - a.PublicIssued()
}

// RemainingReserved - reserved ids not yet issued
func (a *Allocator) RemainingReserved() uint64 {
	return constants.ReservedSupply - a.ReserveIssued()
}

// NextReserveId - the id the next reserve issue will use
func (a *Allocator) NextReserveId() uint64 {
	return constants.FirstReservedId + a.ReserveIssued()
}

// AllocatePublic - issue a caller chosen id from the public range
func (a *Allocator) AllocatePublic(id uint64, owner account.Account) error {
	if !InPublicRange(id) {
		return fault.OutOfRange
	}
	if a.registry.Exists(id) {
		return fault.AlreadyMinted
	}
	if err := a.registry.Record(id, owner); nil != err {
		return err
	}
	a.state.PutN(publicIssuedKey, a.PublicIssued()+1)
	return nil
}

// AllocateReserve - issue the next count reserved ids to recipient
//
// ids are consecutive and increasing from the first unused slot
func (a *Allocator) AllocateReserve(count uint64, recipient account.Account) ([]uint64, error) {
	if 0 == count {
		return nil, fault.InvalidCount
	}
	issued := a.ReserveIssued()
	if count > constants.ReservedSupply-issued {
		return nil, fault.ReserveExhausted
	}

	ids := make([]uint64, 0, count)
	first := constants.FirstReservedId + issued
	for id := first; id < first+count; id += 1 {
		if err := a.registry.Record(id, recipient); nil != err {
			return nil, err
		}
		ids = append(ids, id)
	}
	a.state.PutN(reserveIssuedKey, issued+count)
	return ids, nil
}
