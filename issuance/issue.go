// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package issuance

import (
	"github.com/bitmark-inc/ctdledger/account"
	"github.com/bitmark-inc/ctdledger/allocator"
	"github.com/bitmark-inc/ctdledger/constants"
	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/merkle"
	"github.com/bitmark-inc/ctdledger/treasury"
)

// Mint - buy one public id
func (e *Engine) Mint(caller account.Account, id uint64, payment uint64) error {
	return e.update("mint", func() error {
		return e.sell(caller, []uint64{id}, payment)
	})
}

// MintBatch - buy several public ids, all or none
func (e *Engine) MintBatch(caller account.Account, ids []uint64, payment uint64) error {
	return e.update("mintBatch", func() error {
		return e.sell(caller, ids, payment)
	})
}

func (e *Engine) sell(caller account.Account, ids []uint64, payment uint64) error {
	if !e.sale.IsOnSale() {
		return fault.NotOnSale
	}

	count := uint64(len(ids))
	if 0 == count || count > constants.MaximumBatchSize {
		return fault.InvalidCount
	}

	price := e.sale.Price()
	total := price * count
	if total/count != price || payment != total {
		return fault.InvalidPrice
	}

	for _, id := range ids {
		if err := e.allocator.AllocatePublic(id, caller); nil != err {
			return err
		}
		e.index.Append(id)
	}

	if err := e.treasury.Credit(treasury.Sale, caller, payment); nil != err {
		return err
	}

	e.metrics.issued.WithLabelValues(pathSale).Add(float64(count))
	e.log.Infof("sold: %v to: %s for: %d", ids, caller, payment)
	return nil
}

// Claim - take one public id free of charge with an allowlist proof
//
// any payment sent is kept
func (e *Engine) Claim(caller account.Account, id uint64, proof []merkle.Digest, payment uint64) error {
	return e.update("claim", func() error {
		if e.allowlist.Root().IsZero() {
			return fault.NoMerkleRoot
		}
		if !allocator.InPublicRange(id) {
			return fault.InvalidTokenId
		}
		if err := e.allowlist.Verify(caller, proof); nil != err {
			return err
		}
		if e.allowlist.IsClaimed(caller) {
			return fault.AlreadyClaimed
		}
		if e.registry.Exists(id) {
			return fault.AlreadyMinted
		}

		if err := e.allocator.AllocatePublic(id, caller); nil != err {
			return err
		}
		if err := e.allowlist.MarkClaimed(caller, id); nil != err {
			return err
		}
		e.index.Append(id)

		if err := e.treasury.Credit(treasury.Claim, caller, payment); nil != err {
			return err
		}

		e.metrics.issued.WithLabelValues(pathClaim).Inc()
		e.log.Infof("claimed: %d by: %s", id, caller)
		return nil
	})
}

// MintReserve - issue the next count reserved ids to recipient
func (e *Engine) MintReserve(caller account.Account, count uint64, recipient account.Account) ([]uint64, error) {
	var ids []uint64
	err := e.update("mintReserve", func() error {
		if err := e.isOperator(caller); nil != err {
			return err
		}
		var err error
		ids, err = e.allocator.AllocateReserve(count, recipient)
		if nil != err {
			return err
		}

		e.metrics.issued.WithLabelValues(pathReserve).Add(float64(count))
		e.log.Infof("reserved: %d from: %d to: %s", count, ids[0], recipient)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return ids, nil
}

// Withdraw - pay held value out to recipient
func (e *Engine) Withdraw(caller account.Account, recipient account.Account, amount uint64) error {
	return e.update("withdraw", func() error {
		if err := e.isOperator(caller); nil != err {
			return err
		}
		if err := e.treasury.Withdraw(recipient, amount); nil != err {
			return err
		}
		e.log.Infof("withdrew: %d to: %s", amount, recipient)
		return nil
	})
}

// Deposit - accept value sent without any call
func (e *Engine) Deposit(from account.Account, amount uint64) error {
	return e.update("deposit", func() error {
		return e.treasury.Credit(treasury.Deposit, from, amount)
	})
}
