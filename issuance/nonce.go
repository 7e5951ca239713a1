// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package issuance

import (
	"github.com/bitmark-inc/ctdledger/account"
	"github.com/bitmark-inc/ctdledger/fault"
)

// UseNonce - consume a request nonce for an account
//
// nonces must strictly increase per account; a consumed nonce stays
// consumed even if the request it authorised is later rejected
func (e *Engine) UseNonce(caller account.Account, nonce uint64) error {
	if 0 == nonce {
		return fault.InvalidNonce
	}
	return e.update("nonce", func() error {
		last, found := e.nonces.GetN(caller.Bytes())
		if found && nonce <= last {
			return fault.InvalidNonce
		}
		e.nonces.PutN(caller.Bytes(), nonce)
		return nil
	})
}

// LastNonce - the highest nonce accepted for an account, zero if none
func (e *Engine) LastNonce(caller account.Account) uint64 {
	e.Lock()
	defer e.Unlock()
	last, _ := e.nonces.GetN(caller.Bytes())
	return last
}
