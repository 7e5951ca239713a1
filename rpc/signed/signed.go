// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signed

import (
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/ctdledger/account"
	"github.com/bitmark-inc/ctdledger/fault"
)

// NonceUser - consumes per account request nonces
type NonceUser interface {
	UseNonce(account.Account, uint64) error
}

// Request - envelope carried by every mutating call
//
// the signature covers Message(method, nonce) followed by the
// packed call arguments
type Request struct {
	PublicKey account.PublicKey `json:"publicKey"`
	Nonce     uint64            `json:"nonce,string"`
	Signature account.Signature `json:"signature"`
}

// Sign - build a request envelope for a call
func Sign(privateKey ed25519.PrivateKey, method string, nonce uint64, arguments Packed) *Request {
	message := append(Message(method, nonce), arguments...)
	return &Request{
		PublicKey: account.PublicKey(privateKey.Public().(ed25519.PublicKey)),
		Nonce:     nonce,
		Signature: ed25519.Sign(privateKey, message),
	}
}

// Caller - authenticate a request and consume its nonce
//
// returns the account derived from the request public key
func (r *Request) Caller(nonces NonceUser, method string, arguments Packed) (account.Account, error) {
	if nil == r || 0 == len(r.PublicKey) || 0 == len(r.Signature) {
		return account.Account{}, fault.MissingParameters
	}

	caller, err := account.FromPublicKey(r.PublicKey)
	if nil != err {
		return account.Account{}, err
	}

	message := append(Message(method, r.Nonce), arguments...)
	err = account.CheckSignature(r.PublicKey, message, r.Signature)
	if nil != err {
		return account.Account{}, err
	}

	err = nonces.UseNonce(caller, r.Nonce)
	if nil != err {
		return account.Account{}, err
	}

	return caller, nil
}
