// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - engines and signed calls for RPC tests
package fixtures

import (
	"testing"

	"github.com/bitmark-inc/ctdledger/fixtures"
	"github.com/bitmark-inc/ctdledger/issuance"
	"github.com/bitmark-inc/ctdledger/rpc/signed"
	"github.com/bitmark-inc/ctdledger/storage"
	"github.com/bitmark-inc/ctdledger/treasury"
)

// Image - default collection image of test engines
const Image = "https://example.com/image"

// Engine - an engine over a memory database
type Engine struct {
	*issuance.Engine
	db     *storage.Database
	nonces map[string]uint64
}

// NewEngine - create an engine operated by fixtures.Operator
//
// a nil payer selects the log only payer
func NewEngine(t *testing.T, payer treasury.Payer) *Engine {
	e, err := Open(payer)
	if nil != err {
		t.Fatalf("engine error: %s", err)
	}
	return e
}

// Open - as NewEngine for callers outside a test, e.g. TestMain
func Open(payer treasury.Payer) (*Engine, error) {
	db, err := storage.OpenMemory()
	if nil != err {
		return nil, err
	}
	e, err := issuance.New(db, issuance.Configuration{
		Operator: fixtures.Operator.Account,
		ImageURL: Image,
		Payer:    payer,
	})
	if nil != err {
		db.Close()
		return nil, err
	}
	return &Engine{
		Engine: e,
		db:     db,
		nonces: make(map[string]uint64),
	}, nil
}

// Close - release the database
func (e *Engine) Close() {
	e.db.Close()
}

// Sign - sign a call with the next nonce of the key
func (e *Engine) Sign(keys fixtures.Keys, method string, arguments signed.Packed) *signed.Request {
	name := keys.Account.String()
	e.nonces[name] += 1
	return signed.Sign(keys.PrivateKey, method, e.nonces[name], arguments)
}

// OpenSale - set a price and start the sale
func (e *Engine) OpenSale(t *testing.T, price uint64) {
	operator := fixtures.Operator.Account
	if err := e.SetPrice(operator, price); nil != err {
		t.Fatalf("set price error: %s", err)
	}
	if err := e.SetSaleStatus(operator, true); nil != err {
		t.Fatalf("set sale status error: %s", err)
	}
}
