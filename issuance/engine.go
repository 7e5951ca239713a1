// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package issuance

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/ctdledger/account"
	"github.com/bitmark-inc/ctdledger/allocator"
	"github.com/bitmark-inc/ctdledger/allowlist"
	"github.com/bitmark-inc/ctdledger/constants"
	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/metadata"
	"github.com/bitmark-inc/ctdledger/mintedindex"
	"github.com/bitmark-inc/ctdledger/registry"
	"github.com/bitmark-inc/ctdledger/sale"
	"github.com/bitmark-inc/ctdledger/storage"
	"github.com/bitmark-inc/ctdledger/treasury"
	"github.com/bitmark-inc/logger"
)

// Configuration - fixed settings of an engine
type Configuration struct {
	Operator account.Account
	Name     string
	Symbol   string
	ImageURL string

	// receives withdrawals, defaults to a log only payer
	Payer treasury.Payer

	// optional, metrics are not exported if nil
	Registerer prometheus.Registerer
}

// Engine - serialises every issue and configuration call
//
// each mutating call runs inside one storage transaction that is
// committed only if every check and update succeeded
type Engine struct {
	sync.Mutex

	log      *logger.L
	db       *storage.Database
	operator account.Account
	symbol   string
	metrics  *metrics

	registry  registry.Registry
	sale      *sale.Config
	allocator *allocator.Allocator
	allowlist *allowlist.Verifier
	index     *mintedindex.Index
	treasury  *treasury.Treasury
	metadata  *metadata.Metadata
	nonces    storage.Handle
}

// New - create an engine over an open database
func New(db *storage.Database, configuration Configuration) (*Engine, error) {
	if nil == db {
		return nil, fault.DatabaseIsNotSet
	}
	if configuration.Operator.IsZero() {
		return nil, fault.InvalidAccount
	}

	name := configuration.Name
	if "" == name {
		name = constants.DefaultName
	}
	symbol := configuration.Symbol
	if "" == symbol {
		symbol = constants.DefaultSymbol
	}
	payer := configuration.Payer
	if nil == payer {
		payer = treasury.NewLogPayer()
	}

	m, err := newMetrics(configuration.Registerer)
	if nil != err {
		return nil, err
	}

	pool := db.Pool
	r := registry.New(pool.Tokens, pool.OwnerTokens, pool.OwnerBalance)

	e := &Engine{
		log:       logger.New("issuance"),
		db:        db,
		operator:  configuration.Operator,
		symbol:    symbol,
		metrics:   m,
		registry:  r,
		sale:      sale.New(pool.State),
		allocator: allocator.New(r, pool.State),
		allowlist: allowlist.New(pool.State, pool.Claimed),
		index:     mintedindex.New(pool.Minted, pool.State),
		treasury:  treasury.New(pool.State, pool.Payments, payer),
		metadata:  metadata.New(pool.State, name, configuration.ImageURL),
		nonces:    pool.Nonces,
	}
	e.updateGauges()

	e.log.Infof("operator: %s  name: %q  symbol: %q", e.operator, name, symbol)
	return e, nil
}

// run f inside a transaction, commit on success and abort otherwise
func (e *Engine) update(operation string, f func() error) error {
	e.Lock()
	defer e.Unlock()

	trx, err := e.db.Begin()
	if nil != err {
		e.log.Errorf("%s: begin error: %s", operation, err)
		return err
	}

	ok := false
	defer func() {
		if !ok {
			trx.Abort()
		}
	}()

	err = f()
	if nil != err {
		e.log.Warnf("%s: rejected: %s", operation, err)
		e.metrics.rejected.WithLabelValues(operation, err.Error()).Inc()
		return err
	}

	writes := trx.Writes()
	err = trx.Commit()
	if nil != err {
		e.log.Criticalf("%s: commit error: %s", operation, err)
		return fmt.Errorf("%s: commit: %w", operation, err)
	}
	ok = true
	e.log.Debugf("%s: committed %d writes", operation, writes)

	e.metrics.accepted.WithLabelValues(operation).Inc()
	e.updateGauges()
	return nil
}

// must hold lock or be in construction
func (e *Engine) updateGauges() {
	e.metrics.remaining.WithLabelValues("public").Set(float64(e.allocator.RemainingForSale()))
	e.metrics.remaining.WithLabelValues("reserved").Set(float64(e.allocator.RemainingReserved()))
	e.metrics.balance.Set(float64(e.treasury.Balance()))
}

func (e *Engine) isOperator(caller account.Account) error {
	if caller != e.operator {
		return fault.NotOperator
	}
	return nil
}

// Operator - the only account allowed configuration and reserve calls
func (e *Engine) Operator() account.Account {
	return e.operator
}
