// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sale holds the unit price and the on sale flag
package sale

import (
	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/storage"
)

// keys in the state pool
var (
	priceKey  = []byte("sale-price")
	onSaleKey = []byte("sale-on")
)

// Config - sale configuration backed by the state pool
type Config struct {
	state storage.Handle
}

// New - sale configuration over a state pool
func New(state storage.Handle) *Config {
	return &Config{
		state: state,
	}
}

// Price - unit price, zero if never set
func (c *Config) Price() uint64 {
	n, _ := c.state.GetN(priceKey)
	return n
}

// IsOnSale - true while public minting is open
func (c *Config) IsOnSale() bool {
	n, _ := c.state.GetN(onSaleKey)
	return 0 != n
}

// SetPrice - set unit price, zero is allowed
func (c *Config) SetPrice(units uint64) {
	c.state.PutN(priceKey, units)
}

// SetStatus - open or close the sale
//
// a sale can only be opened after a price is set
func (c *Config) SetStatus(enabled bool) error {
	if !enabled {
		c.state.PutN(onSaleKey, 0)
		return nil
	}
	if 0 == c.Price() {
		return fault.PriceNotSet
	}
	c.state.PutN(onSaleKey, 1)
	return nil
}
