// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sale

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ctdledger/issuance"
	"github.com/bitmark-inc/ctdledger/rpc/ratelimit"
	"github.com/bitmark-inc/ctdledger/rpc/signed"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitSale = 200
	rateBurstSale = 100
)

// Sale - type for RPC calls
type Sale struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Engine  *issuance.Engine
}

// New - create the sale service
func New(log *logger.L, engine *issuance.Engine) *Sale {
	return &Sale{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitSale, rateBurstSale),
		Engine:  engine,
	}
}

// ---

// StatusArguments - empty arguments for status request
type StatusArguments struct{}

// StatusReply - price, sale flag and supply counts
type StatusReply struct {
	Price  uint64          `json:"price,string"`
	OnSale bool            `json:"onSale"`
	Supply issuance.Supply `json:"supply"`
}

// Status - current sale configuration
func (s *Sale) Status(_ *StatusArguments, reply *StatusReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	reply.Price = s.Engine.Price()
	reply.OnSale = s.Engine.IsOnSale()
	reply.Supply = s.Engine.Supply()
	return nil
}

// ---

// SetPriceArguments - operator request to change the unit price
type SetPriceArguments struct {
	Request *signed.Request `json:"request"`
	Price   uint64          `json:"price,string"`
}

// Pack - the signed part of the arguments
func (arguments *SetPriceArguments) Pack() signed.Packed {
	return signed.Packed{}.Uint64(arguments.Price)
}

// SetPriceReply - the price now in force
type SetPriceReply struct {
	Price uint64 `json:"price,string"`
}

// SetPrice - change the unit price
func (s *Sale) SetPrice(arguments *SetPriceArguments, reply *SetPriceReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	caller, err := arguments.Request.Caller(s.Engine, "Sale.SetPrice", arguments.Pack())
	if nil != err {
		return err
	}

	s.Log.Infof("set price: %d  caller: %s", arguments.Price, caller)

	err = s.Engine.SetPrice(caller, arguments.Price)
	if nil != err {
		return err
	}

	reply.Price = s.Engine.Price()
	return nil
}

// ---

// SetStatusArguments - operator request to start or stop the sale
type SetStatusArguments struct {
	Request *signed.Request `json:"request"`
	OnSale  bool            `json:"onSale"`
}

// Pack - the signed part of the arguments
func (arguments *SetStatusArguments) Pack() signed.Packed {
	return signed.Packed{}.Bool(arguments.OnSale)
}

// SetStatusReply - the sale flag now in force
type SetStatusReply struct {
	OnSale bool `json:"onSale"`
}

// SetStatus - start or stop the sale
func (s *Sale) SetStatus(arguments *SetStatusArguments, reply *SetStatusReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	caller, err := arguments.Request.Caller(s.Engine, "Sale.SetStatus", arguments.Pack())
	if nil != err {
		return err
	}

	err = s.Engine.SetSaleStatus(caller, arguments.OnSale)
	if nil != err {
		return err
	}

	reply.OnSale = s.Engine.IsOnSale()
	return nil
}
