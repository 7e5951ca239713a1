// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treasury

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ctdledger/account"
	"github.com/bitmark-inc/ctdledger/issuance"
	"github.com/bitmark-inc/ctdledger/rpc/ratelimit"
	"github.com/bitmark-inc/ctdledger/rpc/signed"
	"github.com/bitmark-inc/ctdledger/treasury"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitTreasury = 100
	rateBurstTreasury = 100
)

// limit for count
const maximumPaymentCount = 100

// Treasury - type for RPC calls
type Treasury struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Engine  *issuance.Engine
}

// New - create the treasury service
func New(log *logger.L, engine *issuance.Engine) *Treasury {
	return &Treasury{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitTreasury, rateBurstTreasury),
		Engine:  engine,
	}
}

// BalanceArguments - empty arguments for balance request
type BalanceArguments struct{}

// BalanceReply - value held
type BalanceReply struct {
	Balance uint64 `json:"balance,string"`
}

// Balance - value currently held
func (t *Treasury) Balance(_ *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}
	reply.Balance = t.Engine.Balance()
	return nil
}

// ---

// WithdrawArguments - operator request to pay out
type WithdrawArguments struct {
	Request   *signed.Request `json:"request"`
	Recipient account.Account `json:"recipient"`
	Amount    uint64          `json:"amount,string"`
}

// Pack - the signed part of the arguments
func (arguments *WithdrawArguments) Pack() signed.Packed {
	return signed.Packed{}.Bytes(arguments.Recipient.Bytes()).Uint64(arguments.Amount)
}

// Withdraw - pay an amount from the balance to a recipient
func (t *Treasury) Withdraw(arguments *WithdrawArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	caller, err := arguments.Request.Caller(t.Engine, "Treasury.Withdraw", arguments.Pack())
	if nil != err {
		return err
	}

	err = t.Engine.Withdraw(caller, arguments.Recipient, arguments.Amount)
	if nil != err {
		return err
	}

	t.Log.Infof("withdraw: %d  recipient: %s", arguments.Amount, arguments.Recipient)
	reply.Balance = t.Engine.Balance()
	return nil
}

// ---

// DepositArguments - a bare incoming transfer
type DepositArguments struct {
	Request *signed.Request `json:"request"`
	Amount  uint64          `json:"amount,string"`
}

// Pack - the signed part of the arguments
func (arguments *DepositArguments) Pack() signed.Packed {
	return signed.Packed{}.Uint64(arguments.Amount)
}

// Deposit - credit a transfer that is not a purchase
func (t *Treasury) Deposit(arguments *DepositArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	caller, err := arguments.Request.Caller(t.Engine, "Treasury.Deposit", arguments.Pack())
	if nil != err {
		return err
	}

	err = t.Engine.Deposit(caller, arguments.Amount)
	if nil != err {
		return err
	}

	reply.Balance = t.Engine.Balance()
	return nil
}

// ---

// PaymentsArguments - page of the payment ledger
type PaymentsArguments struct {
	Start uint64 `json:"start,string"`
	Count int    `json:"count"`
}

// PaymentsReply - ledger entries and where the next page starts
type PaymentsReply struct {
	Payments  []treasury.Payment `json:"payments"`
	NextStart uint64             `json:"nextStart,string"`
}

// Payments - ledger entries in sequence order
func (t *Treasury) Payments(arguments *PaymentsArguments, reply *PaymentsReply) error {
	if err := ratelimit.LimitN(t.Limiter, arguments.Count, maximumPaymentCount); nil != err {
		return err
	}

	payments, err := t.Engine.Payments(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Payments = payments
	reply.NextStart = arguments.Start
	if n := len(payments); n > 0 {
		reply.NextStart = payments[n-1].Sequence + 1
	}
	return nil
}
