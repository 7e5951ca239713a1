// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treasury

import (
	"encoding/binary"

	"github.com/bitmark-inc/ctdledger/account"
	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/storage"
	"github.com/bitmark-inc/logger"
)

// from storage/doc.go:
//
//   S "treasury-balance"   - value held
//                            data: amount
//   S "payments-length"    - number of ledger entries
//                            data: count
//   P ⧺ sequence           - ledger entry
//                            data: kind ⧺ account ⧺ amount

// Kind - the reason value moved
type Kind byte

// ledger entry kinds
const (
	Sale       Kind = 'S'
	Claim      Kind = 'C'
	Deposit    Kind = 'D'
	Withdrawal Kind = 'W'
)

// String - readable kind
func (k Kind) String() string {
	switch k {
	case Sale:
		return "sale"
	case Claim:
		return "claim"
	case Deposit:
		return "deposit"
	case Withdrawal:
		return "withdrawal"
	default:
		return "unknown"
	}
}

// MarshalText - kind as text
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

var (
	balanceKey = []byte("treasury-balance")
	lengthKey  = []byte("payments-length")
)

const (
	kindStart     = 0
	kindFinish    = kindStart + 1
	accountStart  = kindFinish
	accountFinish = accountStart + account.AccountLength
	amountStart   = accountFinish
	amountFinish  = amountStart + 8

	entryLength = amountFinish
)

// Payer - moves value out to a recipient
type Payer interface {
	Pay(recipient account.Account, amount uint64) error
}

// Payment - one ledger entry
type Payment struct {
	Sequence uint64          `json:"sequence"`
	Kind     Kind            `json:"kind"`
	Account  account.Account `json:"account"`
	Amount   uint64          `json:"amount,string"`
}

// Treasury - the value held and the ledger of every movement
type Treasury struct {
	state    storage.Handle
	payments storage.Handle
	payer    Payer
}

// New - treasury over the state and payments pools
func New(state, payments storage.Handle, payer Payer) *Treasury {
	return &Treasury{
		state:    state,
		payments: payments,
		payer:    payer,
	}
}

// Balance - value currently held
func (t *Treasury) Balance() uint64 {
	n, _ := t.state.GetN(balanceKey)
	return n
}

// Credit - add received value and record it
//
// zero amounts are not recorded
func (t *Treasury) Credit(kind Kind, from account.Account, amount uint64) error {
	if 0 == amount {
		return nil
	}
	balance := t.Balance()
	if balance+amount < balance {
		return fault.AmountOverflow
	}
	t.state.PutN(balanceKey, balance+amount)
	t.record(kind, from, amount)
	return nil
}

// Withdraw - pay amount out to recipient
func (t *Treasury) Withdraw(recipient account.Account, amount uint64) error {
	balance := t.Balance()
	if amount > balance {
		return fault.InsufficientBalance
	}
	if recipient.IsZero() {
		return fault.InvalidAccount
	}
	if err := t.payer.Pay(recipient, amount); nil != err {
		return err
	}
	t.state.PutN(balanceKey, balance-amount)
	t.record(Withdrawal, recipient, amount)
	return nil
}

func (t *Treasury) record(kind Kind, a account.Account, amount uint64) {
	n, _ := t.state.GetN(lengthKey)

	entry := make([]byte, entryLength)
	entry[kindStart] = byte(kind)
	copy(entry[accountStart:accountFinish], a[:])
	binary.BigEndian.PutUint64(entry[amountStart:amountFinish], amount)

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	t.payments.Put(key, entry)
	t.state.PutN(lengthKey, n+1)
}

// Payments - committed ledger entries from start
func (t *Treasury) Payments(start uint64, count int) ([]Payment, error) {
	if count <= 0 {
		return nil, fault.InvalidCount
	}
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, start)

	items, err := t.payments.NewFetchCursor().Seek(key).Fetch(count)
	if nil != err {
		return nil, err
	}

	payments := make([]Payment, 0, len(items))
	for _, item := range items {
		if 8 != len(item.Key) || entryLength != len(item.Value) {
			return nil, fault.InvalidCursor
		}
		p := Payment{
			Sequence: binary.BigEndian.Uint64(item.Key),
			Kind:     Kind(item.Value[kindStart]),
			Amount:   binary.BigEndian.Uint64(item.Value[amountStart:amountFinish]),
		}
		copy(p.Account[:], item.Value[accountStart:accountFinish])
		payments = append(payments, p)
	}
	return payments, nil
}

// LogPayer - a payer that only logs the payout
//
// the ledger entry is the record of the transfer
type LogPayer struct {
	log *logger.L
}

// NewLogPayer - payer writing to its own log channel
func NewLogPayer() *LogPayer {
	return &LogPayer{
		log: logger.New("payout"),
	}
}

// Pay - log the payout
func (p *LogPayer) Pay(recipient account.Account, amount uint64) error {
	p.log.Infof("pay: %d to: %s", amount, recipient)
	return nil
}
