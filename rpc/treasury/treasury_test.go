// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treasury_test

import (
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/fixtures"
	rpcfixtures "github.com/bitmark-inc/ctdledger/rpc/fixtures"
	rpctreasury "github.com/bitmark-inc/ctdledger/rpc/treasury"
	"github.com/bitmark-inc/ctdledger/treasury"
	"github.com/bitmark-inc/ctdledger/treasury/mocks"
	"github.com/bitmark-inc/logger"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestTreasuryDepositAndWithdraw(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	payer := mocks.NewMockPayer(ctl)
	e := rpcfixtures.NewEngine(t, payer)
	defer e.Close()

	tr := rpctreasury.New(logger.New(fixtures.LogCategory), e.Engine)

	deposit := rpctreasury.DepositArguments{Amount: 500}
	deposit.Request = e.Sign(fixtures.Alice, "Treasury.Deposit", deposit.Pack())

	var reply rpctreasury.BalanceReply
	assert.Nil(t, tr.Deposit(&deposit, &reply), "wrong Deposit")
	assert.Equal(t, uint64(500), reply.Balance, "balance after deposit")

	withdraw := rpctreasury.WithdrawArguments{Recipient: fixtures.Bob.Account, Amount: 200}
	withdraw.Request = e.Sign(fixtures.Alice, "Treasury.Withdraw", withdraw.Pack())
	assert.Equal(t, fault.NotOperator, tr.Withdraw(&withdraw, &reply), "non operator")

	withdraw.Amount = 501
	withdraw.Request = e.Sign(fixtures.Operator, "Treasury.Withdraw", withdraw.Pack())
	assert.Equal(t, fault.InsufficientBalance, tr.Withdraw(&withdraw, &reply), "overdraw")

	payer.EXPECT().Pay(fixtures.Bob.Account, uint64(200)).Return(nil).Times(1)

	withdraw.Amount = 200
	withdraw.Request = e.Sign(fixtures.Operator, "Treasury.Withdraw", withdraw.Pack())
	assert.Nil(t, tr.Withdraw(&withdraw, &reply), "wrong Withdraw")
	assert.Equal(t, uint64(300), reply.Balance, "balance after withdraw")

	reply = rpctreasury.BalanceReply{}
	assert.Nil(t, tr.Balance(&rpctreasury.BalanceArguments{}, &reply), "wrong Balance")
	assert.Equal(t, uint64(300), reply.Balance, "balance")

	var payments rpctreasury.PaymentsReply
	assert.Nil(t, tr.Payments(&rpctreasury.PaymentsArguments{Start: 0, Count: 10}, &payments), "wrong Payments")
	assert.Equal(t, 2, len(payments.Payments), "payment count")
	assert.Equal(t, treasury.Deposit, payments.Payments[0].Kind, "first kind")
	assert.Equal(t, fixtures.Alice.Account, payments.Payments[0].Account, "first account")
	assert.Equal(t, treasury.Withdrawal, payments.Payments[1].Kind, "second kind")
	assert.Equal(t, uint64(200), payments.Payments[1].Amount, "second amount")
	assert.Equal(t, uint64(2), payments.NextStart, "next start")

	assert.Equal(t, fault.InvalidCount, tr.Payments(&rpctreasury.PaymentsArguments{Count: 101}, &payments), "count too large")
}
