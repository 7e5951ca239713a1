// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ctdledger/account"
	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/fixtures"
	"github.com/bitmark-inc/ctdledger/registry"
	"github.com/bitmark-inc/ctdledger/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func setupRegistry(t *testing.T) (*storage.Database, registry.Registry) {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open memory error: %s", err)
	}
	r := registry.New(db.Pool.Tokens, db.Pool.OwnerTokens, db.Pool.OwnerBalance)
	return db, r
}

func record(t *testing.T, db *storage.Database, r registry.Registry, owner account.Account, ids ...uint64) {
	trx, err := db.Begin()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	defer trx.Abort()

	for _, id := range ids {
		if err := r.Record(id, owner); nil != err {
			t.Fatalf("record %d error: %s", id, err)
		}
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}
}

func TestRecordAndOwnerOf(t *testing.T) {
	db, r := setupRegistry(t)
	defer db.Close()

	assert.False(t, r.Exists(7), "unissued token exists")
	_, err := r.OwnerOf(7)
	assert.Equal(t, fault.NonexistentToken, err, "owner of unissued token")

	record(t, db, r, fixtures.Alice.Account, 7)

	assert.True(t, r.Exists(7), "issued token missing")
	owner, err := r.OwnerOf(7)
	assert.Nil(t, err, "owner error")
	assert.Equal(t, fixtures.Alice.Account, owner, "wrong owner")
	assert.Equal(t, uint64(1), r.BalanceOf(fixtures.Alice.Account), "wrong balance")
	assert.Equal(t, uint64(0), r.BalanceOf(fixtures.Bob.Account), "balance of non holder")
}

func TestRecordTwiceFails(t *testing.T) {
	db, r := setupRegistry(t)
	defer db.Close()

	record(t, db, r, fixtures.Alice.Account, 1)

	trx, _ := db.Begin()
	defer trx.Abort()

	err := r.Record(1, fixtures.Bob.Account)
	assert.Equal(t, fault.AlreadyMinted, err, "second record of a token")

	// a staged record is seen by the same transaction
	assert.Nil(t, r.Record(2, fixtures.Bob.Account), "record")
	assert.Equal(t, fault.AlreadyMinted, r.Record(2, fixtures.Bob.Account), "staged duplicate")
}

func TestRecordZeroAccount(t *testing.T) {
	db, r := setupRegistry(t)
	defer db.Close()

	trx, _ := db.Begin()
	defer trx.Abort()

	err := r.Record(1, account.Account{})
	assert.Equal(t, fault.InvalidAccount, err, "zero account")
}

func TestTokensOf(t *testing.T) {
	db, r := setupRegistry(t)
	defer db.Close()

	record(t, db, r, fixtures.Alice.Account, 9, 3, 9905)
	record(t, db, r, fixtures.Bob.Account, 4, 5)

	ids, err := r.TokensOf(fixtures.Alice.Account, 0, 10)
	assert.Nil(t, err, "tokens of")
	assert.Equal(t, []uint64{3, 9, 9905}, ids, "alice tokens")

	ids, _ = r.TokensOf(fixtures.Alice.Account, 4, 1)
	assert.Equal(t, []uint64{9}, ids, "alice tokens from 4")

	ids, _ = r.TokensOf(fixtures.Carol.Account, 0, 10)
	assert.Equal(t, 0, len(ids), "carol holds nothing")

	assert.Equal(t, uint64(3), r.BalanceOf(fixtures.Alice.Account), "alice balance")

	_, err = r.TokensOf(fixtures.Alice.Account, 0, 0)
	assert.Equal(t, fault.InvalidCount, err, "zero count")
}
