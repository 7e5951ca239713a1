// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/ctdledger/account"

	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// Keys - a deterministic signing identity for tests
type Keys struct {
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
	Account    account.Account
}

// fixed identities, seeded so runs are repeatable
var (
	Operator = makeKeys(0x01)
	Alice    = makeKeys(0x02)
	Bob      = makeKeys(0x03)
	Carol    = makeKeys(0x04)
	Dave     = makeKeys(0x05)
)

func makeKeys(seed byte) Keys {
	s := make([]byte, ed25519.SeedSize)
	for i := range s {
		s[i] = seed
	}
	privateKey := ed25519.NewKeyFromSeed(s)
	publicKey := privateKey.Public().(ed25519.PublicKey)
	a, err := account.FromPublicKey(publicKey)
	if nil != err {
		panic(fmt.Sprintf("fixture account error: %s", err))
	}
	return Keys{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
		Account:    a,
	}
}

// Sign - sign a message with the fixture private key
func (k Keys) Sign(message []byte) []byte {
	return ed25519.Sign(k.PrivateKey, message)
}

// SetupTestLogger - start a quiet logger under the test directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove its files
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	path, _ := filepath.Abs(dir)
	err := os.RemoveAll(path)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
