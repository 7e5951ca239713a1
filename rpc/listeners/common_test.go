// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/ctdledger/fixtures"
	"github.com/bitmark-inc/ctdledger/rpc/certificate"
	"github.com/bitmark-inc/logger"
)

var (
	tlsConfiguration *tls.Config
	fingerprint      [32]byte
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()

	dir, err := ioutil.TempDir("", "listeners")
	if nil != err {
		panic(err)
	}

	cer := filepath.Join(dir, "test.crt")
	key := filepath.Join(dir, "test.key")
	if err := certificate.Generate("test", cer, key, []string{"127.0.0.1"}); nil != err {
		panic(err)
	}

	tlsConfiguration, fingerprint, err = certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	if nil != err {
		panic(err)
	}

	rc := m.Run()

	_ = os.RemoveAll(dir)
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}
