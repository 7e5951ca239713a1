// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/fixtures"
	"github.com/bitmark-inc/ctdledger/rpc"
	"github.com/bitmark-inc/ctdledger/rpc/certificate"
	rpcfixtures "github.com/bitmark-inc/ctdledger/rpc/fixtures"
	"github.com/bitmark-inc/ctdledger/rpc/listeners"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestInitialiseAndFinalise(t *testing.T) {
	dir, err := ioutil.TempDir("", "rpc")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	cer := filepath.Join(dir, "rpc.crt")
	key := filepath.Join(dir, "rpc.key")
	require.Nil(t, certificate.Generate("test", cer, key, nil), "generate")

	e := rpcfixtures.NewEngine(t, nil)
	defer e.Close()

	rpcConfiguration := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:0"},
		Certificate:        cer,
		PrivateKey:         key,
	}
	httpsConfiguration := listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:0"},
		Certificate:        cer,
		PrivateKey:         key,
		Allow: map[string][]string{
			"details": {"127.0.0.1/32"},
		},
	}

	assert.Equal(t, fault.NotInitialised, rpc.Finalise(), "finalise before initialise")

	err = rpc.Initialise(&rpcConfiguration, &httpsConfiguration, "1.0", e.Engine, prometheus.NewRegistry())
	require.Nil(t, err, "wrong Initialise")

	err = rpc.Initialise(&rpcConfiguration, &httpsConfiguration, "1.0", e.Engine, nil)
	assert.Equal(t, fault.AlreadyInitialised, err, "second Initialise")

	assert.Nil(t, rpc.Finalise(), "wrong Finalise")
	assert.Equal(t, fault.NotInitialised, rpc.Finalise(), "second Finalise")
}

func TestInitialiseWithoutCertificate(t *testing.T) {
	e := rpcfixtures.NewEngine(t, nil)
	defer e.Close()

	rpcConfiguration := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:0"},
		Certificate:        "missing.crt",
		PrivateKey:         "missing.key",
	}

	err := rpc.Initialise(&rpcConfiguration, &listeners.HTTPSConfiguration{}, "1.0", e.Engine, nil)
	assert.NotNil(t, err, "missing certificate accepted")
	assert.Equal(t, fault.NotInitialised, rpc.Finalise(), "finalise after failure")
}
