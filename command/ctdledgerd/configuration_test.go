// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ctdledger/account"
	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/fixtures"
)

const configTemplate = `
local M = {}
M.data_directory = %q
M.pidfile = "ctdledgerd.pid"
M.operator = %q
M.database = {
    name = %q,
}
M.collection = {
    image_url = "https://example.com/ctd.png",
}
M.client_rpc = {
    maximum_connections = 20,
    listen = { "127.0.0.1:2130" },
}
M.https_rpc = {
    listen = { "127.0.0.1:2131" },
    allow = {
        details = { "127.0.0.0/8" },
    },
}
M.logging = {
    size = 8192,
    count = 2,
    levels = { DEFAULT = "info" },
}
return M
`

func writeConfiguration(t *testing.T, dataDirectory string, operator string, database string) (string, string, func()) {
	dir, err := ioutil.TempDir("", "ctdledgerd-configuration")
	require.Nil(t, err, "temp dir")

	name := filepath.Join(dir, "ctdledgerd.conf")
	content := fmt.Sprintf(configTemplate, dataDirectory, operator, database)
	require.Nil(t, ioutil.WriteFile(name, []byte(content), 0600), "write configuration")

	// resolve any symlinks in the temporary directory path
	dir, err = filepath.EvalSymlinks(dir)
	require.Nil(t, err, "eval symlinks")

	return name, dir, func() { os.RemoveAll(dir) }
}

func TestGetConfiguration(t *testing.T) {
	name, dir, cleanup := writeConfiguration(t, ".", fixtures.Operator.Account.String(), "test.leveldb")
	defer cleanup()

	name, err := filepath.EvalSymlinks(name)
	require.Nil(t, err, "eval symlinks")

	conf, err := getConfiguration(name)
	require.Nil(t, err, "configuration")

	assert.Equal(t, dir, conf.DataDirectory, "data directory")
	assert.Equal(t, fixtures.Operator.Account, conf.operator, "operator")
	assert.Equal(t, filepath.Join(dir, "ctdledgerd.pid"), conf.PidFile, "pid file")

	assert.Equal(t, filepath.Join(dir, defaultLevelDBDirectory), conf.Database.Directory, "database directory")
	assert.Equal(t, filepath.Join(dir, defaultLevelDBDirectory, "test.leveldb"), conf.Database.Name, "database name")

	assert.Equal(t, "CHIMNEY TOWN DAO", conf.Collection.Name, "default name")
	assert.Equal(t, "CTD", conf.Collection.Symbol, "default symbol")
	assert.Equal(t, "https://example.com/ctd.png", conf.Collection.ImageURL, "image url")

	assert.Equal(t, uint64(20), conf.ClientRPC.MaximumConnections, "rpc connections")
	assert.Equal(t, []string{"127.0.0.1:2130"}, conf.ClientRPC.Listen, "rpc listen")
	assert.Equal(t, filepath.Join(dir, defaultCertificateFile), conf.ClientRPC.Certificate, "rpc certificate")
	assert.Equal(t, filepath.Join(dir, defaultKeyFile), conf.ClientRPC.PrivateKey, "rpc key")

	assert.Equal(t, uint64(defaultRPCClients), conf.HttpsRPC.MaximumConnections, "https default connections")
	assert.Equal(t, []string{"127.0.0.0/8"}, conf.HttpsRPC.Allow["details"], "https allow")
	assert.Equal(t, filepath.Join(dir, defaultCertificateFile), conf.HttpsRPC.Certificate, "https certificate")

	assert.Equal(t, filepath.Join(dir, defaultLogDirectory), conf.Logging.Directory, "log directory")
	assert.Equal(t, defaultLogFile, conf.Logging.File, "log file")
	assert.Equal(t, 8192, conf.Logging.Size, "log size")
	assert.Equal(t, "info", conf.Logging.Levels["DEFAULT"], "log level")

	for _, d := range []string{conf.Database.Directory, conf.Logging.Directory} {
		info, err := os.Stat(d)
		require.Nil(t, err, "stat: %s", d)
		assert.True(t, info.IsDir(), "not a directory: %s", d)
	}
}

func TestGetConfigurationInvalidOperator(t *testing.T) {
	operators := []string{
		"",
		"5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0x1234",
		"0x" + strings.Repeat("0", 40),
	}

	for _, operator := range operators {
		name, _, cleanup := writeConfiguration(t, ".", operator, "test.leveldb")
		_, err := getConfiguration(name)
		cleanup()
		assert.NotNil(t, err, "operator: %q accepted", operator)
	}
}

func TestGetConfigurationInvalidDataDirectory(t *testing.T) {
	for _, dataDirectory := range []string{"", "~", "/nonexistent/ctdledgerd"} {
		name, _, cleanup := writeConfiguration(t, dataDirectory, fixtures.Alice.Account.String(), "test.leveldb")
		_, err := getConfiguration(name)
		cleanup()
		assert.NotNil(t, err, "data directory: %q accepted", dataDirectory)
	}
}

func TestGetConfigurationDatabaseNotPlainName(t *testing.T) {
	name, _, cleanup := writeConfiguration(t, ".", fixtures.Alice.Account.String(), "sub/test.leveldb")
	defer cleanup()

	_, err := getConfiguration(name)
	assert.NotNil(t, err, "database path accepted")
}

func TestGetFilenameWithDirectory(t *testing.T) {
	assert.Equal(t, "rpc.crt", getFilenameWithDirectory(nil, "rpc.crt"), "default directory")
	assert.Equal(t, "/tmp/keys/rpc.crt", getFilenameWithDirectory([]string{"/tmp/keys", "127.0.0.1"}, "rpc.crt"), "given directory")
}

func TestMakeOperatorKey(t *testing.T) {
	dir, err := ioutil.TempDir("", "ctdledgerd-operator")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	fileName := filepath.Join(dir, operatorPrivateKeyFilename)
	operator, err := makeOperatorKey(fileName)
	require.Nil(t, err, "make key")
	assert.False(t, operator.IsZero(), "zero operator")

	data, err := ioutil.ReadFile(fileName)
	require.Nil(t, err, "read key")
	assert.True(t, strings.HasPrefix(string(data), "SEED:"), "seed prefix")

	parsed, err := account.FromHex(operator.String())
	require.Nil(t, err, "operator text")
	assert.Equal(t, operator, parsed, "operator round trip")

	_, err = makeOperatorKey(fileName)
	assert.Equal(t, fault.KeyFileExists, err, "overwrote key file")
}
