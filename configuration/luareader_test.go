// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ctdledger/configuration"
	"github.com/bitmark-inc/ctdledger/fault"
)

type collection struct {
	Name     string `gluamapper:"name"`
	ImageURL string `gluamapper:"image_url"`
}

type sample struct {
	DataDirectory string            `gluamapper:"data_directory"`
	Operator      string            `gluamapper:"operator"`
	Connections   int               `gluamapper:"maximum_connections"`
	Listen        []string          `gluamapper:"listen"`
	Collection    collection        `gluamapper:"collection"`
	Levels        map[string]string `gluamapper:"levels"`
}

const script = `
local M = {}
M.data_directory = "."
M.operator = arg.operator
M.maximum_connections = 5
M.listen = { "127.0.0.1:2130", "[::1]:2130" }
M.collection = {
    name = "TEST " .. "COLLECTION",
    image_url = "https://example.com/image",
}
M.levels = { main = "info", DEFAULT = "critical" }
return M
`

func writeFile(t *testing.T, content string) (string, func()) {
	dir, err := ioutil.TempDir("", "ctdledger-configuration")
	require.Nil(t, err, "temp dir")
	name := filepath.Join(dir, "test.conf")
	require.Nil(t, ioutil.WriteFile(name, []byte(content), 0600), "write file")
	return name, func() { os.RemoveAll(dir) }
}

func TestParseConfigurationFile(t *testing.T) {
	name, cleanup := writeFile(t, script)
	defer cleanup()

	s := sample{
		Connections: 10,
	}
	variables := map[string]string{
		"operator": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	}
	err := configuration.ParseConfigurationFile(name, &s, variables)
	require.Nil(t, err, "parse")

	assert.Equal(t, ".", s.DataDirectory, "data directory")
	assert.Equal(t, variables["operator"], s.Operator, "operator from variables")
	assert.Equal(t, 5, s.Connections, "connections")
	assert.Equal(t, []string{"127.0.0.1:2130", "[::1]:2130"}, s.Listen, "listen")
	assert.Equal(t, "TEST COLLECTION", s.Collection.Name, "collection name")
	assert.Equal(t, "https://example.com/image", s.Collection.ImageURL, "collection image")
	assert.Equal(t, "info", s.Levels["main"], "levels")
}

func TestParseConfigurationFileNotTable(t *testing.T) {
	name, cleanup := writeFile(t, `return 42`)
	defer cleanup()

	s := sample{}
	err := configuration.ParseConfigurationFile(name, &s, nil)
	assert.Equal(t, fault.ConfigurationNotTable, err, "non table result")

	err = configuration.ParseConfigurationFile(name, s, nil)
	assert.Equal(t, fault.ConfigurationNotTable, err, "non pointer")
}

func TestParseConfigurationFileErrors(t *testing.T) {
	name, cleanup := writeFile(t, `this is not lua`)
	defer cleanup()

	s := sample{}
	err := configuration.ParseConfigurationFile(name, &s, nil)
	assert.NotNil(t, err, "syntax error")

	err = configuration.ParseConfigurationFile(name+".missing", &s, nil)
	assert.NotNil(t, err, "missing file")
}

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/x.db", configuration.EnsureAbsolute("/data", "x.db"), "relative")
	assert.Equal(t, "/other/x.db", configuration.EnsureAbsolute("/data", "/other/x.db"), "absolute")
	assert.Equal(t, "/data/log", configuration.EnsureAbsolute("/data/", "./log/"), "cleaned")
}
