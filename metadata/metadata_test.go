// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metadata_test

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ctdledger/constants"
	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/fixtures"
	"github.com/bitmark-inc/ctdledger/metadata"
	"github.com/bitmark-inc/ctdledger/storage"
)

const image = "https://example.com/image"

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func setupMetadata(t *testing.T) (*storage.Database, *metadata.Metadata) {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open memory error: %s", err)
	}
	return db, metadata.New(db.Pool.State, constants.DefaultName, image)
}

func decode(t *testing.T, s string) map[string]interface{} {
	doc := map[string]interface{}{}
	require.Nil(t, json.Unmarshal([]byte(s), &doc), "parse %q", s)
	return doc
}

func TestDocument(t *testing.T) {
	db, m := setupMetadata(t)
	defer db.Close()

	s, err := m.JSON(0)
	require.Nil(t, err, "json")
	doc := decode(t, s)
	assert.Equal(t, "CHIMNEY TOWN DAO #0", doc["name"], "name")
	assert.Equal(t, "", doc["description"], "description")
	assert.Equal(t, image, doc["image"], "image")
	_, found := doc["animation_url"]
	assert.False(t, found, "animation_url present while unset")
	_, found = doc["external_url"]
	assert.False(t, found, "external_url present while unset")

	s, _ = m.JSON(1)
	assert.Equal(t, "CHIMNEY TOWN DAO #1", decode(t, s)["name"], "dynamic number")

	trx, _ := db.Begin()
	assert.Nil(t, m.UpdateImageURL("https://example.com/updatedimage"), "update image")
	assert.Nil(t, m.UpdateAnimationURL("https://example.com/animation"), "update animation")
	assert.Nil(t, m.UpdateExternalURL("https://example.com/external"), "update external")
	assert.Nil(t, trx.Commit(), "commit")

	s, _ = m.JSON(0)
	doc = decode(t, s)
	assert.Equal(t, "https://example.com/updatedimage", doc["image"], "updated image")
	assert.Equal(t, "https://example.com/animation", doc["animation_url"], "animation")
	assert.Equal(t, "https://example.com/external", doc["external_url"], "external")
}

func TestURI(t *testing.T) {
	db, m := setupMetadata(t)
	defer db.Close()

	uri, err := m.URI(12)
	require.Nil(t, err, "uri")
	require.True(t, strings.HasPrefix(uri, metadata.URIPrefix), "prefix of %q", uri)

	buffer, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, metadata.URIPrefix))
	require.Nil(t, err, "base64")
	assert.Equal(t, "CHIMNEY TOWN DAO #12", decode(t, string(buffer))["name"], "name in uri")
}

func TestFreeze(t *testing.T) {
	db, m := setupMetadata(t)
	defer db.Close()

	assert.False(t, m.IsFrozen(), "default frozen")

	trx, _ := db.Begin()
	assert.Nil(t, m.Freeze(), "freeze")
	assert.Nil(t, trx.Commit(), "commit")

	assert.True(t, m.IsFrozen(), "not frozen")

	trx, _ = db.Begin()
	defer trx.Abort()
	assert.Equal(t, fault.AlreadyFrozen, m.UpdateImageURL("should be rejected"), "image after freeze")
	assert.Equal(t, fault.AlreadyFrozen, m.UpdateAnimationURL(""), "animation after freeze")
	assert.Equal(t, fault.AlreadyFrozen, m.UpdateExternalURL(""), "external after freeze")
	assert.Equal(t, fault.AlreadyFrozen, m.Freeze(), "freeze twice")
	assert.Equal(t, image, m.ImageURL(), "image changed after freeze")
}

func TestInvalidURL(t *testing.T) {
	db, m := setupMetadata(t)
	defer db.Close()

	trx, _ := db.Begin()
	defer trx.Abort()
	assert.Equal(t, fault.InvalidURL, m.UpdateExternalURL("http://[::1"), "unparsable url")
}
