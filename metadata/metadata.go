// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metadata

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/storage"
)

// keys in the state pool
var (
	imageKey     = []byte("metadata-image")
	animationKey = []byte("metadata-animation")
	externalKey  = []byte("metadata-external")
	frozenKey    = []byte("metadata-frozen")
)

// URIPrefix - every token URI is an inline JSON document
const URIPrefix = "data:application/json;base64,"

// Document - token metadata JSON
type Document struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	AnimationURL string `json:"animation_url,omitempty"`
	ExternalURL  string `json:"external_url,omitempty"`
}

// Metadata - collection wide URLs and the freeze flag
type Metadata struct {
	state        storage.Handle
	name         string
	defaultImage string
}

// New - metadata over a state pool
//
// defaultImage is served until an image update is stored
func New(state storage.Handle, name string, defaultImage string) *Metadata {
	return &Metadata{
		state:        state,
		name:         name,
		defaultImage: defaultImage,
	}
}

// Name - collection name
func (m *Metadata) Name() string {
	return m.name
}

// ImageURL - current image
func (m *Metadata) ImageURL() string {
	if s := m.state.Get(imageKey); nil != s {
		return string(s)
	}
	return m.defaultImage
}

// AnimationURL - current animation, empty if unset
func (m *Metadata) AnimationURL() string {
	return string(m.state.Get(animationKey))
}

// ExternalURL - current external link, empty if unset
func (m *Metadata) ExternalURL() string {
	return string(m.state.Get(externalKey))
}

// IsFrozen - true once metadata is permanent
func (m *Metadata) IsFrozen() bool {
	return m.state.Has(frozenKey)
}

// UpdateImageURL - replace the image
func (m *Metadata) UpdateImageURL(s string) error {
	return m.update(imageKey, s)
}

// UpdateAnimationURL - replace the animation, empty removes it
func (m *Metadata) UpdateAnimationURL(s string) error {
	return m.update(animationKey, s)
}

// UpdateExternalURL - replace the external link, empty removes it
func (m *Metadata) UpdateExternalURL(s string) error {
	return m.update(externalKey, s)
}

func (m *Metadata) update(key []byte, s string) error {
	if m.IsFrozen() {
		return fault.AlreadyFrozen
	}
	if "" != s {
		if _, err := url.Parse(s); nil != err {
			return fault.InvalidURL
		}
	}
	m.state.Put(key, []byte(s))
	return nil
}

// Freeze - make metadata permanent, cannot be undone
func (m *Metadata) Freeze() error {
	if m.IsFrozen() {
		return fault.AlreadyFrozen
	}
	m.state.Put(frozenKey, []byte{1})
	return nil
}

// Document - the metadata of a token
func (m *Metadata) Document(id uint64) *Document {
	return &Document{
		Name:         m.name + " #" + strconv.FormatUint(id, 10),
		Description:  "",
		Image:        m.ImageURL(),
		AnimationURL: m.AnimationURL(),
		ExternalURL:  m.ExternalURL(),
	}
}

// JSON - the metadata document as text
func (m *Metadata) JSON(id uint64) (string, error) {
	buffer, err := json.Marshal(m.Document(id))
	if nil != err {
		return "", err
	}
	return string(buffer), nil
}

// URI - inline data URI of the metadata document
func (m *Metadata) URI(id uint64) (string, error) {
	s, err := m.JSON(id)
	if nil != err {
		return "", err
	}
	return URIPrefix + base64.StdEncoding.EncodeToString([]byte(s)), nil
}
