// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metadata

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ctdledger/account"
	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/issuance"
	"github.com/bitmark-inc/ctdledger/metadata"
	"github.com/bitmark-inc/ctdledger/rpc/ratelimit"
	"github.com/bitmark-inc/ctdledger/rpc/signed"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitMetadata = 200
	rateBurstMetadata = 100
)

// updatable fields
const (
	FieldImage     = "image"
	FieldAnimation = "animation"
	FieldExternal  = "external"
)

// Metadata - type for RPC calls
type Metadata struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Engine  *issuance.Engine
}

// New - create the metadata service
func New(log *logger.L, engine *issuance.Engine) *Metadata {
	return &Metadata{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitMetadata, rateBurstMetadata),
		Engine:  engine,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - collection wide metadata
type InfoReply struct {
	Document *metadata.Document `json:"document"`
	Frozen   bool               `json:"frozen"`
}

// Info - collection wide metadata and the freeze flag
func (m *Metadata) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	reply.Document, reply.Frozen = m.Engine.Metadata()
	return nil
}

// ---

// TokenArguments - id to describe
type TokenArguments struct {
	Id uint64 `json:"id"`
}

// TokenReply - metadata JSON text
type TokenReply struct {
	JSON string `json:"json"`
}

// Token - the metadata JSON of an id, issued or not
func (m *Metadata) Token(arguments *TokenArguments, reply *TokenReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	s, err := m.Engine.PrepareMetadataJSON(arguments.Id)
	if nil != err {
		return err
	}
	reply.JSON = s
	return nil
}

// ---

// UpdateArguments - operator request to change one URL
type UpdateArguments struct {
	Request *signed.Request `json:"request"`
	Field   string          `json:"field"`
	URL     string          `json:"url"`
}

// Pack - the signed part of the arguments
func (arguments *UpdateArguments) Pack() signed.Packed {
	return signed.Packed{}.String(arguments.Field).String(arguments.URL)
}

// Update - change the image, animation or external URL
func (m *Metadata) Update(arguments *UpdateArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	var update func(account.Account, string) error
	switch arguments.Field {
	case FieldImage:
		update = m.Engine.UpdateImageURL
	case FieldAnimation:
		update = m.Engine.UpdateAnimationURL
	case FieldExternal:
		update = m.Engine.UpdateExternalURL
	default:
		return fault.InvalidField
	}

	caller, err := arguments.Request.Caller(m.Engine, "Metadata.Update", arguments.Pack())
	if nil != err {
		return err
	}

	err = update(caller, arguments.URL)
	if nil != err {
		return err
	}

	m.Log.Infof("update %s: %q", arguments.Field, arguments.URL)
	reply.Document, reply.Frozen = m.Engine.Metadata()
	return nil
}

// ---

// FreezeArguments - operator request to make metadata permanent
type FreezeArguments struct {
	Request *signed.Request `json:"request"`
}

// Freeze - make the metadata permanent, cannot be undone
func (m *Metadata) Freeze(arguments *FreezeArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	caller, err := arguments.Request.Caller(m.Engine, "Metadata.Freeze", nil)
	if nil != err {
		return err
	}

	err = m.Engine.FreezeMetadata(caller)
	if nil != err {
		return err
	}

	m.Log.Warn("metadata frozen")
	reply.Document, reply.Frozen = m.Engine.Metadata()
	return nil
}
