// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ctdledger/account"
	"github.com/bitmark-inc/ctdledger/constants"
	"github.com/bitmark-inc/ctdledger/issuance"
	"github.com/bitmark-inc/ctdledger/merkle"
	"github.com/bitmark-inc/ctdledger/rpc/ratelimit"
	"github.com/bitmark-inc/ctdledger/rpc/signed"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitToken = 200
	rateBurstToken = 100
)

// limit for count
const maximumListCount = 100

// Token - type for RPC calls
type Token struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Engine  *issuance.Engine
}

// New - create the token service
func New(log *logger.L, engine *issuance.Engine) *Token {
	return &Token{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitToken, rateBurstToken),
		Engine:  engine,
	}
}

// IssueReply - ids issued by a mint, claim or reserve call
type IssueReply struct {
	Ids []uint64 `json:"ids"`
}

// ---

// MintArguments - buy one public id
type MintArguments struct {
	Request *signed.Request `json:"request"`
	Id      uint64          `json:"id"`
	Payment uint64          `json:"payment,string"`
}

// Pack - the signed part of the arguments
func (arguments *MintArguments) Pack() signed.Packed {
	return signed.Packed{}.Uint64(arguments.Id).Uint64(arguments.Payment)
}

// Mint - buy one public id at the sale price
func (token *Token) Mint(arguments *MintArguments, reply *IssueReply) error {
	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	caller, err := arguments.Request.Caller(token.Engine, "Token.Mint", arguments.Pack())
	if nil != err {
		return err
	}

	err = token.Engine.Mint(caller, arguments.Id, arguments.Payment)
	if nil != err {
		return err
	}

	token.Log.Infof("mint: %d  owner: %s", arguments.Id, caller)
	reply.Ids = []uint64{arguments.Id}
	return nil
}

// ---

// MintBatchArguments - buy several public ids together
type MintBatchArguments struct {
	Request *signed.Request `json:"request"`
	Ids     []uint64        `json:"ids"`
	Payment uint64          `json:"payment,string"`
}

// Pack - the signed part of the arguments
func (arguments *MintBatchArguments) Pack() signed.Packed {
	return signed.Packed{}.Uint64s(arguments.Ids).Uint64(arguments.Payment)
}

// MintBatch - buy several public ids, all or none
func (token *Token) MintBatch(arguments *MintBatchArguments, reply *IssueReply) error {
	if err := ratelimit.LimitN(token.Limiter, len(arguments.Ids), constants.MaximumBatchSize); nil != err {
		return err
	}

	caller, err := arguments.Request.Caller(token.Engine, "Token.MintBatch", arguments.Pack())
	if nil != err {
		return err
	}

	err = token.Engine.MintBatch(caller, arguments.Ids, arguments.Payment)
	if nil != err {
		return err
	}

	token.Log.Infof("mint batch: %d ids  owner: %s", len(arguments.Ids), caller)
	reply.Ids = arguments.Ids
	return nil
}

// ---

// ClaimArguments - redeem an allowlist place for one public id
type ClaimArguments struct {
	Request *signed.Request `json:"request"`
	Id      uint64          `json:"id"`
	Proof   []merkle.Digest `json:"proof"`
	Payment uint64          `json:"payment,string"`
}

// Pack - the signed part of the arguments
func (arguments *ClaimArguments) Pack() signed.Packed {
	p := signed.Packed{}.Uint64(arguments.Id).Uint64(uint64(len(arguments.Proof)))
	for _, d := range arguments.Proof {
		p = p.Bytes(d[:])
	}
	return p.Uint64(arguments.Payment)
}

// Claim - redeem an allowlist place
func (token *Token) Claim(arguments *ClaimArguments, reply *IssueReply) error {
	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	caller, err := arguments.Request.Caller(token.Engine, "Token.Claim", arguments.Pack())
	if nil != err {
		return err
	}

	err = token.Engine.Claim(caller, arguments.Id, arguments.Proof, arguments.Payment)
	if nil != err {
		return err
	}

	token.Log.Infof("claim: %d  owner: %s", arguments.Id, caller)
	reply.Ids = []uint64{arguments.Id}
	return nil
}

// ---

// ReserveArguments - operator request to issue reserved ids
type ReserveArguments struct {
	Request   *signed.Request `json:"request"`
	Count     uint64          `json:"count"`
	Recipient account.Account `json:"recipient"`
}

// Pack - the signed part of the arguments
func (arguments *ReserveArguments) Pack() signed.Packed {
	return signed.Packed{}.Uint64(arguments.Count).Bytes(arguments.Recipient.Bytes())
}

// Reserve - issue the next reserved ids to a recipient
func (token *Token) Reserve(arguments *ReserveArguments, reply *IssueReply) error {
	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	caller, err := arguments.Request.Caller(token.Engine, "Token.Reserve", arguments.Pack())
	if nil != err {
		return err
	}

	ids, err := token.Engine.MintReserve(caller, arguments.Count, arguments.Recipient)
	if nil != err {
		return err
	}

	token.Log.Infof("reserve: %d ids  recipient: %s", len(ids), arguments.Recipient)
	reply.Ids = ids
	return nil
}

// ---

// OwnerArguments - token to look up
type OwnerArguments struct {
	Id uint64 `json:"id"`
}

// OwnerReply - holder of a token
type OwnerReply struct {
	Owner account.Account `json:"owner"`
}

// Owner - the account a token was issued to
func (token *Token) Owner(arguments *OwnerArguments, reply *OwnerReply) error {
	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	owner, err := token.Engine.OwnerOf(arguments.Id)
	if nil != err {
		return err
	}
	reply.Owner = owner
	return nil
}

// ---

// BalanceArguments - account to count
type BalanceArguments struct {
	Owner account.Account `json:"owner"`
}

// BalanceReply - number of tokens held
type BalanceReply struct {
	Count uint64 `json:"count"`
}

// Balance - number of tokens issued to an account
func (token *Token) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}
	reply.Count = token.Engine.BalanceOf(arguments.Owner)
	return nil
}

// ---

// URIArguments - token to describe
type URIArguments struct {
	Id uint64 `json:"id"`
}

// URIReply - metadata data URI
type URIReply struct {
	URI string `json:"uri"`
}

// URI - metadata data URI of an issued token
func (token *Token) URI(arguments *URIArguments, reply *URIReply) error {
	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	uri, err := token.Engine.TokenURI(arguments.Id)
	if nil != err {
		return err
	}
	reply.URI = uri
	return nil
}

// ---

// MintedArguments - page of the sold and claimed ids
type MintedArguments struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// MintedReply - ids in issue order
type MintedReply struct {
	Ids []uint64 `json:"ids"`
}

// Minted - page of sold and claimed ids
//
// out of range offsets and limits are clipped, never rejected
func (token *Token) Minted(arguments *MintedArguments, reply *MintedReply) error {
	if err := ratelimit.LimitClipped(token.Limiter, arguments.Limit, maximumListCount); nil != err {
		return err
	}
	reply.Ids = token.Engine.MintedSalesTokenIdList(arguments.Offset, arguments.Limit)
	return nil
}

// ---

// ListArguments - page of the ids held by an account
type ListArguments struct {
	Owner account.Account `json:"owner"`
	Start uint64          `json:"start"`
	Count int             `json:"count"`
}

// ListReply - ids in id order and where the next page starts
type ListReply struct {
	Ids       []uint64 `json:"ids"`
	NextStart uint64   `json:"nextStart"`
}

// List - ids held by an account from start
func (token *Token) List(arguments *ListArguments, reply *ListReply) error {
	if err := ratelimit.LimitN(token.Limiter, arguments.Count, maximumListCount); nil != err {
		return err
	}

	ids, err := token.Engine.TokensOf(arguments.Owner, arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Ids = ids
	reply.NextStart = arguments.Start
	if n := len(ids); n > 0 {
		reply.NextStart = ids[n-1] + 1
	}
	return nil
}
