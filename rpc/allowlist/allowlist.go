// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package allowlist

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ctdledger/account"
	"github.com/bitmark-inc/ctdledger/issuance"
	"github.com/bitmark-inc/ctdledger/merkle"
	"github.com/bitmark-inc/ctdledger/rpc/ratelimit"
	"github.com/bitmark-inc/ctdledger/rpc/signed"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitAllowlist = 200
	rateBurstAllowlist = 100
)

// Allowlist - type for RPC calls
type Allowlist struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Engine  *issuance.Engine
}

// New - create the allowlist service
func New(log *logger.L, engine *issuance.Engine) *Allowlist {
	return &Allowlist{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitAllowlist, rateBurstAllowlist),
		Engine:  engine,
	}
}

// RootArguments - empty arguments for root request
type RootArguments struct{}

// RootReply - the current Merkle root, all zero if unset
type RootReply struct {
	Root merkle.Digest `json:"root"`
}

// Root - the Merkle root claims are verified against
func (a *Allowlist) Root(_ *RootArguments, reply *RootReply) error {
	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}
	reply.Root = a.Engine.MerkleRoot()
	return nil
}

// ---

// SetRootArguments - operator request to replace the Merkle root
type SetRootArguments struct {
	Request *signed.Request `json:"request"`
	Root    merkle.Digest   `json:"root"`
}

// Pack - the signed part of the arguments
func (arguments *SetRootArguments) Pack() signed.Packed {
	return signed.Packed{}.Bytes(arguments.Root[:])
}

// SetRoot - replace the Merkle root
//
// accounts that already claimed stay claimed
func (a *Allowlist) SetRoot(arguments *SetRootArguments, reply *RootReply) error {
	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}

	caller, err := arguments.Request.Caller(a.Engine, "Allowlist.SetRoot", arguments.Pack())
	if nil != err {
		return err
	}

	a.Log.Infof("set root: %s  caller: %s", arguments.Root, caller)

	err = a.Engine.SetMerkleRoot(caller, arguments.Root)
	if nil != err {
		return err
	}

	reply.Root = a.Engine.MerkleRoot()
	return nil
}

// ---

// IsClaimedArguments - account to check
type IsClaimedArguments struct {
	Account account.Account `json:"account"`
}

// IsClaimedReply - result of claim check
type IsClaimedReply struct {
	Claimed bool `json:"claimed"`
}

// IsClaimed - whether an account has used its allowlist claim
func (a *Allowlist) IsClaimed(arguments *IsClaimedArguments, reply *IsClaimedReply) error {
	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}
	reply.Claimed = a.Engine.IsClaimed(arguments.Account)
	return nil
}
