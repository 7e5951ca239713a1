// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - this is to setup and handle all of the incoming JSON RPC requests
// from clients of the issuance ledger
//
// standard golang RPC services can be used on the client side to
// access these services; calls that change state carry a signed
// request envelope, see package rpc/signed
package rpc
