// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/ctdledger/counter"
	"github.com/bitmark-inc/ctdledger/issuance"
	"github.com/bitmark-inc/ctdledger/rpc/allowlist"
	"github.com/bitmark-inc/ctdledger/rpc/metadata"
	"github.com/bitmark-inc/ctdledger/rpc/node"
	"github.com/bitmark-inc/ctdledger/rpc/sale"
	"github.com/bitmark-inc/ctdledger/rpc/token"
	"github.com/bitmark-inc/ctdledger/rpc/treasury"
	"github.com/bitmark-inc/logger"
)

// Create - an RPC server with every service registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, engine *issuance.Engine) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(sale.New(log, engine))
	_ = server.Register(allowlist.New(log, engine))
	_ = server.Register(token.New(log, engine))
	_ = server.Register(treasury.New(log, engine))
	_ = server.Register(metadata.New(log, engine))
	_ = server.Register(node.New(log, start, version, rpcCount, engine))

	return server
}
