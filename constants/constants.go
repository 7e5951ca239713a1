// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

// the identifier space
//
//   public   = [0, PublicSupply)
//   reserved = [PublicSupply, PublicSupply+ReservedSupply)
const (
	PublicSupply   = 9900
	ReservedSupply = 100
	TotalSupply    = PublicSupply + ReservedSupply

	FirstReservedId = PublicSupply
)

// the largest number of ids a single mintBatch may carry
const (
	MaximumBatchSize = 100
)

// collection defaults
const (
	DefaultName   = "CHIMNEY TOWN DAO"
	DefaultSymbol = "CTD"
)
