// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// All writes go through a single transaction: a LevelDB batch plus a
// cache that lets reads inside the transaction see its own writes.
// Abort discards both, Commit writes the batch in one operation.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. id           = token id as big endian uint64 (8 bytes)
// 4. count        = successive index value as big endian uint64 (8 bytes)
// 5. account      = 20 byte account
// 6. amount       = big endian uint64 (8 bytes)
//
// Tokens:
//
//   T ++ id                    - identifier registry
//                                data: owner account
//   O ++ account ++ id         - ids owned by an account
//                                data: (empty)
//   B ++ account               - number of ids owned by an account
//                                data: count
//
// Sales index:
//
//   M ++ count                 - ids issued by mint or claim in issuance order
//                                data: id
//
// Allowlist:
//
//   C ++ account               - accounts that have claimed
//                                data: id
//
// State:
//
//   S ++ name                  - single values (price, sale flag, merkle root,
//                                counters, balance, metadata)
//
// Payments:
//
//   P ++ count                 - payment ledger
//                                data: kind(1 byte) ++ account ++ amount
//
// Requests:
//
//   N ++ account               - last accepted request nonce
//                                data: nonce
//
// Testing:
//   Z ++ key                   - testing data
package storage
