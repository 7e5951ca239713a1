// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mintedindex records, in issue order, the ids issued by sale
// and claim
//
//   M ⧺ sequence  - the id issued at that position
//                   data: id
//   S "minted-length" - number of entries
//
// reserve issues are never recorded
package mintedindex

import (
	"encoding/binary"

	"github.com/bitmark-inc/ctdledger/storage"
)

var lengthKey = []byte("minted-length")

// Index - append only ordered list of ids
type Index struct {
	entries storage.Handle
	state   storage.Handle
}

// New - index over the minted and state pools
func New(entries, state storage.Handle) *Index {
	return &Index{
		entries: entries,
		state:   state,
	}
}

func sequenceKey(n uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	return key
}

// Length - number of recorded ids
func (x *Index) Length() uint64 {
	n, _ := x.state.GetN(lengthKey)
	return n
}

// Append - add an id at the end
func (x *Index) Append(id uint64) {
	n := x.Length()
	x.entries.PutN(sequenceKey(n), id)
	x.state.PutN(lengthKey, n+1)
}

// Page - ids in [offset, offset+limit) clipped to the length
//
// never fails, an offset at or beyond the end gives an empty list
func (x *Index) Page(offset uint64, limit uint64) []uint64 {
	length := x.Length()
	if offset >= length || 0 == limit {
		return []uint64{}
	}
	end := length
	if limit < length-offset {
		end = offset + limit
	}

	ids := make([]uint64, 0, end-offset)
	for n := offset; n < end; n += 1 {
		id, found := x.entries.GetN(sequenceKey(n))
		if !found {
			break
		}
		ids = append(ids, id)
	}
	return ids
}
