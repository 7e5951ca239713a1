// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/ctdledger/fault"
)

// FetchCursor - forward cursor over the committed keys of one pool
//
// a cursor only sees committed data
type FetchCursor struct {
	pool *PoolHandle
	keys util.Range
}

// NewFetchCursor - cursor over the whole pool
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		keys: util.Range{
			Start: []byte{p.prefix},
			Limit: p.limit,
		},
	}
}

// NewPrefixCursor - cursor over the pool keys that begin with prefix
func (p *PoolHandle) NewPrefixCursor(prefix []byte) *FetchCursor {
	return &FetchCursor{
		pool: p,
		keys: *util.BytesPrefix(p.prefixKey(prefix)),
	}
}

// Seek - move the start of the cursor to key
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.keys.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - return up to count elements and advance past them
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.InvalidCursor
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	results := make([]Element, 0, count)
	err := cursor.each(func(e Element) bool {
		results = append(results, e)
		return len(results) < count
	})

	// the smallest key after k is k followed by a zero byte
	if n := len(results); n > 0 {
		cursor.keys.Start = append(cursor.pool.prefixKey(results[n-1].Key), 0)
	}
	return results, err
}

// Map - run f on every remaining element, stopping at its first error
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.InvalidCursor
	}

	var mapErr error
	err := cursor.each(func(e Element) bool {
		mapErr = f(e.Key, e.Value)
		return nil == mapErr
	})
	if nil != mapErr {
		return mapErr
	}
	return err
}

// visit copies of the elements in range until visit returns false
func (cursor *FetchCursor) each(visit func(Element) bool) error {
	iter := cursor.pool.dataAccess.Iterator(&cursor.keys)

	for iter.Next() {
		// iterator slices are only valid until the next call to Next
		key := iter.Key()
		e := Element{
			Key:   append([]byte{}, key[1:]...),
			Value: append([]byte{}, iter.Value()...),
		}
		if !visit(e) {
			break
		}
	}

	err := iter.Error()
	iter.Release()
	return err
}
