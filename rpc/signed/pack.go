// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signed

import (
	"encoding/binary"
)

// Packed - the byte string a request signature covers
//
// every field is length or varint prefixed so that distinct
// argument lists can never pack to the same bytes
type Packed []byte

// Message - start a packed message for a method call
func Message(method string, nonce uint64) Packed {
	return Packed{}.String(method).Uint64(nonce)
}

// Uint64 - append a varint
func (p Packed) Uint64(value uint64) Packed {
	buffer := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(buffer, value)
	return append(p, buffer[:n]...)
}

// Bool - append a single byte flag
func (p Packed) Bool(value bool) Packed {
	if value {
		return append(p, 1)
	}
	return append(p, 0)
}

// Bytes - append a length prefixed byte string
func (p Packed) Bytes(value []byte) Packed {
	return append(p.Uint64(uint64(len(value))), value...)
}

// String - append a length prefixed string
func (p Packed) String(value string) Packed {
	return p.Bytes([]byte(value))
}

// Uint64s - append a count followed by each value
func (p Packed) Uint64s(values []uint64) Packed {
	p = p.Uint64(uint64(len(values)))
	for _, v := range values {
		p = p.Uint64(v)
	}
	return p
}
