// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ctdledger/fault"
)

// DigestLength - number of bytes in the digest
const DigestLength = 32

// Digest - type for a Keccak-256 digest
//
// stored and printed in natural byte order
// represented as 0x prefixed hex text for JSON encoding
// to convert to bytes just use d[:]
type Digest [DigestLength]byte

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	var digest Digest
	h := sha3.NewLegacyKeccak256()
	h.Write(record)
	h.Sum(digest[:0])
	return digest
}

// IsZero - the all zero digest marks an unset value
func (digest Digest) IsZero() bool {
	return digest == Digest{}
}

// String - convert a binary digest to hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return "0x" + hex.EncodeToString(digest[:])
}

// GoString - convert a binary digest to hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<Keccak-256:" + hex.EncodeToString(digest[:]) + ">"
}

// MarshalText - convert digest to 0x prefixed hex text
func (digest Digest) MarshalText() ([]byte, error) {
	return []byte(digest.String()), nil
}

// UnmarshalText - convert hex text into a digest, the 0x prefix is optional
func (digest *Digest) UnmarshalText(s []byte) error {
	d, err := DigestFromHex(string(s))
	if nil != err {
		return err
	}
	*digest = d
	return nil
}

// DigestFromHex - parse hex text, the 0x prefix is optional
func DigestFromHex(s string) (Digest, error) {
	var digest Digest
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if hex.EncodedLen(DigestLength) != len(s) {
		return digest, fault.InvalidDigest
	}
	if _, err := hex.Decode(digest[:], []byte(s)); nil != err {
		return digest, fault.InvalidDigest
	}
	return digest, nil
}

// DigestFromBytes - convert and validate a byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if DigestLength != len(buffer) {
		return fault.InvalidDigest
	}
	copy(digest[:], buffer)
	return nil
}
