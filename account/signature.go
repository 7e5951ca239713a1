// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/ctdledger/fault"
)

// Signature - the type for a signature
type Signature []byte

// PublicKey - an ed25519 public key in hex text form
type PublicKey []byte

// CheckSignature - verify that signature was made by the private key matching publicKey
func CheckSignature(publicKey PublicKey, message []byte, signature Signature) error {
	if ed25519.PublicKeySize != len(publicKey) {
		return fault.InvalidPublicKey
	}
	if ed25519.SignatureSize != len(signature) {
		return fault.InvalidSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(publicKey), message, signature) {
		return fault.InvalidSignature
	}
	return nil
}

// convert a binary signature to hex string for use by the fmt package (for %s)
func (signature Signature) String() string {
	return hex.EncodeToString(signature)
}

// convert a binary signature to hex string for use by the fmt package (for %#v)
func (signature Signature) GoString() string {
	return "<signature:" + hex.EncodeToString(signature) + ">"
}

// MarshalText - convert signature to text
func (signature Signature) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(signature))
	b := make([]byte, size)
	hex.Encode(b, signature)
	return b, nil
}

// UnmarshalText - convert text into a signature
func (signature *Signature) UnmarshalText(s []byte) error {
	sig := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(sig, s)
	if nil != err {
		return err
	}
	*signature = sig[:byteCount]
	return nil
}

// MarshalText - convert public key to text
func (publicKey PublicKey) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(publicKey))
	b := make([]byte, size)
	hex.Encode(b, publicKey)
	return b, nil
}

// UnmarshalText - convert text into a public key
func (publicKey *PublicKey) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	if ed25519.PublicKeySize != byteCount {
		return fault.InvalidPublicKey
	}
	*publicKey = buffer[:byteCount]
	return nil
}
