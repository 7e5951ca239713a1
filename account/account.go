// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ctdledger/fault"
)

// AccountLength - number of bytes in an account
const AccountLength = 20

// Account - a caller identity
//
// stored as the low 20 bytes of keccak256(public key)
// represented as 0x prefixed mixed case (checksummed) hex text
type Account [AccountLength]byte

// FromPublicKey - derive the account that owns an ed25519 public key
func FromPublicKey(publicKey []byte) (Account, error) {
	var account Account
	if ed25519.PublicKeySize != len(publicKey) {
		return account, fault.InvalidPublicKey
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(publicKey)
	digest := h.Sum(nil)
	copy(account[:], digest[len(digest)-AccountLength:])
	return account, nil
}

// FromBytes - convert and validate a byte slice to an account
func FromBytes(account *Account, buffer []byte) error {
	if AccountLength != len(buffer) {
		return fault.InvalidAccount
	}
	copy(account[:], buffer)
	return nil
}

// FromHex - parse 0x prefixed hex text
//
// the checksum is only enforced when the text is mixed case
func FromHex(s string) (Account, error) {
	var account Account
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return account, fault.InvalidAccount
	}
	digits := s[2:]
	if hex.EncodedLen(AccountLength) != len(digits) {
		return account, fault.InvalidAccount
	}
	if _, err := hex.Decode(account[:], []byte(digits)); nil != err {
		return account, fault.InvalidAccount
	}

	if strings.ToLower(digits) != digits && strings.ToUpper(digits) != digits {
		if account.String() != "0x"+digits {
			return account, fault.InvalidAccount
		}
	}
	return account, nil
}

// IsZero - true for the all zero account
func (account Account) IsZero() bool {
	return account == Account{}
}

// Bytes - the raw account bytes
func (account Account) Bytes() []byte {
	return account[:]
}

// String - checksummed hex text
//
// a hex letter is upper case when the matching nibble of
// keccak256(lower case hex) is 8 or greater
func (account Account) String() string {
	lower := []byte(hex.EncodeToString(account[:]))

	h := sha3.NewLegacyKeccak256()
	h.Write(lower)
	digest := h.Sum(nil)

	for i, c := range lower {
		if c < 'a' {
			continue
		}
		nibble := digest[i/2]
		if 0 == i%2 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			lower[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(lower)
}

// GoString - for %#v
func (account Account) GoString() string {
	return "<account:" + account.String() + ">"
}

// MarshalText - convert account to text
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert text into an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := FromHex(string(s))
	if nil != err {
		return err
	}
	*account = a
	return nil
}
